package container

import (
	"github.com/arloliu/esmkit/compress"
	"github.com/arloliu/esmkit/endian"
	"github.com/arloliu/esmkit/errs"
)

// Navigator walks the nested group/record tree of one loaded buffer.
//
// A Navigator holds no mutable traversal state; every scan carries its own
// cursor and explicit group stack, so concurrent scans over the same buffer
// are safe without locking.
type Navigator struct {
	data     []byte
	hdr      *FileHeader
	codec    compress.Decompressor
	progress func(offset, total int64)
	every    int
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithDecompressor overrides the payload codec, mainly for tests.
func WithDecompressor(codec compress.Decompressor) Option {
	return func(n *Navigator) {
		n.codec = codec
	}
}

// WithProgress installs a callback invoked with the current and total byte
// offset after every n records during full scans. The engine has no
// cancellation of its own; callers wanting to bound a scan return false from
// the visit function instead.
func WithProgress(n int, fn func(offset, total int64)) Option {
	return func(nav *Navigator) {
		nav.every = n
		nav.progress = fn
	}
}

// NewNavigator parses the file header of data and returns a navigator over
// its group/record tree.
//
// Returns:
//   - *Navigator: Navigator positioned over the buffer
//   - error: FormatError when the header is malformed
func NewNavigator(data []byte, opts ...Option) (*Navigator, error) {
	hdr, err := ParseFileHeader(data)
	if err != nil {
		return nil, err
	}

	nav := &Navigator{
		data:  data,
		hdr:   hdr,
		codec: compress.NewInflateCodec(),
	}
	for _, opt := range opts {
		opt(nav)
	}

	return nav, nil
}

// Header returns the parsed file header.
func (n *Navigator) Header() *FileHeader {
	return n.hdr
}

// Encoding returns the detected wire encoding.
func (n *Navigator) Encoding() endian.Encoding {
	return n.hdr.Encoding
}

// Len returns the buffer length in bytes.
func (n *Navigator) Len() int64 {
	return int64(len(n.data))
}

// groupFrame is one entry of the explicit traversal stack.
type groupFrame struct {
	end int64
}

// walk is the single traversal loop behind every scan entry point. It visits
// chunks in file order, descending into every group. Either visitor may be
// nil; returning false from a visitor stops the walk without error.
//
// The stack is explicit and unbounded: real files nest 4-6 levels, but
// corrupted inputs may nest arbitrarily deep and must not exhaust the call
// stack.
func (n *Navigator) walk(visitGroup func(Group) bool, visitRecord func(Record) bool) error {
	engine := n.hdr.Encoding.Engine()
	offset := n.hdr.DataStart
	total := int64(len(n.data))
	stack := make([]groupFrame, 0, 8)
	seen := 0

	for offset < total {
		for len(stack) > 0 && offset >= stack[len(stack)-1].end {
			if offset > stack[len(stack)-1].end {
				return errs.NewFormatError(errs.ErrSpanOverrun, offset, n.data)
			}
			stack = stack[:len(stack)-1]
		}

		parentEnd := total
		if len(stack) > 0 {
			parentEnd = stack[len(stack)-1].end
		}

		if offset+HeaderSize > parentEnd {
			return errs.NewFormatError(errs.ErrBufferTooSmall, offset, n.data)
		}

		sig := readSignature(n.data, offset, n.hdr.Encoding)
		if !sig.Valid() {
			return errs.NewFormatError(errs.ErrInvalidSignature, offset, n.data)
		}

		if sig == SigGroup {
			size := engine.Uint32(n.data[offset+4 : offset+8])
			if size < HeaderSize {
				return errs.NewFormatError(errs.ErrInvalidChunkSize, offset+4, n.data)
			}
			end := offset + int64(size)
			if end > parentEnd {
				return errs.NewFormatError(errs.ErrSpanOverrun, offset+4, n.data)
			}

			grp := Group{
				Label:    engine.Uint32(n.data[offset+8 : offset+12]),
				Kind:     GroupKind(engine.Uint32(n.data[offset+12 : offset+16])),
				Stamp:    engine.Uint32(n.data[offset+16 : offset+20]),
				Offset:   offset,
				Size:     size,
				Depth:    len(stack),
				Encoding: n.hdr.Encoding,
			}
			if visitGroup != nil && !visitGroup(grp) {
				return nil
			}

			stack = append(stack, groupFrame{end: end})
			offset += HeaderSize

			continue
		}

		rec, err := n.readRecord(offset, parentEnd)
		if err != nil {
			return err
		}
		if visitRecord != nil && !visitRecord(rec) {
			return nil
		}
		offset = rec.End()

		seen++
		if n.progress != nil && n.every > 0 && seen%n.every == 0 {
			n.progress(offset, total)
		}
	}

	return nil
}

// readRecord parses the 24-byte record header at offset and validates its
// span against limit.
func (n *Navigator) readRecord(offset, limit int64) (Record, error) {
	engine := n.hdr.Encoding.Engine()
	sig := readSignature(n.data, offset, n.hdr.Encoding)

	rec := Record{
		Sig:      sig,
		DataSize: engine.Uint32(n.data[offset+4 : offset+8]),
		Flags:    engine.Uint32(n.data[offset+8 : offset+12]),
		FormID:   engine.Uint32(n.data[offset+12 : offset+16]),
		Revision: engine.Uint32(n.data[offset+16 : offset+20]),
		Version:  engine.Uint16(n.data[offset+20 : offset+22]),
		Offset:   offset,
		Encoding: n.hdr.Encoding,
	}
	if rec.End() > limit {
		return Record{}, errs.NewFormatError(errs.ErrSpanOverrun, offset+4, n.data)
	}

	return rec, nil
}

// Scan walks every record in file order, descending into every group.
// Returning false from visit stops the scan without error.
//
// Returns:
//   - error: FormatError with the failing offset; the walk stops there rather
//     than silently truncating results
func (n *Navigator) Scan(visit func(Record) bool) error {
	return n.walk(nil, visit)
}

// ScanAll collects every record in file order.
func (n *Navigator) ScanAll() ([]Record, error) {
	var records []Record
	err := n.Scan(func(rec Record) bool {
		records = append(records, rec)

		return true
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ScanByType collects every record with the given type signature, in file
// order.
func (n *Navigator) ScanByType(sig Signature) ([]Record, error) {
	var records []Record
	err := n.Scan(func(rec Record) bool {
		if rec.Sig == sig {
			records = append(records, rec)
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ScanGroups walks every group in file order. Returning false from visit
// stops the scan without error.
func (n *Navigator) ScanGroups(visit func(Group) bool) error {
	return n.walk(visit, nil)
}

// Groups collects every group in file order.
func (n *Navigator) Groups() ([]Group, error) {
	var groups []Group
	err := n.ScanGroups(func(grp Group) bool {
		groups = append(groups, grp)

		return true
	})
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// ScanStats aggregates one full-tree walk.
type ScanStats struct {
	// Records is the total record count.
	Records int
	// Groups is the total group count.
	Groups int
	// ByType counts records per type signature.
	ByType map[Signature]int
	// MaxDepth is the deepest group nesting encountered.
	MaxDepth int
}

// Stats walks the whole tree and returns aggregate counters.
func (n *Navigator) Stats() (*ScanStats, error) {
	stats := &ScanStats{ByType: make(map[Signature]int)}
	err := n.walk(
		func(grp Group) bool {
			stats.Groups++
			if grp.Depth+1 > stats.MaxDepth {
				stats.MaxDepth = grp.Depth + 1
			}

			return true
		},
		func(rec Record) bool {
			stats.Records++
			stats.ByType[rec.Sig]++

			return true
		},
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// Subrecords decompresses the record's payload when its compression bit is
// set and walks the contained chunk stream.
//
// Parameters:
//   - rec: Record previously produced by this navigator
//
// Returns:
//   - []Subrecord: Subrecords in payload order, XXXX markers included
//   - error: DecodeError when decompression fails, FormatError when a
//     subrecord's declared end exceeds the payload end
func (n *Navigator) Subrecords(rec Record) ([]Subrecord, error) {
	payload, base, err := n.payload(rec)
	if err != nil {
		return nil, err
	}

	var subs []Subrecord
	werr := walkSubrecords(payload, rec.Encoding, base, func(sub Subrecord) bool {
		subs = append(subs, sub)

		return true
	})
	if werr != nil {
		return nil, werr
	}

	return subs, nil
}

// Payload returns the record's payload bytes, inflating compressed records
// into a fresh caller-owned buffer. Uncompressed payloads alias the source
// buffer and must not be modified.
//
// Returns:
//   - []byte: Payload bytes, decompressed when the compression bit is set
//   - error: DecodeError when decompression fails
func (n *Navigator) Payload(rec Record) ([]byte, error) {
	payload, _, err := n.payload(rec)

	return payload, err
}

// payload returns the record's payload bytes, inflating compressed records
// into a fresh buffer. base is the absolute offset of the payload's first
// byte, or 0 for decompressed copies.
func (n *Navigator) payload(rec Record) ([]byte, int64, error) {
	start, end := rec.PayloadStart(), rec.End()
	if end > int64(len(n.data)) {
		return nil, 0, errs.NewFormatError(errs.ErrSpanOverrun, rec.Offset, n.data)
	}
	raw := n.data[start:end]

	if !rec.Compressed() {
		return raw, start, nil
	}

	if len(raw) < 4 {
		return nil, 0, errs.NewDecodeError(errs.ErrPayloadTruncated, rec.FormID)
	}
	declared := rec.Encoding.Engine().Uint32(raw[0:4])
	out, err := n.codec.Decompress(raw[4:], int(declared))
	if err != nil {
		return nil, 0, errs.NewDecodeError(err, rec.FormID)
	}

	return out, 0, nil
}
