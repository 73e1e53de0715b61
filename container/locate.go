package container

import "github.com/arloliu/esmkit/errs"

// Path is the result of an offset resolution: the chain of enclosing groups
// (outermost first), the innermost record containing the offset, and, when
// the record is uncompressed and the offset falls inside its payload, the
// innermost subrecord.
//
// A nil Record with a non-nil Groups slice means the offset landed in group
// framing; an entirely empty Path means the offset is outside every known
// chunk. Neither is an error.
type Path struct {
	Groups    []Group
	Record    *Record
	Subrecord *Subrecord
}

// Locate resolves an arbitrary byte offset to its enclosing chunk path with
// one left-to-right descent: at each nesting level it advances to the single
// child whose span contains the target, then recurses into it. It never
// backtracks and costs O(depth) descents, not a full-file scan.
//
// Parameters:
//   - target: Absolute byte offset into the loaded buffer
//
// Returns:
//   - *Path: Enclosing groups, record, and subrecord; fields are nil when the
//     offset is not inside a chunk of that level (a lookup miss, not an error)
//   - error: FormatError when the descent hits a malformed chunk
func (n *Navigator) Locate(target int64) (*Path, error) {
	path := &Path{}
	if target < n.hdr.DataStart || target >= int64(len(n.data)) {
		return path, nil
	}

	engine := n.hdr.Encoding.Engine()
	start, end := n.hdr.DataStart, int64(len(n.data))
	depth := 0

	for {
		found := false
		for offset := start; offset < end; {
			if offset+HeaderSize > end {
				return nil, errs.NewFormatError(errs.ErrBufferTooSmall, offset, n.data)
			}
			sig := readSignature(n.data, offset, n.hdr.Encoding)
			if !sig.Valid() {
				return nil, errs.NewFormatError(errs.ErrInvalidSignature, offset, n.data)
			}

			if sig == SigGroup {
				size := engine.Uint32(n.data[offset+4 : offset+8])
				if size < HeaderSize {
					return nil, errs.NewFormatError(errs.ErrInvalidChunkSize, offset+4, n.data)
				}
				spanEnd := offset + int64(size)
				if spanEnd > end {
					return nil, errs.NewFormatError(errs.ErrSpanOverrun, offset+4, n.data)
				}
				if target >= spanEnd {
					offset = spanEnd

					continue
				}

				grp := Group{
					Label:    engine.Uint32(n.data[offset+8 : offset+12]),
					Kind:     GroupKind(engine.Uint32(n.data[offset+12 : offset+16])),
					Stamp:    engine.Uint32(n.data[offset+16 : offset+20]),
					Offset:   offset,
					Size:     size,
					Depth:    depth,
					Encoding: n.hdr.Encoding,
				}
				path.Groups = append(path.Groups, grp)
				if target < grp.BodyStart() {
					// Inside the group header itself.
					return path, nil
				}

				start, end = grp.BodyStart(), spanEnd
				depth++
				found = true

				break
			}

			rec, err := n.readRecord(offset, end)
			if err != nil {
				return nil, err
			}
			if target >= rec.End() {
				offset = rec.End()

				continue
			}

			path.Record = &rec
			n.locateSubrecord(path, rec, target)

			return path, nil
		}

		if !found {
			return path, nil
		}
	}
}

// locateSubrecord fills in path.Subrecord when target falls inside the
// payload of an uncompressed record. Compressed payloads have no stable
// byte mapping back to the source buffer, so they resolve to the record only.
func (n *Navigator) locateSubrecord(path *Path, rec Record, target int64) {
	if rec.Compressed() || target < rec.PayloadStart() {
		return
	}

	payload := n.data[rec.PayloadStart():rec.End()]
	rel := target - rec.PayloadStart()
	// Best effort: a malformed chunk stream just leaves Subrecord nil.
	_ = walkSubrecords(payload, rec.Encoding, rec.PayloadStart(), func(sub Subrecord) bool {
		subEnd := sub.Offset + SubheaderSize + int64(len(sub.Data))
		if rel >= sub.Offset && rel < subEnd {
			path.Subrecord = &sub

			return false
		}

		return true
	})
}
