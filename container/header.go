package container

import (
	"bytes"
	"math"

	"github.com/arloliu/esmkit/endian"
	"github.com/arloliu/esmkit/errs"
)

// FileHeader holds the parsed mandatory first record of a container file.
// Immutable after parse; one per loaded buffer.
type FileHeader struct {
	// Encoding is the detected wire encoding of the whole file.
	Encoding endian.Encoding
	// Version is the declared format version from the HEDR subrecord.
	Version float32
	// RecordCount is the declared number of records and groups.
	RecordCount uint32
	// NextObjectID is the next-object-id counter from the HEDR subrecord.
	NextObjectID uint32
	// Author is the author string, empty when absent.
	Author string
	// Description is the description string, empty when absent.
	Description string
	// Masters lists the master-file dependencies in declaration order.
	Masters []string
	// Flags is the first record's flag word.
	Flags uint32
	// DataStart is the absolute offset of the first top-level group.
	DataStart int64
}

// DetectEncoding determines the wire encoding of data by reading its first
// four bytes as a record signature. The little-endian reference encoding
// spells the expected top signature forward; the big-endian streaming
// encoding spells it with the characters reversed.
//
// Returns:
//   - endian.Encoding: Detected encoding
//   - error: FormatError when the buffer is shorter than a main chunk header
//     or neither orientation yields the expected signature
func DetectEncoding(data []byte) (endian.Encoding, error) {
	if len(data) < HeaderSize {
		return endian.Little, errs.NewFormatError(errs.ErrBufferTooSmall, 0, data)
	}

	forward := readSignature(data, 0, endian.Little)
	if forward == SigTop {
		return endian.Little, nil
	}

	reversed := readSignature(data, 0, endian.Big)
	if reversed == SigTop {
		return endian.Big, nil
	}

	if !forward.Valid() && !reversed.Valid() {
		return endian.Little, errs.NewFormatError(errs.ErrInvalidSignature, 0, data)
	}

	return endian.Little, errs.NewFormatError(errs.ErrUnknownEncoding, 0, data)
}

// ParseFileHeader detects the encoding and parses the mandatory first record
// into a FileHeader.
//
// Parameters:
//   - data: Complete file buffer
//
// Returns:
//   - *FileHeader: Parsed header descriptor
//   - error: FormatError describing the failing offset
func ParseFileHeader(data []byte) (*FileHeader, error) {
	enc, err := DetectEncoding(data)
	if err != nil {
		return nil, err
	}

	engine := enc.Engine()
	dataSize := engine.Uint32(data[4:8])
	end := int64(HeaderSize) + int64(dataSize)
	if end > int64(len(data)) {
		return nil, errs.NewFormatError(errs.ErrSpanOverrun, 4, data)
	}

	hdr := &FileHeader{
		Encoding:  enc,
		Flags:     engine.Uint32(data[8:12]),
		DataStart: end,
	}

	payload := data[HeaderSize:end]
	werr := walkSubrecords(payload, enc, 0, func(sub Subrecord) bool {
		switch sub.Sig {
		case Sig("HEDR"):
			if len(sub.Data) >= 12 {
				hdr.Version = math.Float32frombits(engine.Uint32(sub.Data[0:4]))
				hdr.RecordCount = engine.Uint32(sub.Data[4:8])
				hdr.NextObjectID = engine.Uint32(sub.Data[8:12])
			}
		case Sig("CNAM"):
			hdr.Author = zstring(sub.Data)
		case Sig("SNAM"):
			hdr.Description = zstring(sub.Data)
		case Sig("MAST"):
			hdr.Masters = append(hdr.Masters, zstring(sub.Data))
		}
		// DATA (master file size) and ONAM (override lists) carry nothing the
		// header descriptor needs.
		return true
	})
	if werr != nil {
		return nil, werr
	}

	return hdr, nil
}

// zstring extracts a NUL-terminated string, clamping to the payload length
// when the terminator is missing.
func zstring(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return string(data[:i])
	}

	return string(data)
}
