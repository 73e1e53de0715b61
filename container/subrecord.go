package container

import (
	"github.com/arloliu/esmkit/endian"
	"github.com/arloliu/esmkit/errs"
)

// WalkPayload iterates the subrecord chunk stream of an already-extracted
// record payload, for callers that obtained the payload via
// (*Navigator).Payload and want a streaming walk instead of a slice.
// Returning false from visit stops the walk without error.
func WalkPayload(payload []byte, enc endian.Encoding, visit func(Subrecord) bool) error {
	return walkSubrecords(payload, enc, 0, visit)
}

// walkSubrecords iterates the fixed-header chunk stream inside a record
// payload, applying the one irregular rule of the format: a zero-size
// subrecord preceded by an XXXX marker takes its true size from the marker's
// 4-byte payload instead of the 16-bit inline size field.
//
// The XXXX marker itself is emitted too, so summing len(Data)+6 over every
// emitted subrecord reproduces the payload size exactly.
//
// base is the absolute offset of the payload's first byte, used only for
// error reporting; it is 0 for decompressed payloads, where offsets are
// payload-relative by necessity.
func walkSubrecords(payload []byte, enc endian.Encoding, base int64, visit func(Subrecord) bool) error {
	engine := enc.Engine()
	pos := int64(0)
	extendedSize := int64(-1)

	for pos < int64(len(payload)) {
		if pos+SubheaderSize > int64(len(payload)) {
			return errs.NewFormatError(errs.ErrPayloadTruncated, base+pos, payload)
		}

		sig := readSignature(payload, pos, enc)
		if !sig.Valid() {
			return errs.NewFormatError(errs.ErrInvalidSignature, base+pos, payload)
		}

		size := int64(engine.Uint16(payload[pos+4 : pos+6]))
		if sig == SigXXXX && size == 4 {
			if pos+SubheaderSize+4 > int64(len(payload)) {
				return errs.NewFormatError(errs.ErrPayloadTruncated, base+pos, payload)
			}
			extendedSize = int64(engine.Uint32(payload[pos+SubheaderSize : pos+SubheaderSize+4]))
			if !visit(Subrecord{Sig: sig, Data: payload[pos+SubheaderSize : pos+SubheaderSize+4], Offset: pos}) {
				return nil
			}
			pos += SubheaderSize + 4

			continue
		}

		if extendedSize >= 0 {
			// The inline size field of the marked subrecord reads as 0.
			size = extendedSize
			extendedSize = -1
		}

		end := pos + SubheaderSize + size
		if end > int64(len(payload)) {
			return errs.NewFormatError(errs.ErrPayloadTruncated, base+pos, payload)
		}

		if !visit(Subrecord{Sig: sig, Data: payload[pos+SubheaderSize : end], Offset: pos}) {
			return nil
		}
		pos = end
	}

	return nil
}
