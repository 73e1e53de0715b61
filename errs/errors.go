// Package errs defines the error vocabulary shared by all esmkit packages.
//
// Two structured error types carry byte offsets for diagnostics:
//
//   - FormatError: the container itself is malformed at a known offset.
//     Fatal to the current traversal step, never to the process; callers
//     report the offset and either stop or skip to the next sibling.
//   - DecodeError: a payload failed to decode (decompression size mismatch,
//     truncated field data). Recoverable; the affected record or field is
//     reported as absent rather than aborting the scan.
//
// Lookup misses (unknown FormID, offset outside any record) are not errors;
// those APIs return ok=false or nil results instead.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferTooSmall indicates the input buffer is shorter than the fixed
	// 24-byte main chunk header.
	ErrBufferTooSmall = errors.New("buffer smaller than main chunk header")

	// ErrUnknownEncoding indicates the leading signature matches neither the
	// little-endian nor the byte-reversed big-endian orientation.
	ErrUnknownEncoding = errors.New("unrecognized signature orientation")

	// ErrInvalidSignature indicates a chunk signature contains bytes outside
	// the uppercase ASCII tag alphabet.
	ErrInvalidSignature = errors.New("invalid chunk signature")

	// ErrSpanOverrun indicates a child chunk's declared span runs past the end
	// of its parent group or the buffer.
	ErrSpanOverrun = errors.New("chunk span overruns parent")

	// ErrInvalidChunkSize indicates a zero or negative effective chunk size.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrSizeMismatch indicates decompressed output did not match the declared
	// decompressed size.
	ErrSizeMismatch = errors.New("decompressed size mismatch")

	// ErrPayloadTruncated indicates a subrecord or field extends past the end
	// of its record payload.
	ErrPayloadTruncated = errors.New("payload truncated")

	// ErrGridSize indicates a terrain payload does not hold a full 33x33
	// delta grid.
	ErrGridSize = errors.New("invalid height grid payload size")

	// ErrEmptyGrid indicates a stitch or diff request with no cells.
	ErrEmptyGrid = errors.New("no cells provided")

	// ErrTableShape indicates an offset table whose length does not match the
	// declared grid dimensions.
	ErrTableShape = errors.New("offset table does not match grid dimensions")
)

// contextBytes is the number of bytes captured around a format failure.
const contextBytes = 16

// FormatError reports a malformed container structure at a precise byte
// offset, with the surrounding bytes captured for investigation.
type FormatError struct {
	// Offset is the absolute byte offset of the failing chunk or field.
	Offset int64
	// Context holds up to 16 bytes surrounding the offset.
	Context []byte
	// Err is the underlying sentinel error.
	Err error
}

// NewFormatError builds a FormatError at the given offset, capturing the
// bytes around it from data. data may be nil.
func NewFormatError(err error, offset int64, data []byte) *FormatError {
	fe := &FormatError{Offset: offset, Err: err}
	if len(data) > 0 && offset >= 0 && offset < int64(len(data)) {
		end := offset + contextBytes
		if end > int64(len(data)) {
			end = int64(len(data))
		}
		fe.Context = append([]byte(nil), data[offset:end]...)
	}

	return fe
}

func (e *FormatError) Error() string {
	if len(e.Context) > 0 {
		return fmt.Sprintf("format error at offset 0x%X (% X): %v", e.Offset, e.Context, e.Err)
	}

	return fmt.Sprintf("format error at offset 0x%X: %v", e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// DecodeError reports a recoverable payload decode failure for one record.
type DecodeError struct {
	// FormID identifies the affected record, 0 when unknown.
	FormID uint32
	// Err is the underlying cause.
	Err error
}

// NewDecodeError wraps err as a recoverable decode failure of the record
// identified by formID.
func NewDecodeError(err error, formID uint32) *DecodeError {
	return &DecodeError{FormID: formID, Err: err}
}

func (e *DecodeError) Error() string {
	if e.FormID != 0 {
		return fmt.Sprintf("decode error in record %08X: %v", e.FormID, e.Err)
	}

	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsFormat reports whether err is (or wraps) a FormatError.
func IsFormat(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsDecode reports whether err is (or wraps) a DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
