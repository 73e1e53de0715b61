// Package compress provides the payload decompression codec for compressed
// ESM records.
//
// A record whose flag word has the compression bit set stores its payload as
// a 4-byte declared decompressed size (read in the record's own encoding)
// followed by a raw deflate stream. The container layer strips the size
// prefix and hands the stream plus the declared size to this package.
//
// Decompression sits on the cold path: it runs once per compressed record,
// always produces a freshly allocated buffer owned by the caller, and never
// mutates or aliases the source bytes. A declared-size mismatch is a
// recoverable decode error, not a crash; callers skip the record and keep
// scanning.
package compress

import "github.com/arloliu/esmkit/errs"

// Decompressor decompresses one record payload stream.
type Decompressor interface {
	// Decompress inflates data and validates the result against the declared
	// decompressed size.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//
	// Returns:
	//   - []byte: Decompressed payload of exactly declaredSize bytes
	//   - error: DecodeError wrapping the inflate failure or size mismatch
	Decompress(data []byte, declaredSize int) ([]byte, error)
}

var _ Decompressor = (*InflateCodec)(nil)
var _ Decompressor = (*NoOpCodec)(nil)

// checkSize validates decompressed output length against the declared size.
func checkSize(out []byte, declaredSize int) error {
	if len(out) != declaredSize {
		return errs.ErrSizeMismatch
	}

	return nil
}
