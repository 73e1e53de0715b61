package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// InflateCodec decompresses the deflate streams carried by compressed
// records.
//
// The wire format stores a raw deflate body, but files produced by some
// tool chains wrap the same body in a zlib envelope. The codec sniffs the
// zlib CMF byte (0x78) and unwraps it, so both shapes decode transparently.
type InflateCodec struct{}

// NewInflateCodec creates a new inflate codec.
func NewInflateCodec() InflateCodec {
	return InflateCodec{}
}

// Decompress inflates data into a fresh buffer and validates its length
// against declaredSize.
//
// Parameters:
//   - data: Compressed stream, after the 4-byte declared-size prefix
//   - declaredSize: Decompressed size the record header declared
//
// Returns:
//   - []byte: Decompressed payload of exactly declaredSize bytes
//   - error: Inflate failure or errs.ErrSizeMismatch
func (c InflateCodec) Decompress(data []byte, declaredSize int) ([]byte, error) {
	if declaredSize < 0 {
		return nil, fmt.Errorf("negative declared size %d", declaredSize)
	}

	var r io.ReadCloser
	if isZlibWrapped(data) {
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("open zlib stream: %w", err)
		}
		r = zr
	} else {
		r = flate.NewReader(bytes.NewReader(data))
	}
	defer r.Close()

	out := make([]byte, 0, declaredSize)
	buf := bytes.NewBuffer(out)
	// +1 so a stream longer than declared fails the size check instead of
	// being silently truncated.
	if _, err := io.CopyN(buf, r, int64(declaredSize)+1); err != nil && err != io.EOF {
		return nil, fmt.Errorf("inflate payload: %w", err)
	}

	result := buf.Bytes()
	if err := checkSize(result, declaredSize); err != nil {
		return nil, err
	}

	return result, nil
}

// isZlibWrapped reports whether the stream starts with a zlib header rather
// than a raw deflate block. 0x78 is the CMF byte for 32KB-window deflate,
// and the two-byte header checksum must divide by 31.
func isZlibWrapped(data []byte) bool {
	if len(data) < 2 || data[0] != 0x78 {
		return false
	}

	return (uint16(data[0])<<8|uint16(data[1]))%31 == 0
}
