package compress

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/esmkit/errs"
)

func deflateRaw(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	return buf.Bytes()
}

func deflateZlib(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestInflateRawDeflate(t *testing.T) {
	require := require.New(t)

	original := bytes.Repeat([]byte("EDID\x09\x00subrecord"), 50)
	codec := NewInflateCodec()

	out, err := codec.Decompress(deflateRaw(t, original), len(original))
	require.NoError(err)
	require.Equal(original, out)
}

func TestInflateZlibWrapped(t *testing.T) {
	require := require.New(t)

	original := bytes.Repeat([]byte{0xAA, 0xBB, 0xCC}, 100)
	codec := NewInflateCodec()

	out, err := codec.Decompress(deflateZlib(t, original), len(original))
	require.NoError(err)
	require.Equal(original, out)
}

func TestInflateSizeMismatch(t *testing.T) {
	original := []byte("some payload bytes")
	codec := NewInflateCodec()

	_, err := codec.Decompress(deflateRaw(t, original), len(original)+3)
	require.ErrorIs(t, err, errs.ErrSizeMismatch)

	_, err = codec.Decompress(deflateRaw(t, original), len(original)-3)
	require.ErrorIs(t, err, errs.ErrSizeMismatch)
}

func TestInflateOwnedBuffer(t *testing.T) {
	original := []byte("owned buffer check")
	stream := deflateRaw(t, original)
	codec := NewInflateCodec()

	out, err := codec.Decompress(stream, len(original))
	require.NoError(t, err)

	// Mutating the source must not affect the decompressed copy.
	for i := range stream {
		stream[i] = 0
	}
	require.Equal(t, original, out)
}

func TestInflateCorruptStream(t *testing.T) {
	codec := NewInflateCodec()
	_, err := codec.Decompress([]byte{0x00, 0x01, 0x02, 0x03, 0x04}, 100)
	require.Error(t, err)
}

func TestInflateNegativeSize(t *testing.T) {
	codec := NewInflateCodec()
	_, err := codec.Decompress(nil, -1)
	require.Error(t, err)
}

func TestNoOpCodec(t *testing.T) {
	codec := NewNoOpCodec()

	data := []byte{1, 2, 3}
	out, err := codec.Decompress(data, 3)
	require.NoError(t, err)
	require.Equal(t, data, out)

	_, err = codec.Decompress(data, 4)
	require.ErrorIs(t, err, errs.ErrSizeMismatch)
}

func TestIsZlibWrapped(t *testing.T) {
	require.True(t, isZlibWrapped([]byte{0x78, 0x9C}))
	require.True(t, isZlibWrapped([]byte{0x78, 0x01}))
	require.False(t, isZlibWrapped([]byte{0x78, 0x00}), "header checksum must divide by 31")
	require.False(t, isZlibWrapped([]byte{0x00, 0x9C}))
	require.False(t, isZlibWrapped([]byte{0x78}))
}
