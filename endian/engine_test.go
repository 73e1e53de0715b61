package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodingEngine(t *testing.T) {
	require.Equal(t, binary.LittleEndian, Little.Engine())
	require.Equal(t, binary.BigEndian, Big.Engine())
}

func TestEncodingString(t *testing.T) {
	require.Equal(t, "little-endian", Little.String())
	require.Equal(t, "big-endian", Big.String())
	require.Equal(t, "unknown", Encoding(9).String())
}

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

// Decoding a value big-endian from bytes B and little-endian from
// byte-reverse(B) must yield the same numeric value.
func TestEndiannessSymmetry(t *testing.T) {
	require := require.New(t)

	cases := [][]byte{
		{0x00, 0x00, 0x00, 0x01},
		{0x12, 0x34, 0x56, 0x78},
		{0xFF, 0xFE, 0xFD, 0xFC},
		{0xDE, 0xAD, 0xBE, 0xEF},
	}
	for _, b := range cases {
		reversed := []byte{b[3], b[2], b[1], b[0]}
		require.Equal(Big.Engine().Uint32(b), Little.Engine().Uint32(reversed))
	}

	b8 := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	r8 := []byte{8, 7, 6, 5, 4, 3, 2, 1}
	require.Equal(Big.Engine().Uint64(b8), Little.Engine().Uint64(r8))

	b2 := []byte{0xAB, 0xCD}
	require.Equal(Big.Engine().Uint16(b2), Little.Engine().Uint16([]byte{0xCD, 0xAB}))
}

func TestAppendRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{Little, Big} {
		engine := enc.Engine()
		buf := engine.AppendUint32(nil, 0x01020304)
		require.Equal(t, uint32(0x01020304), engine.Uint32(buf))
	}
}
