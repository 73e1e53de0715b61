package compare

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/esmkit/container"
)

func sub(sig string, data ...byte) container.Subrecord {
	return container.Subrecord{Sig: container.Sig(sig), Data: data}
}

func TestClassifyPairIdentical(t *testing.T) {
	class, segments := classifyPair([]byte{1, 2, 3, 4}, []byte{1, 2, 3, 4})
	require.Equal(t, ClassIdentical, class)
	require.Nil(t, segments)
}

func TestClassifyPairByteSwap(t *testing.T) {
	require := require.New(t)

	// Every aligned 4-byte unit reversed.
	a := []byte{0x12, 0x34, 0x56, 0x78, 0xDE, 0xAD, 0xBE, 0xEF}
	b := []byte{0x78, 0x56, 0x34, 0x12, 0xEF, 0xBE, 0xAD, 0xDE}
	class, _ := classifyPair(a, b)
	require.Equal(ClassByteSwap, class)

	// 2-byte units.
	class, _ = classifyPair([]byte{0xAB, 0xCD}, []byte{0xCD, 0xAB})
	require.Equal(ClassByteSwap, class)
}

// Byte-equal payloads are identical, never byte-swap, even when every unit
// is palindromic and would also satisfy the swap test.
func TestClassifyPairExclusivity(t *testing.T) {
	palindrome := []byte{1, 2, 2, 1}
	class, _ := classifyPair(palindrome, palindrome)
	require.Equal(t, ClassIdentical, class)
}

func TestClassifyPairStructured(t *testing.T) {
	require := require.New(t)

	// ASCII prefix carried verbatim, numeric tail reversed per 4-byte unit.
	a := []byte{'N', 'a', 'm', 'e', 0x12, 0x34, 0x56, 0x78}
	b := []byte{'N', 'a', 'm', 'e', 0x78, 0x56, 0x34, 0x12}

	class, segments := classifyPair(a, b)
	require.Equal(ClassStructured, class)
	require.Equal([]Segment{
		{Kind: SegIdentical, Length: 4},
		{Kind: SegSwap4, Length: 4},
	}, segments)
}

func TestClassifyPairUnclassified(t *testing.T) {
	class, segments := classifyPair([]byte{1, 2}, []byte{3, 4})
	require.Equal(t, ClassUnclassified, class)
	require.Nil(t, segments)
}

func TestClassifyPairSizeMismatch(t *testing.T) {
	class, _ := classifyPair([]byte{1, 2, 3}, []byte{1, 2, 3, 4})
	require.Equal(t, ClassSizeMismatch, class)
}

func TestTokenizeMergesAdjacentRuns(t *testing.T) {
	a := []byte{0x12, 0x34, 0x56, 0x78, 0xAA, 0xBB}
	b := []byte{0x78, 0x56, 0x34, 0x12, 0xBB, 0xAA}

	segments, ok := tokenize(a, b)
	require.True(t, ok)
	require.Equal(t, []Segment{
		{Kind: SegSwap4, Length: 4},
		{Kind: SegSwap2, Length: 2},
	}, segments)
}

func TestCompareSubrecordsPairing(t *testing.T) {
	require := require.New(t)

	subsA := []container.Subrecord{
		sub("EDID", 'A', 0),
		sub("KWDA", 1, 0, 0, 0),
		sub("KWDA", 2, 0, 0, 0),
		sub("KWDA", 3, 0, 0, 0),
	}
	subsB := []container.Subrecord{
		sub("EDID", 'A', 0),
		sub("KWDA", 1, 0, 0, 0),
		sub("KWDA", 9, 9, 9, 9),
	}

	diffs := CompareSubrecords(subsA, subsB)
	require.Len(diffs, 4)

	require.Equal(ClassIdentical, diffs[0].Class)
	require.Equal(container.Sig("EDID"), diffs[0].Sig)

	require.Equal(ClassIdentical, diffs[1].Class)
	require.Equal(0, diffs[1].Instance)
	require.Equal(ClassUnclassified, diffs[2].Class)
	require.Equal(1, diffs[2].Instance)

	// Third KWDA has no partner: one count-mismatch entry for the unpaired
	// instance, with the absent side marked -1.
	require.Equal(ClassCountMismatch, diffs[3].Class)
	require.Equal(2, diffs[3].Instance)
	require.Equal(4, diffs[3].SizeA)
	require.Equal(-1, diffs[3].SizeB)
}

// Tally counts sum to the larger side's instance total, so per-signature
// accounting never loses unpaired instances.
func TestTallySumsToMaxCount(t *testing.T) {
	subsA := []container.Subrecord{
		sub("DATA", 1, 2, 3, 4),
		sub("DATA", 5, 6, 7, 8),
		sub("DATA", 9, 10, 11, 12),
		sub("EDID", 'X', 0),
	}
	subsB := []container.Subrecord{
		sub("DATA", 1, 2, 3, 4),
		sub("EDID", 'Y', 0),
		sub("ONAM", 1, 1),
	}

	diffs := CompareSubrecords(subsA, subsB)
	d := &RecordDiff{Subrecords: diffs}
	identical, size, content := d.Tally()

	// max(DATA)=3, max(EDID)=1, max(ONAM)=1.
	require.Equal(t, 5, identical+size+content)
	require.Equal(t, 1, identical)
	require.Equal(t, 3, size, "two unpaired DATA plus one unpaired ONAM")
	require.Equal(t, 1, content)
}

func TestRollup(t *testing.T) {
	require := require.New(t)

	require.Equal(RecordIdentical, rollup([]SubrecordDiff{
		{Class: ClassIdentical}, {Class: ClassByteSwap},
	}, 20, 20))

	require.Equal(RecordContentDiffers, rollup([]SubrecordDiff{
		{Class: ClassIdentical}, {Class: ClassStructured},
	}, 20, 20))

	require.Equal(RecordSizeOnly, rollup([]SubrecordDiff{
		{Class: ClassIdentical}, {Class: ClassSizeMismatch},
	}, 20, 24))

	// Per-subrecord sizes moved but the totals cancelled out.
	require.Equal(RecordContentDiffers, rollup([]SubrecordDiff{
		{Class: ClassSizeMismatch}, {Class: ClassSizeMismatch},
	}, 20, 20))
}
