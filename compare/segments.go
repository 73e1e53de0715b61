package compare

// SegmentKind classifies one run of a structured-transform description.
type SegmentKind uint8

const (
	// SegIdentical is a run of byte-equal data.
	SegIdentical SegmentKind = iota
	// SegSwap4 is a run where every aligned 4-byte unit is the exact reverse
	// of the other side.
	SegSwap4
	// SegSwap2 is a run where every aligned 2-byte unit is the exact reverse
	// of the other side.
	SegSwap2
)

// String returns the segment kind name.
func (k SegmentKind) String() string {
	switch k {
	case SegIdentical:
		return "identical"
	case SegSwap4:
		return "swap4"
	case SegSwap2:
		return "swap2"
	default:
		return "unknown"
	}
}

// Segment is one typed run of a structured transform, e.g. "4 bytes
// identical + 4 bytes swapped".
type Segment struct {
	Kind   SegmentKind
	Length int
}

// identicalRun returns the length of the byte-equal run at the cursor.
func identicalRun(a, b []byte) int {
	n := 0
	for n < len(a) && a[n] == b[n] {
		n++
	}

	return n
}

// swapRun returns the length of the run at the cursor where every aligned
// unit-sized group of a is the exact reverse of b. The result is a multiple
// of unit.
func swapRun(a, b []byte, unit int) int {
	n := 0
	for n+unit <= len(a) {
		swapped := true
		for i := 0; i < unit; i++ {
			if a[n+i] != b[n+unit-1-i] {
				swapped = false

				break
			}
		}
		if !swapped {
			break
		}
		n += unit
	}

	return n
}

// wholeSwap reports whether the entire payload is one uniform byte-order
// transform of the given unit size. Detected structurally, not by schema.
func wholeSwap(a, b []byte, unit int) bool {
	return len(a) > 0 && len(a)%unit == 0 && swapRun(a, b, unit) == len(a)
}

// tokenize greedily describes b as a sequence of identical, 4-byte-swap, and
// 2-byte-swap runs of a. At each cursor position the longest run wins; ties
// prefer identical over 4-byte swap over 2-byte swap, since longer
// structural units are more informative. ok is false when no run matches at
// some position, meaning the pair is unclassifiable as a byte-order
// transform.
func tokenize(a, b []byte) (segments []Segment, ok bool) {
	pos := 0
	for pos < len(a) {
		ident := identicalRun(a[pos:], b[pos:])
		swap4 := swapRun(a[pos:], b[pos:], 4)
		swap2 := swapRun(a[pos:], b[pos:], 2)

		kind := SegIdentical
		length := ident
		if swap4 > length {
			kind, length = SegSwap4, swap4
		}
		if swap2 > length {
			kind, length = SegSwap2, swap2
		}
		if length == 0 {
			return nil, false
		}

		if n := len(segments); n > 0 && segments[n-1].Kind == kind {
			segments[n-1].Length += length
		} else {
			segments = append(segments, Segment{Kind: kind, Length: length})
		}
		pos += length
	}

	return segments, true
}
