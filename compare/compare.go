// Package compare walks two containers' matching records and classifies
// cross-encoding differences down to individual subrecord granularity.
//
// The record-level three-way classification (identical, size-only-differs,
// content-differs) is the single summary statistic every higher-level
// command reports. Subrecord pairs additionally recognize pure byte-order
// transforms, so a big-endian and a little-endian encoding of the same
// logical content roll up as identical rather than as a wall of byte diffs.
package compare

import (
	"bytes"

	"github.com/arloliu/esmkit/container"
)

// SubrecordClass classifies one paired subrecord comparison.
type SubrecordClass uint8

const (
	// ClassIdentical means byte-equal payloads.
	ClassIdentical SubrecordClass = iota
	// ClassByteSwap means every aligned 2- or 4-byte unit is the exact
	// reverse of the other side. Only fires when sizes match; mutually
	// exclusive with ClassIdentical.
	ClassByteSwap
	// ClassStructured means the pair decomposes into a run-length list of
	// identical and byte-swapped segments.
	ClassStructured
	// ClassUnclassified means no byte-order decomposition fits.
	ClassUnclassified
	// ClassSizeMismatch means the paired instances have different payload
	// sizes.
	ClassSizeMismatch
	// ClassCountMismatch means one side has more instances of the signature.
	// Always reported per missing instance, never merged.
	ClassCountMismatch
)

// String returns the classification name.
func (c SubrecordClass) String() string {
	switch c {
	case ClassIdentical:
		return "identical"
	case ClassByteSwap:
		return "byte-swap"
	case ClassStructured:
		return "structured"
	case ClassUnclassified:
		return "unclassified"
	case ClassSizeMismatch:
		return "size-mismatch"
	case ClassCountMismatch:
		return "count-mismatch"
	default:
		return "unknown"
	}
}

// RecordClass is the record-level rollup.
type RecordClass uint8

const (
	// RecordIdentical means all subrecord pairs are identical or pure
	// byte-order transforms.
	RecordIdentical RecordClass = iota
	// RecordSizeOnly means total payload lengths differ but zero subrecords
	// show content differences beyond that.
	RecordSizeOnly
	// RecordContentDiffers means at least one subrecord pair differs in
	// content.
	RecordContentDiffers
)

// String returns the rollup name.
func (c RecordClass) String() string {
	switch c {
	case RecordIdentical:
		return "identical"
	case RecordSizeOnly:
		return "size-only-differs"
	case RecordContentDiffers:
		return "content-differs"
	default:
		return "unknown"
	}
}

// SubrecordDiff is the classification of one subrecord instance pair (or of
// one unpaired instance, for count mismatches).
type SubrecordDiff struct {
	// Sig is the subrecord signature.
	Sig container.Signature
	// Instance is the per-signature instance number, 0-based.
	Instance int
	// Class is the pair classification.
	Class SubrecordClass
	// Segments describes the structured transform, for ClassStructured.
	Segments []Segment
	// SizeA and SizeB are the instance payload sizes; -1 marks a side with
	// no instance.
	SizeA, SizeB int
}

// RecordDiff is the full comparison of one FormID's record across two files.
type RecordDiff struct {
	// FormID identifies the compared record.
	FormID uint32
	// Type is the record type signature.
	Type container.Signature
	// Class is the record-level rollup.
	Class RecordClass
	// Subrecords lists every pair classification in signature-group order.
	Subrecords []SubrecordDiff
	// PayloadSizeA and PayloadSizeB are the total decompressed payload sizes.
	PayloadSizeA, PayloadSizeB int
}

// Tally buckets the subrecord classifications three ways: identical
// (including pure byte-order transforms), size-level differences (size and
// count mismatches), and content differences. The three counts sum to the
// larger of the two sides' subrecord counts.
func (d *RecordDiff) Tally() (identical, size, content int) {
	for _, sub := range d.Subrecords {
		switch sub.Class {
		case ClassIdentical, ClassByteSwap:
			identical++
		case ClassSizeMismatch, ClassCountMismatch:
			size++
		default:
			content++
		}
	}

	return identical, size, content
}

// classifyPair classifies two same-signature subrecord payloads.
func classifyPair(a, b []byte) (SubrecordClass, []Segment) {
	if len(a) != len(b) {
		return ClassSizeMismatch, nil
	}
	if bytes.Equal(a, b) {
		return ClassIdentical, nil
	}
	if wholeSwap(a, b, 4) || wholeSwap(a, b, 2) {
		return ClassByteSwap, nil
	}
	if segments, ok := tokenize(a, b); ok {
		return ClassStructured, segments
	}

	return ClassUnclassified, nil
}

// CompareSubrecords pairs two subrecord sequences positionally by
// signature-group and classifies every pair. Signatures are grouped in
// first-appearance order (side A first, then signatures only B has);
// instance counts are matched first, then instances compared per position.
func CompareSubrecords(subsA, subsB []container.Subrecord) []SubrecordDiff {
	groupsA := groupBySig(subsA)
	groupsB := groupBySig(subsB)

	var order []container.Signature
	seen := make(map[container.Signature]bool)
	for _, sub := range subsA {
		if !seen[sub.Sig] {
			seen[sub.Sig] = true
			order = append(order, sub.Sig)
		}
	}
	for _, sub := range subsB {
		if !seen[sub.Sig] {
			seen[sub.Sig] = true
			order = append(order, sub.Sig)
		}
	}

	var diffs []SubrecordDiff
	for _, sig := range order {
		listA, listB := groupsA[sig], groupsB[sig]
		paired := min(len(listA), len(listB))

		for i := 0; i < paired; i++ {
			class, segments := classifyPair(listA[i].Data, listB[i].Data)
			diffs = append(diffs, SubrecordDiff{
				Sig:      sig,
				Instance: i,
				Class:    class,
				Segments: segments,
				SizeA:    len(listA[i].Data),
				SizeB:    len(listB[i].Data),
			})
		}

		for i := paired; i < len(listA); i++ {
			diffs = append(diffs, SubrecordDiff{
				Sig: sig, Instance: i, Class: ClassCountMismatch,
				SizeA: len(listA[i].Data), SizeB: -1,
			})
		}
		for i := paired; i < len(listB); i++ {
			diffs = append(diffs, SubrecordDiff{
				Sig: sig, Instance: i, Class: ClassCountMismatch,
				SizeA: -1, SizeB: len(listB[i].Data),
			})
		}
	}

	return diffs
}

// groupBySig buckets subrecords per signature, preserving instance order.
func groupBySig(subs []container.Subrecord) map[container.Signature][]container.Subrecord {
	groups := make(map[container.Signature][]container.Subrecord)
	for _, sub := range subs {
		groups[sub.Sig] = append(groups[sub.Sig], sub)
	}

	return groups
}

// rollup derives the record-level class from the pair classifications and
// total payload sizes.
func rollup(diffs []SubrecordDiff, totalA, totalB int) RecordClass {
	sizeLevel := false
	for _, d := range diffs {
		switch d.Class {
		case ClassStructured, ClassUnclassified:
			return RecordContentDiffers
		case ClassSizeMismatch, ClassCountMismatch:
			sizeLevel = true
		}
	}
	if totalA != totalB {
		return RecordSizeOnly
	}
	if sizeLevel {
		// Per-subrecord sizes moved while the totals cancelled out; that is
		// a content-level difference, not a pure size change.
		return RecordContentDiffers
	}

	return RecordIdentical
}

// CompareRecords compares the same FormID's record across two files,
// potentially in different encodings. Each side's payload is decompressed
// with its own codec before the subrecord streams are paired.
//
// Returns:
//   - *RecordDiff: Full classification
//   - error: DecodeError when either payload fails to decompress,
//     FormatError when either chunk stream is malformed
func CompareRecords(navA *container.Navigator, recA container.Record, navB *container.Navigator, recB container.Record) (*RecordDiff, error) {
	subsA, err := navA.Subrecords(recA)
	if err != nil {
		return nil, err
	}
	subsB, err := navB.Subrecords(recB)
	if err != nil {
		return nil, err
	}

	totalA := payloadTotal(subsA)
	totalB := payloadTotal(subsB)
	diffs := CompareSubrecords(subsA, subsB)

	return &RecordDiff{
		FormID:       recA.FormID,
		Type:         recA.Sig,
		Class:        rollup(diffs, totalA, totalB),
		Subrecords:   diffs,
		PayloadSizeA: totalA,
		PayloadSizeB: totalB,
	}, nil
}

// payloadTotal sums subrecord payload and header sizes, reproducing the
// record's decompressed payload length.
func payloadTotal(subs []container.Subrecord) int {
	total := 0
	for _, sub := range subs {
		total += container.SubheaderSize + len(sub.Data)
	}

	return total
}
