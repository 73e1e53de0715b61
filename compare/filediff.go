package compare

import (
	"github.com/arloliu/esmkit/container"
	"github.com/arloliu/esmkit/errs"
)

// FileDiff is the whole-file comparison rollup, keyed by FormID.
type FileDiff struct {
	// Identical, SizeOnly, and ContentDiffers count matched records per
	// record-level class.
	Identical      int
	SizeOnly       int
	ContentDiffers int
	// Diffs holds the full classification of every matched record that is
	// not identical.
	Diffs []*RecordDiff
	// OnlyInA and OnlyInB list FormIDs present on one side only.
	OnlyInA, OnlyInB []uint32
	// Skipped counts matched records dropped because a payload failed to
	// decode on either side. Counted, never silent.
	Skipped int
}

// CompareFiles matches records across two files by FormID and rolls up the
// per-record classifications. The two files may use different encodings.
//
// Returns:
//   - *FileDiff: Per-class counts, non-identical diffs, and unmatched FormIDs
//   - error: FormatError when either file's top-level scan fails
func CompareFiles(navA, navB *container.Navigator) (*FileDiff, error) {
	recordsA, err := collect(navA)
	if err != nil {
		return nil, err
	}
	recordsB, err := collect(navB)
	if err != nil {
		return nil, err
	}

	diff := &FileDiff{}
	orderA, err := navA.ScanAll()
	if err != nil {
		return nil, err
	}

	for _, recA := range orderA {
		if recA.FormID == 0 {
			continue
		}
		recB, ok := recordsB[recA.FormID]
		if !ok {
			diff.OnlyInA = append(diff.OnlyInA, recA.FormID)

			continue
		}

		rd, cerr := CompareRecords(navA, recA, navB, recB)
		if cerr != nil {
			if errs.IsDecode(cerr) || errs.IsFormat(cerr) {
				diff.Skipped++

				continue
			}

			return nil, cerr
		}

		switch rd.Class {
		case RecordIdentical:
			diff.Identical++
		case RecordSizeOnly:
			diff.SizeOnly++
			diff.Diffs = append(diff.Diffs, rd)
		case RecordContentDiffers:
			diff.ContentDiffers++
			diff.Diffs = append(diff.Diffs, rd)
		}
	}

	for id := range recordsB {
		if _, ok := recordsA[id]; !ok {
			diff.OnlyInB = append(diff.OnlyInB, id)
		}
	}

	return diff, nil
}

// collect maps every nonzero FormID to its record.
func collect(nav *container.Navigator) (map[uint32]container.Record, error) {
	records := make(map[uint32]container.Record)
	err := nav.Scan(func(rec container.Record) bool {
		if rec.FormID != 0 {
			records[rec.FormID] = rec
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
