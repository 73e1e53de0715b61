package index

import (
	"github.com/arloliu/esmkit/container"
	"github.com/arloliu/esmkit/schema"
)

// BrokenRef is one FormID field value that resolves to no record in the
// file.
type BrokenRef struct {
	// Record is the FormID of the record holding the dangling reference.
	Record uint32
	// RecordType is that record's type signature.
	RecordType container.Signature
	// Sub is the subrecord signature the field was decoded from.
	Sub container.Signature
	// Field is the schema field name.
	Field string
	// Target is the FormID value that failed to resolve.
	Target uint32
}

// ReferenceReport summarizes one reference-integrity pass.
type ReferenceReport struct {
	// Checked is the number of nonzero FormID values verified.
	Checked int
	// Missing lists every dangling reference found.
	Missing []BrokenRef
	// SkippedRecords counts records excluded because their payload could not
	// be read: failed decompression or a malformed subrecord stream. The skip
	// is counted and reported, never silent.
	SkippedRecords int
}

// CheckReferences verifies that every schema-known FormID field value in
// every record resolves to a record FormID present in idx. The null
// reference 0 is exempt.
//
// Parameters:
//   - nav: Navigator over the file
//   - idx: Index built from the same file
//   - reg: Schema registry identifying FormID-typed fields
//
// Returns:
//   - *ReferenceReport: Check totals and dangling references
//   - error: FormatError when the top-level scan itself fails
func CheckReferences(nav *container.Navigator, idx *Index, reg *schema.Registry) (*ReferenceReport, error) {
	report := &ReferenceReport{}
	enc := nav.Encoding()

	err := nav.Scan(func(rec container.Record) bool {
		subs, serr := nav.Subrecords(rec)
		if serr != nil {
			report.SkippedRecords++

			return true
		}

		for _, sub := range subs {
			values, ok := schema.Decode(reg, sub, rec.Sig, enc)
			if !ok {
				continue
			}
			for _, v := range values {
				if !v.Field.Type.IsReference() {
					continue
				}
				for _, target := range v.Refs() {
					if target == 0 {
						continue
					}
					report.Checked++
					if _, found := idx.Lookup(target); !found {
						report.Missing = append(report.Missing, BrokenRef{
							Record:     rec.FormID,
							RecordType: rec.Sig,
							Sub:        sub.Sig,
							Field:      v.Field.Name,
							Target:     target,
						})
					}
				}
			}
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}
