// Package index builds per-file FormID lookup maps and runs the
// reference-integrity check.
//
// The maps are built by one full scan and are immutable afterwards, owned by
// the caller for the lifetime of one file's analysis. They are never
// persisted and never shared as process-wide state; load a second file,
// build a second index.
package index

import (
	"github.com/arloliu/esmkit/container"
	"github.com/arloliu/esmkit/internal/hash"
)

// Entry locates one record by FormID.
type Entry struct {
	// Type is the record type signature.
	Type container.Signature
	// Offset is the absolute byte offset of the record header.
	Offset int64
	// Size is the declared payload size.
	Size uint32
	// Compressed mirrors the record's compression flag.
	Compressed bool
}

// Summary is the lightweight identity of a record lacking an editor name:
// type, size, and a content digest of the payload bytes.
type Summary struct {
	Type container.Signature
	Size uint32
	Hash uint64
}

// Index holds the per-file FormID lookup maps.
type Index struct {
	entries   map[uint32]Entry
	editorIDs map[uint32]string
	summaries map[uint32]Summary

	// Skipped counts records whose payload could not be read during the
	// build, whether decompression failed or the payload span was malformed;
	// they are located but carry no editor ID or summary.
	Skipped int
}

// sigEditorID is the editor-name subrecord signature.
var sigEditorID = container.Sig("EDID")

// Build scans the whole file once and returns the FormID maps: FormID to
// editor-name string when the record carries one, and FormID to
// {type, size, content-hash} summary when it does not.
//
// Records whose payload cannot be read are skipped for naming and
// summarizing only; the skip is counted in Skipped, never silently dropped,
// and the record still resolves via Lookup.
func Build(nav *container.Navigator) (*Index, error) {
	idx := &Index{
		entries:   make(map[uint32]Entry),
		editorIDs: make(map[uint32]string),
		summaries: make(map[uint32]Summary),
	}

	err := nav.Scan(func(rec container.Record) bool {
		if rec.FormID == 0 {
			return true
		}
		idx.entries[rec.FormID] = Entry{
			Type:       rec.Sig,
			Offset:     rec.Offset,
			Size:       rec.DataSize,
			Compressed: rec.Compressed(),
		}

		payload, perr := nav.Payload(rec)
		if perr != nil {
			idx.Skipped++

			return true
		}

		if edid, ok := editorID(payload, rec); ok {
			idx.editorIDs[rec.FormID] = edid
		} else {
			idx.summaries[rec.FormID] = Summary{
				Type: rec.Sig,
				Size: rec.DataSize,
				Hash: hash.Payload(payload),
			}
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	return idx, nil
}

// editorID extracts the record's EDID string, when present. A malformed
// chunk stream past the EDID position does not discard a name already found.
func editorID(payload []byte, rec container.Record) (string, bool) {
	var edid string
	found := false
	_ = container.WalkPayload(payload, rec.Encoding, func(sub container.Subrecord) bool {
		if sub.Sig == sigEditorID {
			edid = zstring(sub.Data)
			found = true

			return false
		}

		return true
	})

	return edid, found
}

// Lookup resolves a FormID to its record location. FormID 0 is the null
// reference and is always a miss; it must never reach the maps.
func (ix *Index) Lookup(id uint32) (Entry, bool) {
	if id == 0 {
		return Entry{}, false
	}
	e, ok := ix.entries[id]

	return e, ok
}

// EditorID returns the record's editor-name string, when one was indexed.
func (ix *Index) EditorID(id uint32) (string, bool) {
	if id == 0 {
		return "", false
	}
	s, ok := ix.editorIDs[id]

	return s, ok
}

// Summary returns the type/size/hash summary of a record that has no editor
// name.
func (ix *Index) Summary(id uint32) (Summary, bool) {
	if id == 0 {
		return Summary{}, false
	}
	s, ok := ix.summaries[id]

	return s, ok
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// zstring clamps a NUL-terminated payload to its terminator.
func zstring(data []byte) string {
	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}

	return string(data)
}
