package schema

import "github.com/arloliu/esmkit/container"

// Registry holds schema entries and resolves the most specific match for a
// (signature, record type, payload length) key.
//
// A Registry is safe for concurrent reads after registration is complete.
type Registry struct {
	entries map[container.Signature][]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[container.Signature][]*Schema)}
}

// Register adds a schema entry. Entries registered earlier win specificity
// ties.
func (r *Registry) Register(s *Schema) {
	r.entries[s.Sig] = append(r.entries[s.Sig], s)
}

// specificity ranks how precisely a schema matches: an exact size counts
// double an exact record type, giving the deterministic order
// type+size > size-only > type-only > wildcard.
func specificity(s *Schema, recType container.Signature, size int) (int, bool) {
	score := 0
	if !s.RecordType.IsZero() {
		if s.RecordType != recType {
			return 0, false
		}
		score++
	}
	if s.Size != SizeAny {
		if s.Size != size {
			return 0, false
		}
		score += 2
	}

	return score, true
}

// Resolve returns the most specific schema for the key, or nil when no entry
// matches.
//
// Parameters:
//   - sig: Subrecord signature
//   - recType: Owning record type signature
//   - size: Payload length in bytes
func (r *Registry) Resolve(sig, recType container.Signature, size int) *Schema {
	var best *Schema
	bestScore := -1
	for _, s := range r.entries[sig] {
		score, ok := specificity(s, recType, size)
		if ok && score > bestScore {
			best = s
			bestScore = score
		}
	}

	return best
}
