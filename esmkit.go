// Package esmkit provides a read-only analysis engine for the nested binary
// ESM container format, covering both of its wire encodings: the
// little-endian PC reference encoding and the big-endian streaming encoding.
//
// The engine is byte-offset exact: it walks the group/record/subrecord tree,
// transparently flips endianness, transparently decompresses record
// payloads, resolves arbitrary byte offsets to chunk paths, and decodes
// schema-registered fields precisely enough to diff individual field values
// across encodings.
//
// # Core Features
//
//   - Wire-encoding detection from signature orientation
//   - Iterative, allocation-light group/record tree traversal
//   - Transparent deflate payload decompression with declared-size validation
//   - FormID indexing (editor names, content-hash summaries) and
//     reference-integrity checking
//   - Schema-driven field decoding with wildcard specificity resolution
//   - Cross-encoding record/subrecord comparison, including pure byte-order
//     transform recognition
//   - Delta-encoded heightmap decoding, worldspace stitching, and terrain
//     snapshot diffing
//   - Statistical recovery of offset-table layout order (row-major, Morton,
//     Hilbert, tiled variants)
//
// # Basic Usage
//
// Loading a file and scanning its records:
//
//	nav, err := esmkit.Load(data)
//	if err != nil {
//	    return err
//	}
//	records, err := nav.ScanByType(container.Sig("LAND"))
//
// Comparing two encodings of the same content:
//
//	diff, err := esmkit.CompareBuffers(bigEndianData, littleEndianData)
//	fmt.Printf("identical=%d size-only=%d content=%d\n",
//	    diff.Identical, diff.SizeOnly, diff.ContentDiffers)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the container,
// index, schema, compare, terrain, and layout packages, simplifying the most
// common use cases. For fine-grained control, use those packages directly.
//
// # Concurrency
//
// Every exported structure is immutable after construction. Concurrent scans
// over one loaded buffer are safe without locking; each call carries its own
// cursor and stack state.
package esmkit

import (
	"github.com/arloliu/esmkit/compare"
	"github.com/arloliu/esmkit/container"
	"github.com/arloliu/esmkit/endian"
	"github.com/arloliu/esmkit/index"
	"github.com/arloliu/esmkit/schema"
)

// Load parses the file header of data and returns a navigator over its
// group/record tree.
func Load(data []byte, opts ...container.Option) (*container.Navigator, error) {
	return container.NewNavigator(data, opts...)
}

// DetectEncoding determines the wire encoding of data without parsing the
// rest of the header.
func DetectEncoding(data []byte) (endian.Encoding, error) {
	return container.DetectEncoding(data)
}

// BuildIndex scans the file once and returns its FormID lookup maps.
func BuildIndex(nav *container.Navigator) (*index.Index, error) {
	return index.Build(nav)
}

// CompareBuffers loads two buffers, matches their records by FormID, and
// returns the whole-file comparison rollup. The buffers may use different
// encodings.
func CompareBuffers(a, b []byte) (*compare.FileDiff, error) {
	navA, err := container.NewNavigator(a)
	if err != nil {
		return nil, err
	}
	navB, err := container.NewNavigator(b)
	if err != nil {
		return nil, err
	}

	return compare.CompareFiles(navA, navB)
}

// DefaultSchemas returns the registry of built-in subrecord field layouts.
func DefaultSchemas() *schema.Registry {
	return schema.DefaultRegistry()
}
