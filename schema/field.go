// Package schema maps subrecord signatures to typed field layouts and
// decodes field values from raw payloads.
//
// A schema entry is keyed by (subrecord signature, owning record type or
// wildcard, payload length or wildcard). Multiple entries may match one
// signature; resolution is most-specific-first, as a deterministic priority
// rule rather than per-signature branching:
//
//	exact type + exact size > any type + exact size > exact type + any size > any/any
//
// Decoding advances a cursor through the payload in declared field order and
// stops early, without error, when the cursor would run past the end.
// Partial legacy payload shapes are expected and degrade to "fields not
// present" rather than failing the record.
package schema

import "github.com/arloliu/esmkit/container"

// FieldType is the primitive type of one schema field.
type FieldType uint8

const (
	UInt8 FieldType = iota
	Int8
	UInt16
	Int16
	UInt32
	Int32
	UInt64
	Float32
	Float64
	Vec3        // three float32
	Quat        // four float32
	PosRot      // position + rotation, six float32
	FormID      // 32-bit record reference
	FormIDArray // packed 32-bit references to end of payload
	String      // NUL-terminated text, no length field
	Color       // packed RGBA
)

// String returns the field type name.
func (t FieldType) String() string {
	switch t {
	case UInt8:
		return "uint8"
	case Int8:
		return "int8"
	case UInt16:
		return "uint16"
	case Int16:
		return "int16"
	case UInt32:
		return "uint32"
	case Int32:
		return "int32"
	case UInt64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Vec3:
		return "vec3"
	case Quat:
		return "quat"
	case PosRot:
		return "posrot"
	case FormID:
		return "formid"
	case FormIDArray:
		return "formid[]"
	case String:
		return "string"
	case Color:
		return "color"
	default:
		return "unknown"
	}
}

// impliedSize returns the type's intrinsic byte size, or 0 for
// variable-length types that consume the rest of the payload.
func (t FieldType) impliedSize() int {
	switch t {
	case UInt8, Int8:
		return 1
	case UInt16, Int16:
		return 2
	case UInt32, Int32, Float32, FormID, Color:
		return 4
	case UInt64, Float64:
		return 8
	case Vec3:
		return 12
	case Quat:
		return 16
	case PosRot:
		return 24
	default:
		return 0
	}
}

// IsReference reports whether the type holds FormID values subject to
// reference-integrity checking.
func (t FieldType) IsReference() bool {
	return t == FormID || t == FormIDArray
}

// Field describes one typed field of a subrecord layout.
type Field struct {
	// Name is the display name.
	Name string
	// Type is the primitive type.
	Type FieldType
	// Size overrides the type-implied size when nonzero.
	Size int
	// Repeat decodes the field this many consecutive times; 0 means once.
	Repeat int
}

// effectiveSize returns the cursor advance for one occurrence of the field,
// given the bytes remaining in the payload. Variable-length fields consume
// the remainder.
func (f Field) effectiveSize(remaining int) int {
	if f.Size > 0 {
		return f.Size
	}
	if implied := f.Type.impliedSize(); implied > 0 {
		return implied
	}

	return remaining
}

// SizeAny marks a schema that matches any payload length.
const SizeAny = -1

// Schema is one registered field layout.
type Schema struct {
	// Sig is the subrecord signature the layout applies to.
	Sig container.Signature
	// RecordType restricts the layout to one owning record type; the zero
	// signature matches any type.
	RecordType container.Signature
	// Size restricts the layout to one exact payload length; SizeAny matches
	// any length.
	Size int
	// Fields is the ordered field list.
	Fields []Field
}
