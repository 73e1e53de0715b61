package schema

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/esmkit/container"
	"github.com/arloliu/esmkit/endian"
)

// Value is one decoded field occurrence. Raw aliases the payload slice; the
// typed accessors decode on demand using the owning file's encoding.
type Value struct {
	// Field is the schema field this value was decoded from.
	Field Field
	// Raw is the field's byte span within the payload.
	Raw []byte

	enc endian.Encoding
}

// DecodeFields decodes data against the schema's declared field order.
// Decoding stops early, without error, once the next field would run past
// the payload end; callers see the missing fields as simply absent.
//
// Parameters:
//   - s: Resolved schema
//   - data: Subrecord payload
//   - enc: Wire encoding of the owning file
//
// Returns:
//   - []Value: Decoded values in field order, one per repetition
func DecodeFields(s *Schema, data []byte, enc endian.Encoding) []Value {
	var values []Value
	cursor := 0
	for _, f := range s.Fields {
		repeat := f.Repeat
		if repeat <= 0 {
			repeat = 1
		}
		for i := 0; i < repeat; i++ {
			remaining := len(data) - cursor
			if remaining <= 0 {
				return values
			}
			size := f.effectiveSize(remaining)
			if size > remaining {
				return values
			}
			values = append(values, Value{
				Field: f,
				Raw:   data[cursor : cursor+size],
				enc:   enc,
			})
			cursor += size
		}
	}

	return values
}

// Decode resolves the most specific schema for a subrecord and decodes its
// fields. ok is false when the registry has no matching entry.
func Decode(reg *Registry, sub container.Subrecord, recType container.Signature, enc endian.Encoding) (values []Value, ok bool) {
	s := reg.Resolve(sub.Sig, recType, len(sub.Data))
	if s == nil {
		return nil, false
	}

	return DecodeFields(s, sub.Data, enc), true
}

// Uint returns the value as an unsigned integer. Only meaningful for
// integer, FormID, and color fields.
func (v Value) Uint() uint64 {
	engine := v.enc.Engine()
	switch len(v.Raw) {
	case 1:
		return uint64(v.Raw[0])
	case 2:
		return uint64(engine.Uint16(v.Raw))
	case 4:
		return uint64(engine.Uint32(v.Raw))
	case 8:
		return engine.Uint64(v.Raw)
	default:
		return 0
	}
}

// Int returns the value sign-extended to int64.
func (v Value) Int() int64 {
	u := v.Uint()
	switch len(v.Raw) {
	case 1:
		return int64(int8(u))
	case 2:
		return int64(int16(u))
	case 4:
		return int64(int32(u))
	default:
		return int64(u)
	}
}

// Float returns the value as a float64, for Float32 and Float64 fields.
func (v Value) Float() float64 {
	engine := v.enc.Engine()
	switch len(v.Raw) {
	case 4:
		return float64(math.Float32frombits(engine.Uint32(v.Raw)))
	case 8:
		return math.Float64frombits(engine.Uint64(v.Raw))
	default:
		return 0
	}
}

// Ref returns the value as a single FormID reference.
func (v Value) Ref() uint32 {
	if len(v.Raw) < 4 {
		return 0
	}

	return v.enc.Engine().Uint32(v.Raw[:4])
}

// Refs returns every packed FormID in the field, for FormID and FormIDArray
// fields. A trailing partial entry is dropped.
func (v Value) Refs() []uint32 {
	engine := v.enc.Engine()
	refs := make([]uint32, 0, len(v.Raw)/4)
	for i := 0; i+4 <= len(v.Raw); i += 4 {
		refs = append(refs, engine.Uint32(v.Raw[i:i+4]))
	}

	return refs
}

// Floats returns the packed float32 components of Vec3, Quat, and PosRot
// fields.
func (v Value) Floats() []float32 {
	engine := v.enc.Engine()
	out := make([]float32, 0, len(v.Raw)/4)
	for i := 0; i+4 <= len(v.Raw); i += 4 {
		out = append(out, math.Float32frombits(engine.Uint32(v.Raw[i:i+4])))
	}

	return out
}

// Text returns the field as a NUL-terminated string, clamping to the payload
// length when the terminator is missing.
func (v Value) Text() string {
	if i := bytes.IndexByte(v.Raw, 0); i >= 0 {
		return string(v.Raw[:i])
	}

	return string(v.Raw)
}

// String renders the value for display. Non-printable bytes in text fields
// are escaped rather than echoed as control characters.
func (v Value) String() string {
	switch v.Field.Type {
	case UInt8, UInt16, UInt32, UInt64, Color:
		return fmt.Sprintf("%d", v.Uint())
	case Int8, Int16, Int32:
		return fmt.Sprintf("%d", v.Int())
	case Float32, Float64:
		return fmt.Sprintf("%g", v.Float())
	case FormID:
		return fmt.Sprintf("%08X", v.Ref())
	case FormIDArray:
		parts := make([]string, 0, len(v.Raw)/4)
		for _, ref := range v.Refs() {
			parts = append(parts, fmt.Sprintf("%08X", ref))
		}

		return "[" + strings.Join(parts, " ") + "]"
	case Vec3, Quat, PosRot:
		parts := make([]string, 0, len(v.Raw)/4)
		for _, f := range v.Floats() {
			parts = append(parts, fmt.Sprintf("%g", f))
		}

		return "(" + strings.Join(parts, ", ") + ")"
	case String:
		return printable(v.Text())
	default:
		return fmt.Sprintf("% X", v.Raw)
	}
}

// printable replaces non-printable characters with escaped hex so terminal
// output never receives raw control bytes.
func printable(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7F {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "\\x%02X", c)
		}
	}

	return b.String()
}
