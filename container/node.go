package container

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/esmkit/endian"
)

const (
	// HeaderSize is the fixed size of a main chunk header (group or record).
	HeaderSize = 24
	// SubheaderSize is the fixed size of a subrecord header.
	SubheaderSize = 6
	// FlagCompressed is the record flag bit marking a deflate-compressed
	// payload.
	FlagCompressed = 0x00040000
)

// Signature is a 4-character chunk type tag. In the big-endian encoding the
// characters appear reversed on the wire; readers in this package normalize
// them, so a Signature value is always in logical (forward) order.
type Signature [4]byte

// Sig builds a Signature from a 4-character string literal.
func Sig(s string) Signature {
	var sig Signature
	copy(sig[:], s)

	return sig
}

// Well-known signatures.
var (
	SigTop   = Sig("TES4") // mandatory first record
	SigGroup = Sig("GRUP")
	SigXXXX  = Sig("XXXX") // extended-size marker subrecord
)

// String returns the signature as a 4-character string.
func (s Signature) String() string {
	return string(s[:])
}

// Valid reports whether every byte is in the tag alphabet (A-Z, 0-9, '_').
func (s Signature) Valid() bool {
	for _, b := range s {
		switch {
		case b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
		case b == '_':
		default:
			return false
		}
	}

	return true
}

// IsZero reports whether the signature is the zero value.
func (s Signature) IsZero() bool {
	return s == Signature{}
}

// readSignature extracts the signature at data[off:], normalizing the
// reversed character order of the big-endian encoding.
func readSignature(data []byte, off int64, enc endian.Encoding) Signature {
	var sig Signature
	if enc == endian.Big {
		sig[0], sig[1], sig[2], sig[3] = data[off+3], data[off+2], data[off+1], data[off]
	} else {
		copy(sig[:], data[off:off+4])
	}

	return sig
}

// GroupKind classifies what a group contains and how its label is
// interpreted.
type GroupKind uint32

const (
	GroupTopLevel         GroupKind = 0  // label = record type tag
	GroupWorldChildren    GroupKind = 1  // label = owning WRLD FormID
	GroupInteriorBlock    GroupKind = 2  // label = block number
	GroupInteriorSubBlock GroupKind = 3  // label = sub-block number
	GroupExteriorBlock    GroupKind = 4  // label = packed grid Y,X
	GroupExteriorSubBlock GroupKind = 5  // label = packed grid Y,X
	GroupCellChildren     GroupKind = 6  // label = owning CELL FormID
	GroupTopicChildren    GroupKind = 7  // label = owning DIAL FormID
	GroupCellPersistent   GroupKind = 8  // label = owning CELL FormID
	GroupCellTemporary    GroupKind = 9  // label = owning CELL FormID
	GroupCellDistant      GroupKind = 10 // label = owning CELL FormID
)

// MaxGroupKind is the highest defined group kind.
const MaxGroupKind = GroupCellDistant

// String returns a human-readable group kind name.
func (k GroupKind) String() string {
	switch k {
	case GroupTopLevel:
		return "top-level"
	case GroupWorldChildren:
		return "world-children"
	case GroupInteriorBlock:
		return "interior-block"
	case GroupInteriorSubBlock:
		return "interior-sub-block"
	case GroupExteriorBlock:
		return "exterior-block"
	case GroupExteriorSubBlock:
		return "exterior-sub-block"
	case GroupCellChildren:
		return "cell-children"
	case GroupTopicChildren:
		return "topic-children"
	case GroupCellPersistent:
		return "cell-persistent"
	case GroupCellTemporary:
		return "cell-temporary"
	case GroupCellDistant:
		return "cell-distant"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(k))
	}
}

// LabelIsFormID reports whether the kind's label holds an owning record
// FormID rather than a type tag, block number, or grid coordinate pair.
func (k GroupKind) LabelIsFormID() bool {
	switch k {
	case GroupWorldChildren, GroupCellChildren, GroupTopicChildren,
		GroupCellPersistent, GroupCellTemporary, GroupCellDistant:
		return true
	default:
		return false
	}
}

// Group is a container chunk holding child groups and records.
type Group struct {
	// Label is the kind-dependent 32-bit label, decoded in the file's
	// encoding.
	Label uint32
	// Kind is the numeric group kind (0-10).
	Kind GroupKind
	// Stamp is the group timestamp word.
	Stamp uint32
	// Offset is the absolute byte offset of the 24-byte group header.
	Offset int64
	// Size is the total group size in bytes, header included.
	Size uint32
	// Depth is the nesting depth; top-level groups are depth 0.
	Depth int
	// Encoding is the wire encoding the group was read with.
	Encoding endian.Encoding
}

// End returns the absolute offset one past the group's last byte. The span
// fully contains all children.
func (g Group) End() int64 {
	return g.Offset + int64(g.Size)
}

// BodyStart returns the absolute offset of the first child chunk.
func (g Group) BodyStart() int64 {
	return g.Offset + HeaderSize
}

// LabelSignature interprets the label as a 4-character type tag (kind 0).
func (g Group) LabelSignature() Signature {
	var sig Signature
	binary.LittleEndian.PutUint32(sig[:], g.Label)

	return sig
}

// LabelFormID interprets the label as an owning record FormID.
func (g Group) LabelFormID() uint32 {
	return g.Label
}

// LabelCoords interprets the label as a packed exterior grid coordinate pair
// (kinds 4 and 5): X in the low 16 bits, Y in the high 16 bits.
func (g Group) LabelCoords() (x, y int16) {
	return int16(g.Label & 0xFFFF), int16(g.Label >> 16)
}

// Record is a leaf chunk representing one object, identified by a FormID.
type Record struct {
	// Sig is the 4-character record type signature.
	Sig Signature
	// DataSize is the declared payload size in bytes. For compressed records
	// this is the stored (compressed) size including the 4-byte declared
	// decompressed-size prefix.
	DataSize uint32
	// Flags is the 32-bit record flag word.
	Flags uint32
	// FormID is the file-unique 32-bit identifier; 0 is the null reference.
	FormID uint32
	// Revision is the revision/version-control word.
	Revision uint32
	// Version is the per-record format version.
	Version uint16
	// Offset is the absolute byte offset of the 24-byte record header.
	Offset int64
	// Encoding is the wire encoding the record was read with.
	Encoding endian.Encoding
}

// Compressed reports whether the payload carries a deflate stream.
func (r Record) Compressed() bool {
	return r.Flags&FlagCompressed != 0
}

// End returns the absolute offset one past the record's last payload byte.
func (r Record) End() int64 {
	return r.Offset + HeaderSize + int64(r.DataSize)
}

// PayloadStart returns the absolute offset of the first payload byte.
func (r Record) PayloadStart() int64 {
	return r.Offset + HeaderSize
}

// Subrecord is a typed field chunk inside a record payload.
type Subrecord struct {
	// Sig is the 4-character subrecord signature.
	Sig Signature
	// Data is the payload. For records that required decompression it points
	// into the decompressed copy, never the source buffer.
	Data []byte
	// Offset is the byte offset of the 6-byte subrecord header, relative to
	// the start of the (decompressed) record payload.
	Offset int64
}

// Size returns the payload size in bytes.
func (s Subrecord) Size() int {
	return len(s.Data)
}
