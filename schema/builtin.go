package schema

import "github.com/arloliu/esmkit/container"

// anyType matches every owning record type.
var anyType = container.Signature{}

// DefaultRegistry returns a registry preloaded with the field layouts the
// analysis commands rely on. The set is deliberately a subset: unregistered
// subrecords still compare byte-for-byte, they just render as hex.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Editor and display names appear on nearly every record type.
	r.Register(&Schema{Sig: container.Sig("EDID"), RecordType: anyType, Size: SizeAny, Fields: []Field{
		{Name: "EditorID", Type: String},
	}})
	r.Register(&Schema{Sig: container.Sig("FULL"), RecordType: anyType, Size: SizeAny, Fields: []Field{
		{Name: "Name", Type: String},
	}})

	// Cell grid coordinates; the 12-byte shape appends land-hide flags.
	r.Register(&Schema{Sig: container.Sig("XCLC"), RecordType: container.Sig("CELL"), Size: 8, Fields: []Field{
		{Name: "X", Type: Int32},
		{Name: "Y", Type: Int32},
	}})
	r.Register(&Schema{Sig: container.Sig("XCLC"), RecordType: container.Sig("CELL"), Size: 12, Fields: []Field{
		{Name: "X", Type: Int32},
		{Name: "Y", Type: Int32},
		{Name: "ForceHideLand", Type: UInt32},
	}})

	// Placed-reference plumbing.
	r.Register(&Schema{Sig: container.Sig("NAME"), RecordType: anyType, Size: 4, Fields: []Field{
		{Name: "Base", Type: FormID},
	}})
	r.Register(&Schema{Sig: container.Sig("XESP"), RecordType: anyType, Size: 8, Fields: []Field{
		{Name: "Parent", Type: FormID},
		{Name: "Flags", Type: UInt32},
	}})
	r.Register(&Schema{Sig: container.Sig("XOWN"), RecordType: anyType, Size: 4, Fields: []Field{
		{Name: "Owner", Type: FormID},
	}})
	r.Register(&Schema{Sig: container.Sig("XSCL"), RecordType: anyType, Size: 4, Fields: []Field{
		{Name: "Scale", Type: Float32},
	}})
	r.Register(&Schema{Sig: container.Sig("DATA"), RecordType: container.Sig("REFR"), Size: 24, Fields: []Field{
		{Name: "PositionRotation", Type: PosRot},
	}})

	// Worldspace geometry.
	r.Register(&Schema{Sig: container.Sig("WCTR"), RecordType: container.Sig("WRLD"), Size: 4, Fields: []Field{
		{Name: "CenterX", Type: Int16},
		{Name: "CenterY", Type: Int16},
	}})
	r.Register(&Schema{Sig: container.Sig("DNAM"), RecordType: container.Sig("WRLD"), Size: 8, Fields: []Field{
		{Name: "LandHeight", Type: Float32},
		{Name: "WaterHeight", Type: Float32},
	}})
	r.Register(&Schema{Sig: container.Sig("WNAM"), RecordType: container.Sig("WRLD"), Size: 4, Fields: []Field{
		{Name: "ParentWorld", Type: FormID},
	}})
	r.Register(&Schema{Sig: container.Sig("CNAM"), RecordType: container.Sig("WRLD"), Size: 4, Fields: []Field{
		{Name: "Climate", Type: FormID},
	}})

	// Terrain height offset; the delta grid itself is decoded by the terrain
	// package, the schema exposes the base height for typed display.
	r.Register(&Schema{Sig: container.Sig("VHGT"), RecordType: container.Sig("LAND"), Size: SizeAny, Fields: []Field{
		{Name: "Offset", Type: Float32},
	}})

	return r
}
