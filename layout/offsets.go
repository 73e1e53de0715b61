package layout

import (
	"slices"

	"github.com/arloliu/esmkit/endian"
	"github.com/arloliu/esmkit/errs"
)

// CellOffset is one entry of a worldspace offset table: a grid position and
// the byte offset of that cell's data relative to the owning record, 0
// meaning the cell is absent.
type CellOffset struct {
	Coord  GridCoord
	Offset uint32
}

// ParseOffsetTable decodes a flat u32 offset table laid out row-major over a
// width x height grid, minY to maxY then minX to maxX. Coordinates in the
// result are 0-based relative grid positions.
//
// Parameters:
//   - data: Offset table payload
//   - engine: Endian engine of the owning file
//   - width, height: Grid dimensions
//
// Returns:
//   - []CellOffset: One entry per grid cell, zero offsets included
//   - error: errs.ErrTableShape when the payload length is not width*height*4
func ParseOffsetTable(data []byte, engine endian.EndianEngine, width, height int) ([]CellOffset, error) {
	if width <= 0 || height <= 0 || len(data) != width*height*4 {
		return nil, errs.ErrTableShape
	}

	offsets := make([]CellOffset, 0, width*height)
	for i := 0; i < width*height; i++ {
		offsets = append(offsets, CellOffset{
			Coord:  GridCoord{X: i % width, Y: i / width},
			Offset: engine.Uint32(data[i*4 : i*4+4]),
		})
	}

	return offsets, nil
}

// StorageOrder returns the non-null cells sorted by their byte offset, i.e.
// the order the cells' records actually appear in the file rather than table
// index order. Ties keep table order.
func StorageOrder(offsets []CellOffset) []GridCoord {
	present := make([]CellOffset, 0, len(offsets))
	for _, o := range offsets {
		if o.Offset != 0 {
			present = append(present, o)
		}
	}

	slices.SortStableFunc(present, func(a, b CellOffset) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		default:
			return 0
		}
	})

	order := make([]GridCoord, len(present))
	for i, o := range present {
		order[i] = o.Coord
	}

	return order
}
