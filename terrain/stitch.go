package terrain

import "github.com/arloliu/esmkit/errs"

// CellCoord is a worldspace exterior-cell grid coordinate.
type CellCoord struct {
	X, Y int32
}

// Raster is a stitched worldspace heightmap, normalized to 8-bit intensity.
// Pixels are stored row-major with row 0 at the north edge.
type Raster struct {
	// MinX, MinY, MaxX, MaxY are the cell-coordinate bounds of the stitch.
	MinX, MinY, MaxX, MaxY int32
	// Width and Height are the pixel dimensions.
	Width, Height int
	// Pix holds Width*Height intensities.
	Pix []uint8
}

// At returns the intensity at pixel (px, py).
func (r *Raster) At(px, py int) uint8 {
	return r.Pix[py*r.Width+px]
}

// Stitch composes one raster from per-cell height grids. Each cell occupies
// a fixed 33x33 pixel block; cells are flipped vertically (local row 0 is
// the south edge, raster row 0 is north) and intensities are normalized
// globally across all cells.
//
// Parameters:
//   - cells: Decoded grid per cell coordinate
//
// Returns:
//   - *Raster: Stitched, normalized raster; absent cells stay at intensity 0
//   - error: errs.ErrEmptyGrid when cells is empty
func Stitch(cells map[CellCoord]*HeightGrid) (*Raster, error) {
	if len(cells) == 0 {
		return nil, errs.ErrEmptyGrid
	}

	first := true
	var r Raster
	var lo, hi float64
	for coord, grid := range cells {
		gLo, gHi := grid.Range()
		if first {
			r.MinX, r.MaxX, r.MinY, r.MaxY = coord.X, coord.X, coord.Y, coord.Y
			lo, hi = gLo, gHi
			first = false

			continue
		}
		r.MinX = min(r.MinX, coord.X)
		r.MaxX = max(r.MaxX, coord.X)
		r.MinY = min(r.MinY, coord.Y)
		r.MaxY = max(r.MaxY, coord.Y)
		lo = min(lo, gLo)
		hi = max(hi, gHi)
	}

	r.Width = int(r.MaxX-r.MinX+1) * GridSize
	r.Height = int(r.MaxY-r.MinY+1) * GridSize
	r.Pix = make([]uint8, r.Width*r.Height)

	scale := 0.0
	if hi > lo {
		scale = 255.0 / (hi - lo)
	}

	for coord, grid := range cells {
		blockX := int(coord.X-r.MinX) * GridSize
		// Larger Y is further north; raster row 0 is north.
		blockY := int(r.MaxY-coord.Y) * GridSize
		for row := 0; row < GridSize; row++ {
			py := blockY + (GridSize - 1 - row)
			for col := 0; col < GridSize; col++ {
				v := (grid.Height(col, row) - lo) * scale
				r.Pix[py*r.Width+blockX+col] = uint8(v)
			}
		}
	}

	return &r, nil
}
