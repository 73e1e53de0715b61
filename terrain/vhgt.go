// Package terrain decodes delta-encoded heightmap grids, stitches per-cell
// grids into a worldspace-scale raster, and detects differences between two
// terrain snapshots.
//
// One cell's heightmap is a float base height followed by a flattened 33x33
// grid of signed-byte deltas, each one step of 8 world units. Reconstruction
// uses two nested accumulators, not a flat cumulative sum: the column
// accumulator persists across rows and advances by each row's first delta,
// while the row accumulator resets at each row start and advances by the
// remaining deltas. A grid of all-zero deltas therefore decodes to the base
// height at every cell.
//
// The delta stream stores column-major relative to in-memory row/col
// addressing: flat index i maps to column i mod 33 and row i div 33, and the
// accessor follows the source's heights[col, row] convention. Both the axis
// convention and the stitcher's north/south flip are empirical contracts
// validated against known-good sample files.
package terrain

import (
	"math"

	"github.com/arloliu/esmkit/endian"
	"github.com/arloliu/esmkit/errs"
)

const (
	// GridSize is the per-cell sample count along each axis.
	GridSize = 33
	// deltaCount is the flattened delta grid length.
	deltaCount = GridSize * GridSize
	// PayloadSize is the wire size of a heightmap subrecord payload.
	PayloadSize = 4 + deltaCount
	// HeightUnit is the world-unit size of one delta step.
	HeightUnit = 8.0
)

// HeightGrid is one cell's decoded 33x33 grid of absolute heights.
type HeightGrid struct {
	// Base is the float base height the deltas accumulate onto.
	Base float32

	heights [deltaCount]float64
}

// DecodeHeightGrid reconstructs absolute heights from a heightmap subrecord
// payload. Payloads longer than the base+delta region (trailing normal data)
// are accepted; shorter ones are a decode error.
//
// Parameters:
//   - data: Subrecord payload, at least 4+33*33 bytes
//   - engine: Endian engine of the owning file
//
// Returns:
//   - *HeightGrid: Decoded grid
//   - error: errs.ErrGridSize when the payload is too short
func DecodeHeightGrid(data []byte, engine endian.EndianEngine) (*HeightGrid, error) {
	if len(data) < PayloadSize {
		return nil, errs.ErrGridSize
	}

	grid := &HeightGrid{Base: math.Float32frombits(engine.Uint32(data[0:4]))}
	deltas := data[4 : 4+deltaCount]

	colAccum := float64(grid.Base)
	for row := 0; row < GridSize; row++ {
		rowAccum := 0.0
		for col := 0; col < GridSize; col++ {
			step := float64(int8(deltas[row*GridSize+col])) * HeightUnit
			if col == 0 {
				colAccum += step
			} else {
				rowAccum += step
			}
			grid.heights[row*GridSize+col] = colAccum + rowAccum
		}
	}

	return grid, nil
}

// Height returns the absolute height at (col, row), 0-based, row 0 being the
// cell's south edge.
func (g *HeightGrid) Height(col, row int) float64 {
	return g.heights[row*GridSize+col]
}

// Range returns the minimum and maximum heights of the grid.
func (g *HeightGrid) Range() (minHeight, maxHeight float64) {
	minHeight, maxHeight = g.heights[0], g.heights[0]
	for _, h := range g.heights[1:] {
		if h < minHeight {
			minHeight = h
		}
		if h > maxHeight {
			maxHeight = h
		}
	}

	return minHeight, maxHeight
}
