// Package layout recovers the space-filling-curve ordering behind an offset
// table by scoring candidate index functions against the order entries
// actually appear in the file.
//
// The correct generating scheme is unknown a priori, so it is computed, not
// assumed: each candidate (row-major, serpentine, Morton, Hilbert, and tiled
// combinations) is correlated against the observed storage order and all
// scores are reported, sorted by absolute correlation. A score near +/-1
// identifies the true layout algorithm.
package layout

import "fmt"

// GridCoord is a worldspace grid cell position.
type GridCoord struct {
	X, Y int
}

// Candidate is one layout hypothesis: a name and an index function mapping a
// grid position to its position along the candidate curve.
type Candidate struct {
	Name  string
	Index func(x, y int) int
}

// tileSizes are the tile dimensions the tiled candidates subdivide by.
var tileSizes = [2]int{4, 8}

// Candidates enumerates every layout hypothesis for a w x h grid: plain
// row-major and serpentine, Morton and Hilbert curves, and tiled variants
// where tiles are ordered by one scheme and cells within a tile row-major,
// optionally serpentine at the tile level.
func Candidates(w, h int) []Candidate {
	side := hilbertSide(w, h)
	list := []Candidate{
		{Name: "row-major", Index: func(x, y int) int { return y*w + x }},
		{Name: "row-major-serpentine", Index: func(x, y int) int {
			if y%2 == 1 {
				return y*w + (w - 1 - x)
			}

			return y*w + x
		}},
		{Name: "morton", Index: mortonIndex},
		{Name: "hilbert", Index: func(x, y int) int { return hilbertIndex(side, x, y) }},
	}

	for _, t := range tileSizes {
		tile := t
		tilesWide := (w + tile - 1) / tile
		cellsPerTile := tile * tile

		inTile := func(x, y int) int { return (y%tile)*tile + x%tile }

		list = append(list,
			Candidate{Name: tiledName(tile, "row-major"), Index: func(x, y int) int {
				tx, ty := x/tile, y/tile

				return (ty*tilesWide+tx)*cellsPerTile + inTile(x, y)
			}},
			Candidate{Name: tiledName(tile, "serpentine"), Index: func(x, y int) int {
				tx, ty := x/tile, y/tile
				if ty%2 == 1 {
					tx = tilesWide - 1 - tx
				}

				return (ty*tilesWide+tx)*cellsPerTile + inTile(x, y)
			}},
			Candidate{Name: tiledName(tile, "morton"), Index: func(x, y int) int {
				return mortonIndex(x/tile, y/tile)*cellsPerTile + inTile(x, y)
			}},
		)
	}

	return list
}

func tiledName(tile int, order string) string {
	return fmt.Sprintf("tiled%d-%s", tile, order)
}

// mortonIndex interleaves the coordinate bits, x in the even positions and y
// in the odd ones.
func mortonIndex(x, y int) int {
	d := 0
	for bit := 0; bit < 16; bit++ {
		d |= ((x >> bit) & 1) << (2 * bit)
		d |= ((y >> bit) & 1) << (2*bit + 1)
	}

	return d
}

// hilbertSide returns the smallest power-of-two curve side covering the
// grid. Unused curve positions collapse out under rank correlation.
func hilbertSide(w, h int) int {
	side := 1
	for side < w || side < h {
		side *= 2
	}

	return side
}

// hilbertIndex maps (x, y) to its distance along the Hilbert curve of the
// given power-of-two side, via the standard rotate-and-reflect recurrence.
func hilbertIndex(side, x, y int) int {
	d := 0
	for s := side / 2; s > 0; s /= 2 {
		rx := 0
		if x&s > 0 {
			rx = 1
		}
		ry := 0
		if y&s > 0 {
			ry = 1
		}
		d += s * s * ((3 * rx) ^ ry)

		// Rotate the quadrant so the curve keeps its orientation.
		if ry == 0 {
			if rx == 1 {
				x = s - 1 - x
				y = s - 1 - y
			}
			x, y = y, x
		}
	}

	return d
}
