package terrain

import (
	"fmt"
	"math"
	"slices"
)

// CellDiff is the per-cell difference between two terrain snapshots.
type CellDiff struct {
	// Coord is the cell grid coordinate.
	Coord CellCoord
	// Max and Avg are the maximum and mean absolute height difference over
	// the cell's grid points.
	Max, Avg float64
	// OverCount is the number of grid points whose difference exceeds the
	// threshold.
	OverCount int
}

// Rect is an inclusive cell-coordinate bounding rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY int32
}

// CellGroup is a 4-connected component of cells exceeding the difference
// threshold. Impact is magnitude times covered-point fraction and is used
// only for ranking, never for identity.
type CellGroup struct {
	// Cells lists the member coordinates.
	Cells []CellCoord
	// Bounds is the bounding rectangle of the members.
	Bounds Rect
	// MaxDiff is the largest per-point difference in the group.
	MaxDiff float64
	// AvgDiff is the mean of the members' average differences.
	AvgDiff float64
	// Impact is MaxDiff scaled by the fraction of the group's grid points
	// exceeding the threshold.
	Impact float64
}

// DiffReport is the result of comparing two terrain snapshots.
type DiffReport struct {
	// Compared is the number of cell coordinates present in both snapshots.
	Compared int
	// OnlyInA and OnlyInB count coordinates present on one side only.
	OnlyInA, OnlyInB int
	// Cells lists every compared cell whose max difference exceeds the
	// threshold.
	Cells []CellDiff
	// Groups lists the connected components of exceeding cells, ranked by
	// Impact descending.
	Groups []CellGroup
}

// DiffGrids compares two decoded height-grid sets keyed by the same grid
// coordinates. Cells whose maximum absolute difference exceeds threshold are
// grouped by 4-connected adjacency.
//
// Parameters:
//   - a, b: Height grids per cell coordinate
//   - threshold: World-unit difference a grid point must exceed to count
//
// Returns:
//   - *DiffReport: Per-cell diffs and ranked cell groups
//   - error: When threshold is negative
func DiffGrids(a, b map[CellCoord]*HeightGrid, threshold float64) (*DiffReport, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("negative threshold %g", threshold)
	}

	report := &DiffReport{}
	exceeding := make(map[CellCoord]CellDiff)

	for coord, gridA := range a {
		gridB, ok := b[coord]
		if !ok {
			report.OnlyInA++

			continue
		}
		report.Compared++

		diff := diffCell(coord, gridA, gridB, threshold)
		if diff.Max > threshold {
			report.Cells = append(report.Cells, diff)
			exceeding[coord] = diff
		}
	}
	for coord := range b {
		if _, ok := a[coord]; !ok {
			report.OnlyInB++
		}
	}

	slices.SortFunc(report.Cells, func(x, y CellDiff) int {
		if x.Coord.Y != y.Coord.Y {
			return int(x.Coord.Y - y.Coord.Y)
		}

		return int(x.Coord.X - y.Coord.X)
	})

	report.Groups = groupCells(exceeding)

	return report, nil
}

// diffCell computes max/avg absolute difference and the over-threshold point
// count for one cell pair.
func diffCell(coord CellCoord, a, b *HeightGrid, threshold float64) CellDiff {
	diff := CellDiff{Coord: coord}
	sum := 0.0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			d := math.Abs(a.Height(col, row) - b.Height(col, row))
			sum += d
			if d > diff.Max {
				diff.Max = d
			}
			if d > threshold {
				diff.OverCount++
			}
		}
	}
	diff.Avg = sum / deltaCount

	return diff
}

// groupCells builds 4-connected components over the exceeding cells and
// ranks them by impact score.
func groupCells(exceeding map[CellCoord]CellDiff) []CellGroup {
	visited := make(map[CellCoord]bool, len(exceeding))
	var groups []CellGroup

	// Deterministic seed order keeps group membership order stable.
	seeds := make([]CellCoord, 0, len(exceeding))
	for coord := range exceeding {
		seeds = append(seeds, coord)
	}
	slices.SortFunc(seeds, func(x, y CellCoord) int {
		if x.Y != y.Y {
			return int(x.Y - y.Y)
		}

		return int(x.X - y.X)
	})

	for _, seed := range seeds {
		if visited[seed] {
			continue
		}

		group := CellGroup{Bounds: Rect{MinX: seed.X, MinY: seed.Y, MaxX: seed.X, MaxY: seed.Y}}
		queue := []CellCoord{seed}
		visited[seed] = true
		avgSum := 0.0
		overSum := 0

		for len(queue) > 0 {
			coord := queue[0]
			queue = queue[1:]
			diff := exceeding[coord]

			group.Cells = append(group.Cells, coord)
			group.Bounds.MinX = min(group.Bounds.MinX, coord.X)
			group.Bounds.MaxX = max(group.Bounds.MaxX, coord.X)
			group.Bounds.MinY = min(group.Bounds.MinY, coord.Y)
			group.Bounds.MaxY = max(group.Bounds.MaxY, coord.Y)
			group.MaxDiff = math.Max(group.MaxDiff, diff.Max)
			avgSum += diff.Avg
			overSum += diff.OverCount

			for _, next := range [4]CellCoord{
				{X: coord.X + 1, Y: coord.Y},
				{X: coord.X - 1, Y: coord.Y},
				{X: coord.X, Y: coord.Y + 1},
				{X: coord.X, Y: coord.Y - 1},
			} {
				if _, ok := exceeding[next]; ok && !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		group.AvgDiff = avgSum / float64(len(group.Cells))
		covered := float64(overSum) / float64(len(group.Cells)*deltaCount)
		group.Impact = group.MaxDiff * covered
		groups = append(groups, group)
	}

	slices.SortFunc(groups, func(x, y CellGroup) int {
		switch {
		case x.Impact > y.Impact:
			return -1
		case x.Impact < y.Impact:
			return 1
		default:
			return 0
		}
	})

	return groups
}
