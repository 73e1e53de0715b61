package terrain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffGridsNegativeThreshold(t *testing.T) {
	_, err := DiffGrids(nil, nil, -1)
	require.Error(t, err)
}

func TestDiffGridsReport(t *testing.T) {
	require := require.New(t)

	a := map[CellCoord]*HeightGrid{
		{X: 0, Y: 0}: flatGrid(t, 0),
		{X: 1, Y: 0}: flatGrid(t, 0),
		{X: 5, Y: 5}: flatGrid(t, 0),
		{X: 9, Y: 9}: flatGrid(t, 0),
	}
	b := map[CellCoord]*HeightGrid{
		{X: 0, Y: 0}: flatGrid(t, 10),
		{X: 1, Y: 0}: flatGrid(t, 4), // under threshold
		{X: 5, Y: 5}: flatGrid(t, 20),
		{X: 8, Y: 8}: flatGrid(t, 0),
	}

	report, err := DiffGrids(a, b, 5)
	require.NoError(err)

	require.Equal(3, report.Compared)
	require.Equal(1, report.OnlyInA)
	require.Equal(1, report.OnlyInB)

	require.Len(report.Cells, 2)
	require.Equal(CellCoord{X: 0, Y: 0}, report.Cells[0].Coord)
	require.Equal(CellCoord{X: 5, Y: 5}, report.Cells[1].Coord)
	require.Equal(10.0, report.Cells[0].Max)
	require.Equal(10.0, report.Cells[0].Avg)
	require.Equal(deltaCount, report.Cells[0].OverCount)

	// Two singleton groups; every point exceeds, so impact equals MaxDiff
	// and the larger difference ranks first.
	require.Len(report.Groups, 2)
	require.Equal(20.0, report.Groups[0].Impact)
	require.Equal(10.0, report.Groups[1].Impact)
	require.Equal([]CellCoord{{X: 5, Y: 5}}, report.Groups[0].Cells)
}

func TestDiffGridsGrouping(t *testing.T) {
	require := require.New(t)

	coords := []CellCoord{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, // one 4-connected component
		{X: 3, Y: 0},                   // isolated
		{X: 0, Y: 3}, {X: 1, Y: 3},     // second component
	}
	a := make(map[CellCoord]*HeightGrid)
	b := make(map[CellCoord]*HeightGrid)
	for _, c := range coords {
		a[c] = flatGrid(t, 0)
		b[c] = flatGrid(t, 50)
	}

	report, err := DiffGrids(a, b, 5)
	require.NoError(err)
	require.Len(report.Groups, 3)

	sizes := make(map[int]int)
	for _, g := range report.Groups {
		sizes[len(g.Cells)]++
	}
	require.Equal(map[int]int{3: 1, 2: 1, 1: 1}, sizes)

	for _, g := range report.Groups {
		if len(g.Cells) == 3 {
			require.Equal(Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, g.Bounds)
			require.Equal(50.0, g.MaxDiff)
			require.Equal(50.0, g.AvgDiff)
		}
		if len(g.Cells) == 1 {
			require.Equal([]CellCoord{{X: 3, Y: 0}}, g.Cells)
		}
	}
}

func TestDiffGridsIdenticalSnapshots(t *testing.T) {
	a := map[CellCoord]*HeightGrid{{X: 0, Y: 0}: flatGrid(t, 7)}
	b := map[CellCoord]*HeightGrid{{X: 0, Y: 0}: flatGrid(t, 7)}

	report, err := DiffGrids(a, b, 0)
	require.NoError(t, err)
	require.Equal(t, 1, report.Compared)
	require.Empty(t, report.Cells)
	require.Empty(t, report.Groups)
}
