package layout

import (
	"fmt"
	"math"
	"slices"
)

// Score is one candidate's correlation against the observed storage order.
type Score struct {
	// Name identifies the candidate scheme.
	Name string
	// Correlation is the Pearson correlation between storage rank and the
	// candidate's index function; near +/-1 indicates the generating scheme.
	Correlation float64
}

// ScoreLayouts correlates the observed storage order of a w x h grid against
// every candidate layout and returns all scores sorted by absolute
// correlation, best first.
//
// Degenerate inputs with fewer than two points score 0 for every candidate
// rather than failing; a caller with one data point learns only that the
// ranking is meaningless.
//
// Parameters:
//   - order: Grid coordinates in the order they appear in the file
//   - w, h: Grid dimensions
//
// Returns:
//   - []Score: Every candidate's correlation, |r| descending
//   - error: When the grid dimensions are invalid or a coordinate is out of
//     range
func ScoreLayouts(order []GridCoord, w, h int) ([]Score, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", w, h)
	}
	for _, c := range order {
		if c.X < 0 || c.X >= w || c.Y < 0 || c.Y >= h {
			return nil, fmt.Errorf("coordinate (%d,%d) outside %dx%d grid", c.X, c.Y, w, h)
		}
	}

	ranks := make([]float64, len(order))
	for i := range order {
		ranks[i] = float64(i)
	}

	candidates := Candidates(w, h)
	scores := make([]Score, 0, len(candidates))
	indices := make([]float64, len(order))
	for _, cand := range candidates {
		for i, c := range order {
			indices[i] = float64(cand.Index(c.X, c.Y))
		}
		scores = append(scores, Score{Name: cand.Name, Correlation: pearson(ranks, indices)})
	}

	slices.SortStableFunc(scores, func(a, b Score) int {
		switch {
		case math.Abs(a.Correlation) > math.Abs(b.Correlation):
			return -1
		case math.Abs(a.Correlation) < math.Abs(b.Correlation):
			return 1
		default:
			return 0
		}
	})

	return scores, nil
}

// pearson computes the Pearson correlation coefficient of two equal-length
// series. Fewer than two points or a zero-variance series yield 0.
func pearson(x, y []float64) float64 {
	n := len(x)
	if n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}

	return cov / math.Sqrt(varX*varY)
}
