package hexgrid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// lookupMargin is how far outside the board bounds, in side lengths, a
// point still resolves to a cell.
const lookupMargin = 2

// Nearest returns the cell whose center is closest to p. It estimates the
// row from the lattice spacing, clamped to the populated rows, and examines
// that row and its two neighbors around each row's own clamped column
// estimate.
//
// The second result is false when the grid is empty or p lies more than
// two side lengths outside the board bounds.
func (g *Grid) Nearest(p r2.Vec) (*Cell, bool) {
	if len(g.cells) == 0 {
		return nil, false
	}
	margin := lookupMargin * g.params.Side
	if p.X < -margin || p.X > g.params.Width+margin || p.Y < -margin || p.Y > g.params.Height+margin {
		return nil, false
	}

	row := clampInt(int(math.Round(p.Y/g.rowSpacing)), 0, len(g.rows)-1)

	var best *Cell
	bestDist := math.Inf(1)
	for r := row - 1; r <= row+1; r++ {
		n := g.RowLen(r)
		if n == 0 {
			continue
		}
		col := clampInt(int(math.Round((p.X-g.rowOffset(r))/g.colSpacing)), 0, n-1)
		for c := col - 1; c <= col+1; c++ {
			cell := g.At(r, c)
			if cell == nil {
				continue
			}
			if d := r2.Norm(r2.Sub(p, cell.Center)); d < bestDist {
				best, bestDist = cell, d
			}
		}
	}
	return best, best != nil
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
