package astar

import (
	"math"

	"github.com/pthm-cable/hexastar/hexgrid"
)

// G is the cost of the best known route from start to the cell, derived
// from its parent chain: 0 at the start, parent's G plus one edge otherwise,
// +Inf when the cell has not been reached. A reparented ancestor changes
// the G of every descendant.
func (r *Run) G(id int) float64 {
	hops, ok := r.hops(id)
	if !ok {
		return math.Inf(1)
	}
	return float64(hops) * r.grid.EdgeCost()
}

// H is the straight-line distance from the cell to the end cell, 0 when no
// end is set.
func (r *Run) H(id int) float64 {
	end := r.grid.Cell(r.endID)
	c := r.grid.Cell(id)
	if end == nil || c == nil {
		return 0
	}
	return r.grid.Distance(c, end)
}

// F is G plus H.
func (r *Run) F(id int) float64 {
	return r.G(id) + r.H(id)
}

// hops counts parent links from id back to the start. ok is false when the
// chain ends without reaching the start. A chain longer than the grid means
// the parent relation has a cycle, which panics.
func (r *Run) hops(id int) (int, bool) {
	c := r.grid.Cell(id)
	if c == nil || r.startID == hexgrid.NoParent {
		return 0, false
	}
	limit := r.grid.Len()
	for n := 0; n <= limit; n++ {
		if c.ID == r.startID {
			return n, true
		}
		if !c.HasParent() {
			return 0, false
		}
		c = r.grid.Cell(c.Parent)
	}
	panic(brokenChain(id, "parent chain longer than the grid"))
}
