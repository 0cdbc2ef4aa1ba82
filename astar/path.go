package astar

import (
	"errors"
	"fmt"
)

// ErrBrokenChain is the panic value cause when a parent chain does not lead
// back to the start. It can only follow a defect in the engine.
var ErrBrokenChain = errors.New("astar: parent chain does not reach start")

func brokenChain(id int, detail string) error {
	return fmt.Errorf("%w: from cell %d: %s", ErrBrokenChain, id, detail)
}

// reconstruct marks the route from the end cell back to the start and
// stores it ordered start to end.
func (r *Run) reconstruct() {
	var rev []int
	c := r.grid.Cell(r.endID)
	for n := 0; ; n++ {
		if n > r.grid.Len() {
			panic(brokenChain(r.endID, "parent chain longer than the grid"))
		}
		c.Path = true
		rev = append(rev, c.ID)
		if c.Start {
			break
		}
		if !c.HasParent() {
			panic(brokenChain(r.endID, fmt.Sprintf("cell %d has no parent", c.ID)))
		}
		c = r.grid.Cell(c.Parent)
	}

	r.path = make([]int, len(rev))
	for i, id := range rev {
		r.path[len(rev)-1-i] = id
	}
	r.log.Info("path reconstructed", "cells", len(r.path), "cost", r.G(r.endID))
}
