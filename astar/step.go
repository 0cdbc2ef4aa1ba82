package astar

import (
	"math"

	"github.com/pthm-cable/hexastar/hexgrid"
)

// tieTolerance is the relative slack under which two f values count as
// equal. Geometrically tied cells can differ in the last bits of their
// Euclidean heuristic.
const tieTolerance = 1e-9

// StepReport describes one Advance call.
type StepReport struct {
	Step     int     // 1-based index of the step
	MinF     float64 // f shared by the expanded batch; +Inf when the open set was empty
	Expanded []int   // cells closed by this step, in expansion order
	Open     int     // open cells after the step
	Closed   int     // closed cells after the step
	State    State   // state after the step
}

// Batch returns the number of cells expanded.
func (s StepReport) Batch() int { return len(s.Expanded) }

// Advance performs one batched expansion: every open cell tied at the
// minimum f is closed and relaxes its neighbors. Expanding the end cell
// succeeds and reconstructs the path; an empty open set fails. The bool
// result is false when the run was not Running.
func (r *Run) Advance() (StepReport, bool) {
	if r.state != Running {
		r.reject("advance")
		return StepReport{State: r.state}, false
	}
	r.steps++
	rep := StepReport{Step: r.steps, MinF: math.Inf(1)}

	batch, minF := r.frontier()
	if len(batch) == 0 {
		r.transition(Failed)
		rep.State = r.state
		return rep, true
	}
	rep.MinF = minF

	edge := r.grid.EdgeCost()
	for _, c := range batch {
		c.Closed = true
		c.Open = false
		rep.Expanded = append(rep.Expanded, c.ID)

		if c.ID == r.endID {
			r.transition(Succeeded)
			r.reconstruct()
			break
		}

		tentative := r.G(c.ID) + edge
		for _, id := range c.Neighbors {
			nb := r.grid.Cell(id)
			if nb.Barrier || id == c.Parent {
				continue
			}
			if tentative < r.G(id) {
				nb.Parent = c.ID
				if !nb.Closed {
					nb.Open = true
				}
			}
		}
	}

	rep.Open, rep.Closed = r.counts()
	rep.State = r.state
	return rep, true
}

// frontier returns the open cells whose f equals the minimum, in id order.
func (r *Run) frontier() ([]*hexgrid.Cell, float64) {
	var open []*hexgrid.Cell
	var fs []float64
	minF := math.Inf(1)
	for _, c := range r.grid.Cells() {
		if !c.Open {
			continue
		}
		f := r.F(c.ID)
		open = append(open, c)
		fs = append(fs, f)
		if f < minF {
			minF = f
		}
	}

	limit := minF + tieTolerance*math.Max(1, minF)
	batch := open[:0]
	for i, c := range open {
		if fs[i] <= limit {
			batch = append(batch, c)
		}
	}
	return batch, minF
}

func (r *Run) counts() (open, closed int) {
	for _, c := range r.grid.Cells() {
		if c.Open {
			open++
		}
		if c.Closed {
			closed++
		}
	}
	return open, closed
}
