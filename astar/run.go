// Package astar runs a step-driven A* search over a hexgrid.Grid.
//
// A Run owns the grid and the run state. Drivers feed it commands (click,
// begin, advance, reset) and read cell classification between steps. All
// methods must be called from a single goroutine.
package astar

import (
	"io"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/hexastar/hexgrid"
)

// State is the run lifecycle.
type State uint8

const (
	Idle State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether the run has finished.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}

// Run is the explicit context of one search: the grid, the chosen
// endpoints, and the lifecycle state.
type Run struct {
	params hexgrid.Params
	grid   *hexgrid.Grid
	log    *slog.Logger

	state   State
	startID int
	endID   int
	steps   int
	path    []int
}

// Option configures a Run.
type Option func(*Run)

// WithLogger routes state transitions and rejected commands to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Run) { r.log = l }
}

// New builds a grid from p and returns an idle run over it.
func New(p hexgrid.Params, opts ...Option) *Run {
	r := &Run{
		params: p,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(r)
	}
	r.rebuild()
	return r
}

func (r *Run) rebuild() {
	r.grid = hexgrid.Build(r.params)
	r.state = Idle
	r.startID = hexgrid.NoParent
	r.endID = hexgrid.NoParent
	r.steps = 0
	r.path = nil
}

// Grid returns the grid for rendering. Callers must not mutate it.
func (r *Run) Grid() *hexgrid.Grid { return r.grid }

// State returns the current lifecycle state.
func (r *Run) State() State { return r.state }

// StartID returns the start cell id, or hexgrid.NoParent when unset.
func (r *Run) StartID() int { return r.startID }

// EndID returns the end cell id, or hexgrid.NoParent when unset.
func (r *Run) EndID() int { return r.endID }

// Steps returns the number of Advance calls that did work.
func (r *Run) Steps() int { return r.steps }

// Path returns the reconstructed route ordered start to end. Empty unless
// the run succeeded.
func (r *Run) Path() []int { return r.path }

// Ready reports whether BeginRun would be accepted.
func (r *Run) Ready() bool {
	return r.state == Idle && r.startID != hexgrid.NoParent && r.endID != hexgrid.NoParent
}

// Click resolves a board point to its nearest cell and toggles that cell's
// role. It is ignored unless idle or when the point matches no cell.
func (r *Run) Click(p r2.Vec) bool {
	if r.state != Idle {
		r.reject("click", "point", p)
		return false
	}
	c, ok := r.grid.Nearest(p)
	if !ok {
		r.reject("click", "point", p, "reason", "no cell")
		return false
	}
	return r.ClickCell(c.ID)
}

// ClickCell toggles the role of a cell, in priority order: set start if
// unset; otherwise while end is unset, a start re-click clears the start and
// any other passable cell becomes the end; once both are set, re-clicking
// either clears it and any other cell toggles barrier.
func (r *Run) ClickCell(id int) bool {
	if r.state != Idle {
		r.reject("click", "cell", id)
		return false
	}
	c := r.grid.Cell(id)
	if c == nil {
		r.reject("click", "cell", id, "reason", "no cell")
		return false
	}

	switch {
	case r.startID == hexgrid.NoParent && !c.Barrier:
		c.Start = true
		r.startID = id
	case r.endID == hexgrid.NoParent:
		switch {
		case c.Start:
			c.Start = false
			r.startID = hexgrid.NoParent
		case !c.Barrier:
			c.End = true
			r.endID = id
		default:
			r.reject("click", "cell", id, "reason", "barrier")
			return false
		}
	case c.Start:
		c.Start = false
		r.startID = hexgrid.NoParent
	case c.End:
		c.End = false
		r.endID = hexgrid.NoParent
	default:
		c.Barrier = !c.Barrier
	}
	return true
}

// Place sets both endpoints and the barrier set in one command, replacing
// any roles already marked. Ids must name distinct passable cells apart
// from start and end, which may coincide. Idle only.
func (r *Run) Place(start, end int, barriers ...int) bool {
	if r.state != Idle {
		r.reject("place")
		return false
	}
	s, e := r.grid.Cell(start), r.grid.Cell(end)
	if s == nil || e == nil {
		r.reject("place", "start", start, "end", end, "reason", "no cell")
		return false
	}
	for _, id := range barriers {
		if r.grid.Cell(id) == nil || id == start || id == end {
			r.reject("place", "barrier", id)
			return false
		}
	}

	for _, c := range r.grid.Cells() {
		c.Start, c.End, c.Barrier = false, false, false
	}
	for _, id := range barriers {
		r.grid.Cell(id).Barrier = true
	}
	s.Start, e.End = true, true
	r.startID, r.endID = start, end
	return true
}

// BeginRun opens the start cell and moves to Running. Accepted only when
// idle with both endpoints set.
func (r *Run) BeginRun() bool {
	if !r.Ready() {
		r.reject("begin", "start", r.startID, "end", r.endID)
		return false
	}
	r.grid.ClearSearch()
	r.grid.Cell(r.startID).Open = true
	r.transition(Running)
	return true
}

// Reset rebuilds the grid from scratch and returns to Idle. Rejected while
// a search is running.
func (r *Run) Reset() bool {
	if r.state == Running {
		r.reject("reset")
		return false
	}
	prev := r.state
	r.rebuild()
	r.log.Info("grid rebuilt", "from", prev.String(), "cells", r.grid.Len())
	return true
}

// Solve advances until the run finishes or maxSteps steps have been taken
// (maxSteps <= 0 means no limit). It returns the final state.
func (r *Run) Solve(maxSteps int) State {
	for n := 0; r.state == Running && (maxSteps <= 0 || n < maxSteps); n++ {
		r.Advance()
	}
	return r.state
}

// Snapshot copies the current classification of every cell, indexed by id.
func (r *Run) Snapshot() []hexgrid.Kind {
	kinds := make([]hexgrid.Kind, r.grid.Len())
	for i, c := range r.grid.Cells() {
		kinds[i] = c.Kind()
	}
	return kinds
}

func (r *Run) transition(to State) {
	from := r.state
	r.state = to
	r.log.Info("run state changed",
		"from", from.String(),
		"to", to.String(),
		"step", r.steps,
		"start", r.startID,
		"end", r.endID,
	)
}

func (r *Run) reject(cmd string, args ...any) {
	r.log.Debug("command ignored", append([]any{"cmd", cmd, "state", r.state.String()}, args...)...)
}
