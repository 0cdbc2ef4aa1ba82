// Package hexgrid builds the staggered-row hexagon tessellation the search
// runs over and resolves points to cells.
package hexgrid

import "gonum.org/v1/gonum/spatial/r2"

// NoParent marks a cell that has not been reached by the search.
const NoParent = -1

// Kind is the render classification of a cell.
type Kind uint8

const (
	KindDefault Kind = iota
	KindOpen
	KindClosed
	KindPath
	KindBarrier
	KindEnd
	KindStart
)

var kindNames = [...]string{
	KindDefault: "default",
	KindOpen:    "open",
	KindClosed:  "closed",
	KindPath:    "path",
	KindBarrier: "barrier",
	KindEnd:     "end",
	KindStart:   "start",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Cell is one hexagon of the grid.
type Cell struct {
	ID       int    // row-major index into Grid.Cells
	Row, Col int    // lattice position
	Center   r2.Vec // center in board coordinates

	// Neighbors holds ids of geometrically adjacent cells in ascending order.
	// Barriers stay listed; the search skips them when expanding.
	Neighbors []int

	// Role flags, set by user commands while idle.
	Barrier bool
	Start   bool
	End     bool

	// Search flags, set by the engine while running.
	Open   bool
	Closed bool
	Path   bool

	// Parent is the id of the cell this one was reached from, or NoParent.
	Parent int
}

// Kind returns the display classification. Roles win over search flags.
func (c *Cell) Kind() Kind {
	switch {
	case c.Start:
		return KindStart
	case c.End:
		return KindEnd
	case c.Barrier:
		return KindBarrier
	case c.Path:
		return KindPath
	case c.Closed:
		return KindClosed
	case c.Open:
		return KindOpen
	}
	return KindDefault
}

// HasParent reports whether the search has linked this cell back toward start.
func (c *Cell) HasParent() bool {
	return c.Parent != NoParent
}

// clearSearch drops search flags and the parent link.
func (c *Cell) clearSearch() {
	c.Open = false
	c.Closed = false
	c.Path = false
	c.Parent = NoParent
}
