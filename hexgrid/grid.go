package hexgrid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Params fully determine a grid: bounding box and hexagon side length.
type Params struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Side   float64 `yaml:"side_length"`
}

// Validate rejects negative or non-finite values. Zero is allowed and
// produces an empty grid.
func (p Params) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"width", p.Width},
		{"height", p.Height},
		{"side_length", p.Side},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) || v.val < 0 {
			return fmt.Errorf("grid %s must be a finite non-negative number, got %v", v.name, v.val)
		}
	}
	return nil
}

// Apothem is the distance from a hexagon's center to the middle of a side.
func (p Params) Apothem() float64 {
	return p.Side * math.Sqrt(3) / 2
}

// Grid is the hexagon tessellation. Cells are stored row-major; rows may
// differ in length by one because of the stagger.
type Grid struct {
	params Params

	apothem    float64
	rowSpacing float64
	colSpacing float64

	cells []*Cell
	rows  [][]*Cell
}

// Build lays out the staggered-row lattice for the given bounds and links
// each cell to the cells within two side lengths of it.
//
// Row r sits at y = 1.5*side*r. Even rows begin one apothem in from the
// left edge, odd rows at the edge; centers in a row are two apothems apart.
func Build(p Params) *Grid {
	g := &Grid{
		params:     p,
		apothem:    p.Apothem(),
		rowSpacing: 1.5 * p.Side,
		colSpacing: 2 * p.Apothem(),
	}
	if p.Width <= 0 || p.Height <= 0 || p.Side <= 0 {
		return g
	}

	for row := 0; float64(row)*g.rowSpacing <= p.Height; row++ {
		y := float64(row) * g.rowSpacing
		var line []*Cell
		for col := 0; g.rowOffset(row)+float64(col)*g.colSpacing <= p.Width; col++ {
			x := g.rowOffset(row) + float64(col)*g.colSpacing
			c := &Cell{
				ID:     len(g.cells),
				Row:    row,
				Col:    col,
				Center: r2.Vec{X: x, Y: y},
				Parent: NoParent,
			}
			g.cells = append(g.cells, c)
			line = append(line, c)
		}
		g.rows = append(g.rows, line)
	}

	g.link()
	return g
}

// link fills Neighbors. Only the previous, same and next rows can hold
// cells within range, so the scan is bounded per cell.
func (g *Grid) link() {
	radius := 2 * g.params.Side
	for _, c := range g.cells {
		for row := c.Row - 1; row <= c.Row+1; row++ {
			if row < 0 || row >= len(g.rows) {
				continue
			}
			for _, o := range g.rows[row] {
				d := r2.Norm(r2.Sub(c.Center, o.Center))
				if d > 0 && d <= radius {
					c.Neighbors = append(c.Neighbors, o.ID)
				}
			}
		}
	}
}

// rowOffset is the x of the first center in a row.
func (g *Grid) rowOffset(row int) float64 {
	if row%2 == 0 {
		return g.apothem
	}
	return 0
}

// Params returns the construction parameters.
func (g *Grid) Params() Params { return g.params }

// Apothem returns the hexagon apothem.
func (g *Grid) Apothem() float64 { return g.apothem }

// RowSpacing is the vertical distance between row centers.
func (g *Grid) RowSpacing() float64 { return g.rowSpacing }

// ColSpacing is the horizontal distance between centers in a row.
func (g *Grid) ColSpacing() float64 { return g.colSpacing }

// EdgeCost is the uniform cost of stepping to any neighbor. It equals the
// exact distance between adjacent centers.
func (g *Grid) EdgeCost() float64 { return g.colSpacing }

// Distance is the straight-line distance between two cell centers.
func (g *Grid) Distance(a, b *Cell) float64 {
	return r2.Norm(r2.Sub(a.Center, b.Center))
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cells returns all cells in id order. The slice is shared; do not modify it.
func (g *Grid) Cells() []*Cell { return g.cells }

// Cell returns the cell with the given id, or nil if out of range.
func (g *Grid) Cell(id int) *Cell {
	if id < 0 || id >= len(g.cells) {
		return nil
	}
	return g.cells[id]
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.rows) }

// RowLen returns the number of cells in a row, 0 when out of range.
func (g *Grid) RowLen(row int) int {
	if row < 0 || row >= len(g.rows) {
		return 0
	}
	return len(g.rows[row])
}

// At returns the cell at a lattice position, or nil.
func (g *Grid) At(row, col int) *Cell {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row]) {
		return nil
	}
	return g.rows[row][col]
}

// Vertices returns the six corners of a cell, starting at the top and
// going clockwise.
func (g *Grid) Vertices(c *Cell) [6]r2.Vec {
	s, a := g.params.Side, g.apothem
	x, y := c.Center.X, c.Center.Y
	return [6]r2.Vec{
		{X: x, Y: y - s},
		{X: x + a, Y: y - s/2},
		{X: x + a, Y: y + s/2},
		{X: x, Y: y + s},
		{X: x - a, Y: y + s/2},
		{X: x - a, Y: y - s/2},
	}
}

// ClearSearch drops search flags and parent links on every cell while
// keeping roles.
func (g *Grid) ClearSearch() {
	for _, c := range g.cells {
		c.clearSearch()
	}
}
