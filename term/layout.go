package term

import "github.com/pthm-cable/hexastar/hexgrid"

// Each hex occupies cellWidth columns; even rows shift right by half a hex
// to mirror the lattice offset. The grid starts below the HUD lines.
const (
	cellWidth = 4
	stagger   = cellWidth / 2
	hudLines  = 2
)

// origin returns the screen position of the first glyph of a cell.
func origin(row, col int) (x, y int) {
	x = col * cellWidth
	if row%2 == 0 {
		x += stagger
	}
	return x, row + hudLines
}

// cursor tracks the selected cell by row and column.
type cursor struct {
	row, col int
}

// move shifts the cursor and clamps it to the grid. Moving between rows
// keeps the column where the target row is long enough.
func (c *cursor) move(g *hexgrid.Grid, dRow, dCol int) {
	if g.Rows() == 0 {
		return
	}
	c.row = clampInt(c.row+dRow, 0, g.Rows()-1)
	c.col = clampInt(c.col+dCol, 0, g.RowLen(c.row)-1)
}

func (c cursor) cell(g *hexgrid.Grid) *hexgrid.Cell {
	return g.At(c.row, c.col)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
