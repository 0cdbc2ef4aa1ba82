// Grid preview tool - interactive lattice inspection with sliders.
//
// Usage: go run ./cmd/gridpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/hexastar/camera"
	"github.com/pthm-cable/hexastar/hexgrid"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 680
	panelWidth   = windowWidth - previewSize - 30
)

// latticeStats summarises a built grid.
type latticeStats struct {
	cells, rows        int
	meanDeg, stdDeg    float64
	minDeg, maxDeg     int
	apothem, edge      float64
	rowSpacing, offset float64
}

func measure(g *hexgrid.Grid) latticeStats {
	s := latticeStats{
		cells:      g.Len(),
		rows:       g.Rows(),
		apothem:    g.Apothem(),
		edge:       g.EdgeCost(),
		rowSpacing: g.RowSpacing(),
		offset:     g.Apothem(),
		minDeg:     6,
	}
	if g.Len() == 0 {
		s.minDeg = 0
		return s
	}
	deg := make([]float64, g.Len())
	for i, c := range g.Cells() {
		n := len(c.Neighbors)
		deg[i] = float64(n)
		s.minDeg = min(s.minDeg, n)
		s.maxDeg = max(s.maxDeg, n)
	}
	s.meanDeg, s.stdDeg = stat.MeanStdDev(deg, nil)
	return s
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Hex Grid Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	// Initialize with the default board
	params := hexgrid.Params{Width: 540, Height: 360, Side: 20}
	grid := hexgrid.Build(params)
	stats := measure(grid)
	cam := camera.Fit(previewSize, previewSize, float32(params.Width), float32(params.Height), 10)

	needsRebuild := false
	showVertices := false

	for !rl.WindowShouldClose() {
		if needsRebuild {
			grid = hexgrid.Build(params)
			stats = measure(grid)
			cam = camera.Fit(previewSize, previewSize, float32(params.Width), float32(params.Height), 10)
			needsRebuild = false
		}

		// Hovered cell, in preview coordinates
		mouse := rl.GetMousePosition()
		var hover *hexgrid.Cell
		if mouse.X >= 10 && mouse.X < 10+previewSize && mouse.Y >= 10 && mouse.Y < 10+previewSize {
			wx, wy := cam.ScreenToWorld(mouse.X-10, mouse.Y-10)
			hover, _ = grid.Nearest(r2.Vec{X: float64(wx), Y: float64(wy)})
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.BeginScissorMode(10, 10, previewSize, previewSize)
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Black)
		drawLattice(grid, cam, hover, showVertices)
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Lattice Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		params.Width, needsRebuild = slider(panelX, &panelY, "Width (board bounds)", params.Width, 50, 1080, needsRebuild)
		params.Height, needsRebuild = slider(panelX, &panelY, "Height (board bounds)", params.Height, 50, 720, needsRebuild)
		params.Side, needsRebuild = slider(panelX, &panelY, "Side length", params.Side, 4, 60, needsRebuild)

		showVertices = gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Show vertices", showVertices)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = hexgrid.Params{Width: 540, Height: 360, Side: 20}
			needsRebuild = true
		}
		panelY += 50

		// Draw stats
		lines := []string{
			fmt.Sprintf("Cells: %d  Rows: %d", stats.cells, stats.rows),
			fmt.Sprintf("Apothem: %.2f  Row spacing: %.2f", stats.apothem, stats.rowSpacing),
			fmt.Sprintf("Edge cost: %.2f  Even-row offset: %.2f", stats.edge, stats.offset),
			fmt.Sprintf("Neighbors: min %d  max %d", stats.minDeg, stats.maxDeg),
			fmt.Sprintf("Neighbors: mean %.2f  std %.2f", stats.meanDeg, stats.stdDeg),
		}
		if hover != nil {
			lines = append(lines,
				"",
				fmt.Sprintf("Cell %d at row %d col %d", hover.ID, hover.Row, hover.Col),
				fmt.Sprintf("Center (%.1f, %.1f)", hover.Center.X, hover.Center.Y),
				fmt.Sprintf("Neighbors %v", hover.Neighbors),
			)
		}
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 16, rl.DarkGray)
			panelY += 22
		}

		rl.DrawText("Hover a cell to see its neighbors", 15, previewSize+25, 16, rl.Gray)

		rl.EndDrawing()
	}
}

// slider draws a labelled slider and reports whether the value changed.
func slider(x float32, y *float32, label string, value, lo, hi float64, changed bool) (float64, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.0f", lo), fmt.Sprintf("%.0f", hi),
		float32(value), float32(lo), float32(hi),
	)
	rl.DrawText(fmt.Sprintf("%.0f", value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	if float64(next) != value {
		return float64(next), true
	}
	return value, changed
}

// drawLattice outlines every cell from its vertices and highlights the
// hovered cell and its neighbors.
func drawLattice(g *hexgrid.Grid, cam *camera.Camera, hover *hexgrid.Cell, showVertices bool) {
	toScreen := func(p r2.Vec) rl.Vector2 {
		sx, sy := cam.WorldToScreen(float32(p.X), float32(p.Y))
		return rl.Vector2{X: sx + 10, Y: sy + 10}
	}

	isNeighbor := make(map[int]bool)
	if hover != nil {
		for _, id := range hover.Neighbors {
			isNeighbor[id] = true
		}
	}

	for _, c := range g.Cells() {
		col := rl.Gray
		switch {
		case hover != nil && c.ID == hover.ID:
			col = rl.Green
		case isNeighbor[c.ID]:
			col = rl.Yellow
		}

		vs := g.Vertices(c)
		for i := range vs {
			a, b := toScreen(vs[i]), toScreen(vs[(i+1)%len(vs)])
			rl.DrawLineV(a, b, col)
			if showVertices {
				rl.DrawCircleV(a, 2, rl.SkyBlue)
			}
		}
		rl.DrawCircleV(toScreen(c.Center), 1.5, col)
	}

	if hover != nil {
		from := toScreen(hover.Center)
		for _, id := range hover.Neighbors {
			rl.DrawLineV(from, toScreen(g.Cell(id).Center), rl.Yellow)
		}
	}
}
