package viewer

import (
	"fmt"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hexastar/astar"
	"github.com/pthm-cable/hexastar/camera"
	"github.com/pthm-cable/hexastar/hexgrid"
	"github.com/pthm-cable/hexastar/ui"
)

// hexRotation puts a vertex at the top and bottom of each hexagon.
const hexRotation = 30

// kindColors maps cell classification to fill colour. Default cells are
// drawn as outlines only.
var kindColors = map[hexgrid.Kind]color.RGBA{
	hexgrid.KindOpen:    rl.Yellow,
	hexgrid.KindClosed:  rl.Blue,
	hexgrid.KindPath:    rl.White,
	hexgrid.KindBarrier: rl.DarkGray,
	hexgrid.KindEnd:     rl.Red,
	hexgrid.KindStart:   rl.Green,
}

func fitCamera(w, h float32, boardW, boardH, side float64) *camera.Camera {
	return camera.Fit(w, h, float32(boardW), float32(boardH), float32(side))
}

func (v *Viewer) drawGrid() {
	DrawBoard(v.run, v.cam, v.showF)
}

// DrawBoard renders every visible cell of r through cam, optionally
// labelling open and closed cells with their f value. Must be called
// between BeginDrawing (or BeginTextureMode) and the matching End call.
func DrawBoard(r *astar.Run, cam *camera.Camera, showF bool) {
	g := r.Grid()
	side := float32(g.Params().Side)
	radius := side * cam.Zoom

	for _, c := range g.Cells() {
		wx, wy := float32(c.Center.X), float32(c.Center.Y)
		if !cam.IsVisible(wx, wy, side) {
			continue
		}
		sx, sy := cam.WorldToScreen(wx, wy)
		center := rl.Vector2{X: sx, Y: sy}

		kind := c.Kind()
		if fill, ok := kindColors[kind]; ok {
			rl.DrawPoly(center, 6, radius, hexRotation, fill)
		}
		rl.DrawPolyLines(center, 6, radius, hexRotation, rl.White)

		if showF && (c.Open || c.Closed) {
			drawF(r.F(c.ID), center, radius)
		}
	}
}

// drawF annotates a cell with its f value.
func drawF(f float64, center rl.Vector2, radius float32) {
	if math.IsInf(f, 1) {
		return
	}
	size := int32(radius * 0.6)
	if size < 8 {
		return
	}
	text := fmt.Sprintf("%.0f", f)
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(center.X)-w/2, int32(center.Y)-size/2, size, rl.Black)
}

// legend lists the board colours in panel order.
var legend = []ui.LegendEntry{
	{Label: "Start", Color: kindColors[hexgrid.KindStart]},
	{Label: "End", Color: kindColors[hexgrid.KindEnd]},
	{Label: "Barrier", Color: kindColors[hexgrid.KindBarrier]},
	{Label: "Open", Color: kindColors[hexgrid.KindOpen]},
	{Label: "Closed", Color: kindColors[hexgrid.KindClosed]},
	{Label: "Path", Color: kindColors[hexgrid.KindPath]},
}

const controlsText = "Enter run | N step | Space auto | </> speed | Backspace reset | D f-values | P perf | L legend | Home fit | Z 1:1"

// drawOverlays renders the HUD, the optional perf panel and legend.
func (v *Viewer) drawOverlays() {
	state := v.run.State()
	open, closed := 0, 0
	for _, c := range v.run.Grid().Cells() {
		if c.Open {
			open++
		}
		if c.Closed {
			closed++
		}
	}

	data := ui.HUDData{
		State:         state.String(),
		StateColor:    stateColor(state),
		Step:          v.run.Steps(),
		Open:          open,
		Closed:        closed,
		PathCells:     len(v.run.Path()),
		FPS:           rl.GetFPS(),
		AutoStep:      v.autoStep,
		StepsPerFrame: v.stepsPerFrame,
	}
	if state == astar.Succeeded {
		data.PathCost = v.run.G(v.run.EndID())
	}
	v.hud.Draw(data)
	v.hud.DrawControls(int32(v.screenH), controlsText)

	if v.showPerf {
		v.perfPanel.SetPosition(10, 100)
		v.perfPanel.Draw(v.perf.Stats())
	}
	if v.showLegend {
		ui.DrawLegend(10, int32(v.screenH)-150, "Cells", legend)
	}
}

func stateColor(state astar.State) color.RGBA {
	switch state {
	case astar.Succeeded:
		return rl.Green
	case astar.Failed:
		return rl.Red
	case astar.Running:
		return rl.Yellow
	}
	return rl.White
}
