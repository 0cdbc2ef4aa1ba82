package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hexastar/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	State         string
	StateColor    rl.Color
	Step          int
	Open          int
	Closed        int
	PathCells     int
	PathCost      float64
	FPS           int32
	AutoStep      bool
	StepsPerFrame int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("State: %s", data.State), 10, 10, 20, data.StateColor)

	rl.DrawText(
		fmt.Sprintf("Step: %d | Open: %d | Closed: %d", data.Step, data.Open, data.Closed),
		10, 35, 16, rl.LightGray,
	)

	auto := "off"
	if data.AutoStep {
		auto = fmt.Sprintf("%d/frame", data.StepsPerFrame)
	}
	rl.DrawText(fmt.Sprintf("Auto: %s | FPS: %d", auto, data.FPS), 10, 55, 16, rl.LightGray)

	if data.PathCells > 0 {
		rl.DrawText(fmt.Sprintf("Path: %d cells, cost %.1f", data.PathCells, data.PathCost), 10, 75, 16, rl.Green)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	const width = 220
	r := p.renderer
	height := int32(40 + r.Theme.LineHeight*int32(3+len(stats.PhaseAvg)))
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Frame Performance")

	y = r.DrawLabelValue(x, y, "Frame", stats.AvgFrame.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Range", fmt.Sprintf("%s - %s",
		stats.MinFrame.Round(time.Microsecond), stats.MaxFrame.Round(time.Microsecond)))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.1f", stats.FramesPerSecond))

	for _, phase := range telemetry.Phases {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			continue
		}
		y = r.DrawBar(x, y, phase, stats.PhasePct[phase], 50, width-2*r.Theme.Padding)
	}
}

// LegendEntry names one colour on the board.
type LegendEntry struct {
	Label string
	Color rl.Color
}

// DrawLegend renders a panel of colour swatches.
func DrawLegend(x, y int32, title string, entries []LegendEntry) {
	r := NewRenderer()
	height := int32(30) + r.Theme.LineHeight*int32(len(entries))
	r.DrawPanel(x, y, 140, height)

	px := x + r.Theme.Padding
	py := r.DrawSectionHeader(px, y+r.Theme.Padding, title)
	for _, e := range entries {
		py = r.DrawColorSwatch(px, py, e.Label, e.Color)
	}
}
