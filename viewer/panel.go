package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hexastar/astar"
)

const (
	panelWidth       = 180
	panelHeight      = 190
	panelMargin      = 10
	maxStepsPerFrame = 20
)

// panelBounds is the screen rectangle of the control panel. Clicks inside
// it are not forwarded to the board.
func (v *Viewer) panelBounds() rl.Rectangle {
	return rl.Rectangle{
		X:      v.screenW - panelWidth - panelMargin,
		Y:      panelMargin,
		Width:  panelWidth,
		Height: panelHeight,
	}
}

// drawPanel draws the raygui controls and applies their actions.
func (v *Viewer) drawPanel() {
	b := v.panelBounds()
	rl.DrawRectangleRec(b, rl.Fade(rl.Black, 0.8))
	rl.DrawRectangleLinesEx(b, 1, rl.Gray)

	x := b.X + 10
	y := b.Y + 10
	w := b.Width - 20

	state := v.run.State()

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, "Run") && state == astar.Idle {
		v.begin()
	}
	y += 30
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, "Step") && state == astar.Running {
		v.step()
	}
	y += 30
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, "Reset") && state != astar.Running {
		v.reset()
	}
	y += 34

	v.autoStep = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Auto step", v.autoStep)
	y += 26

	rl.DrawText(fmt.Sprintf("Steps/frame: %d", v.stepsPerFrame), int32(x), int32(y), 14, rl.LightGray)
	y += 18
	spf := gui.SliderBar(rl.Rectangle{X: x + 10, Y: y, Width: w - 20, Height: 16}, "1", fmt.Sprint(maxStepsPerFrame),
		float32(v.stepsPerFrame), 1, maxStepsPerFrame)
	v.stepsPerFrame = int(spf + 0.5)
}
