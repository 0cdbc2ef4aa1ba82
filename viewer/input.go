package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/hexastar/astar"
)

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyEnter) {
		v.begin()
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		v.reset()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.autoStep = !v.autoStep
	}
	if rl.IsKeyPressed(rl.KeyN) && v.run.State() == astar.Running {
		v.step()
	}
	if rl.IsKeyPressed(rl.KeyD) {
		v.showF = !v.showF
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}
	if rl.IsKeyPressed(rl.KeyL) {
		v.showLegend = !v.showLegend
	}

	// Steps-per-frame control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && v.stepsPerFrame > 1 {
		v.stepsPerFrame--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && v.stepsPerFrame < maxStepsPerFrame {
		v.stepsPerFrame++
	}

	v.handleCameraInput()

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !rl.CheckCollisionPointRec(mouse, v.panelBounds()) {
		wx, wy := v.cam.ScreenToWorld(mouse.X, mouse.Y)
		v.run.Click(r2.Vec{X: float64(wx), Y: float64(wy)})
	}
}

// handleResize propagates window size changes to the camera.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenW && h == v.screenH {
		return
	}
	v.screenW, v.screenH = w, h
	v.cam.Resize(w, h)
}

// handleCameraInput processes pan/zoom controls.
func (v *Viewer) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		v.cam.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		board := v.cfg.Derived.Grid
		*v.cam = *fitCamera(v.screenW, v.screenH, board.Width, board.Height, board.Side)
	}
	if rl.IsKeyPressed(rl.KeyZ) {
		v.cam.Reset()
	}
}
