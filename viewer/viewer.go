// Package viewer drives an astar.Run from a raylib window: mouse clicks
// mark cells, keys and a raygui panel control the run, and every frame
// draws the grid classification.
package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hexastar/astar"
	"github.com/pthm-cable/hexastar/camera"
	"github.com/pthm-cable/hexastar/config"
	"github.com/pthm-cable/hexastar/telemetry"
	"github.com/pthm-cable/hexastar/ui"
)

// Frames between perf log lines.
const perfLogInterval = 300

// Options configures a Viewer.
type Options struct {
	Logger *slog.Logger
	Output *telemetry.OutputManager // nil disables CSV output
}

// Viewer holds the windowed driver state. The raylib window must be open
// before New is called.
type Viewer struct {
	cfg *config.Config
	run *astar.Run
	cam *camera.Camera
	log *slog.Logger

	perf *telemetry.PerfCollector
	rec  *telemetry.Recorder
	out  *telemetry.OutputManager

	// Overlays
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	// Controls
	autoStep      bool
	stepsPerFrame int
	showF         bool
	showPerf      bool
	showLegend    bool

	// Window dimensions
	screenW, screenH float32

	frame     int
	lastState astar.State
}

// New creates a viewer over a fresh run built from cfg.
func New(cfg *config.Config, opts Options) *Viewer {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	board := cfg.Derived.Grid

	v := &Viewer{
		cfg:           cfg,
		run:           astar.New(board, astar.WithLogger(log)),
		cam:           camera.Fit(w, h, float32(board.Width), float32(board.Height), float32(board.Side)),
		log:           log,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		rec:           &telemetry.Recorder{},
		out:           opts.Output,
		hud:           ui.NewHUD(),
		perfPanel:     ui.NewPerfPanel(10, 100),
		autoStep:      cfg.Search.AutoStep,
		stepsPerFrame: cfg.Search.StepsPerFrame,
		screenW:       w,
		screenH:       h,
	}

	log.Info("viewer ready",
		"cells", v.run.Grid().Len(),
		"rows", v.run.Grid().Rows(),
		"side", board.Side,
	)
	return v
}

// Update handles input and advances the run. Call once per frame before Draw.
func (v *Viewer) Update() {
	v.perf.StartFrame()
	v.frame++

	v.perf.StartPhase(telemetry.PhaseInput)
	v.handleInput()

	v.perf.StartPhase(telemetry.PhaseAdvance)
	if v.autoStep && v.run.State() == astar.Running {
		for i := 0; i < v.stepsPerFrame && v.run.State() == astar.Running; i++ {
			v.step()
		}
	}

	v.perf.StartPhase(telemetry.PhaseTelemetry)
	v.checkFinished()
	if v.frame%perfLogInterval == 0 {
		v.log.Info("perf", "frame", v.frame, "stats", v.perf.Stats())
	}
}

// Draw renders the grid, HUD and control panel, and closes the frame timing.
func (v *Viewer) Draw() {
	v.perf.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.drawGrid()
	v.drawOverlays()
	v.drawPanel()

	rl.EndDrawing()

	v.perf.EndFrame()
}

// Unload flushes any pending output.
func (v *Viewer) Unload() {
	if err := v.out.Close(); err != nil {
		v.log.Error("closing output", "error", err)
	}
}

// step advances once and logs progress at the configured interval.
func (v *Viewer) step() {
	rep, ok := v.rec.Advance(v.run)
	if !ok {
		return
	}
	if n := v.cfg.Telemetry.LogEvery; n > 0 && rep.Step%n == 0 {
		v.log.Debug("step", "step", rep.Step, "batch", rep.Batch(), "open", rep.Open, "closed", rep.Closed)
	}
}

func (v *Viewer) begin() {
	if v.run.BeginRun() {
		v.rec.Reset()
	}
}

func (v *Viewer) reset() {
	if v.run.Reset() {
		v.rec.Reset()
	}
}

// checkFinished writes output once when the run reaches a terminal state.
func (v *Viewer) checkFinished() {
	state := v.run.State()
	if state == v.lastState {
		return
	}
	v.lastState = state
	if !state.Terminal() {
		return
	}

	summary := telemetry.Summarize(v.run, v.rec.Records())
	v.log.Info("run finished", "summary", summary)
	if err := v.out.WriteSteps(v.rec.Records()); err != nil {
		v.log.Error("writing steps", "error", err)
	}
	if err := v.out.WriteSummary(summary); err != nil {
		v.log.Error("writing summary", "error", err)
	}
}
