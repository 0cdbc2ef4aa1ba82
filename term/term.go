// Package term drives an astar.Run from a terminal using tcell. Hexes are
// drawn as two-character cells with alternating row stagger, and a
// keyboard cursor stands in for the mouse.
package term

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/hexastar/astar"
	"github.com/pthm-cable/hexastar/config"
	"github.com/pthm-cable/hexastar/hexgrid"
	"github.com/pthm-cable/hexastar/telemetry"
)

// Options configures a Driver.
type Options struct {
	Logger *slog.Logger
	Output *telemetry.OutputManager // nil disables CSV output
	Silent bool                     // skip audio initialisation
}

// Driver owns the terminal screen and the run it displays.
type Driver struct {
	screen tcell.Screen
	cfg    *config.Config
	run    *astar.Run
	rec    *telemetry.Recorder
	out    *telemetry.OutputManager
	log    *slog.Logger
	audio  tones

	cur          cursor
	autoStep     bool
	stepsPerTick int
	lastState    astar.State
}

type command uint8

const (
	cmdNone command = iota
	cmdQuit
	cmdUp
	cmdDown
	cmdLeft
	cmdRight
	cmdClick
	cmdBegin
	cmdStep
	cmdAuto
	cmdReset
)

// New opens the terminal screen and builds a run from cfg.
func New(cfg *config.Config, opts Options) (*Driver, error) {
	d := newDriver(cfg, opts)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising screen: %w", err)
	}
	d.screen = screen

	if !opts.Silent {
		if err := d.audio.init(); err != nil {
			// Non-fatal, the driver runs without sound
			d.log.Warn("audio initialisation failed", "error", err)
		}
	}
	return d, nil
}

func newDriver(cfg *config.Config, opts Options) *Driver {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		cfg:          cfg,
		run:          astar.New(cfg.Derived.Grid, astar.WithLogger(log)),
		rec:          &telemetry.Recorder{},
		out:          opts.Output,
		log:          log,
		autoStep:     cfg.Search.AutoStep,
		stepsPerTick: cfg.Search.StepsPerFrame,
	}
}

// Run processes input and redraws until the user quits.
func (d *Driver) Run() {
	fps := d.cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	d.draw()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !d.apply(keyCommand(ev)) {
					return
				}
			case *tcell.EventResize:
				d.screen.Sync()
			}
			d.draw()

		case <-ticker.C:
			d.tick()
			d.draw()
		}
	}
}

// Close restores the terminal and releases audio and output.
func (d *Driver) Close() {
	d.audio.close()
	if d.screen != nil {
		d.screen.Fini()
	}
	if err := d.out.Close(); err != nil {
		d.log.Error("closing output", "error", err)
	}
}

func keyCommand(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyUp:
		return cmdUp
	case tcell.KeyDown:
		return cmdDown
	case tcell.KeyLeft:
		return cmdLeft
	case tcell.KeyRight:
		return cmdRight
	case tcell.KeyEnter:
		return cmdBegin
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return cmdReset
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return cmdClick
		case 'n':
			return cmdStep
		case 'a':
			return cmdAuto
		case 'q':
			return cmdQuit
		}
	}
	return cmdNone
}

// apply executes one command. Returns false when the driver should exit.
func (d *Driver) apply(cmd command) bool {
	g := d.run.Grid()
	switch cmd {
	case cmdQuit:
		return false
	case cmdUp:
		d.cur.move(g, -1, 0)
	case cmdDown:
		d.cur.move(g, 1, 0)
	case cmdLeft:
		d.cur.move(g, 0, -1)
	case cmdRight:
		d.cur.move(g, 0, 1)
	case cmdClick:
		if c := d.cur.cell(g); c != nil {
			d.run.ClickCell(c.ID)
		}
	case cmdBegin:
		if d.run.BeginRun() {
			d.rec.Reset()
		}
	case cmdStep:
		if d.run.State() == astar.Running {
			d.rec.Advance(d.run)
		}
	case cmdAuto:
		d.autoStep = !d.autoStep
	case cmdReset:
		if d.run.Reset() {
			d.rec.Reset()
			d.cur.move(d.run.Grid(), 0, 0)
		}
	}
	d.checkFinished()
	return true
}

// tick advances an auto-stepping run.
func (d *Driver) tick() {
	if !d.autoStep {
		return
	}
	for i := 0; i < d.stepsPerTick && d.run.State() == astar.Running; i++ {
		d.rec.Advance(d.run)
	}
	d.checkFinished()
}

// checkFinished reports a terminal state once.
func (d *Driver) checkFinished() {
	state := d.run.State()
	if state == d.lastState {
		return
	}
	d.lastState = state
	if !state.Terminal() {
		return
	}

	summary := telemetry.Summarize(d.run, d.rec.Records())
	d.log.Info("run finished", "summary", summary)
	if state == astar.Succeeded {
		d.audio.play(successFreq)
	} else {
		d.audio.play(failureFreq)
	}
	if err := d.out.WriteSteps(d.rec.Records()); err != nil {
		d.log.Error("writing steps", "error", err)
	}
	if err := d.out.WriteSummary(summary); err != nil {
		d.log.Error("writing summary", "error", err)
	}
}

var kindStyles = map[hexgrid.Kind]tcell.Style{
	hexgrid.KindDefault: tcell.StyleDefault.Foreground(tcell.ColorGray),
	hexgrid.KindOpen:    tcell.StyleDefault.Foreground(tcell.ColorYellow),
	hexgrid.KindClosed:  tcell.StyleDefault.Foreground(tcell.ColorBlue),
	hexgrid.KindPath:    tcell.StyleDefault.Foreground(tcell.ColorWhite),
	hexgrid.KindBarrier: tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
	hexgrid.KindEnd:     tcell.StyleDefault.Foreground(tcell.ColorRed),
	hexgrid.KindStart:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
}

// glyphs returns the two runes drawn for a cell kind.
func glyphs(k hexgrid.Kind) (rune, rune) {
	if k == hexgrid.KindDefault {
		return '[', ']'
	}
	return '█', '█'
}

func (d *Driver) draw() {
	s := d.screen
	s.Clear()

	g := d.run.Grid()
	selected := d.cur.cell(g)
	for _, c := range g.Cells() {
		x, y := origin(c.Row, c.Col)
		k := c.Kind()
		style := kindStyles[k]
		if c == selected {
			style = style.Reverse(true)
		}
		l, r := glyphs(k)
		s.SetContent(x, y, l, nil, style)
		s.SetContent(x+1, y, r, nil, style)
	}

	open, closed := 0, 0
	for _, c := range g.Cells() {
		if c.Open {
			open++
		}
		if c.Closed {
			closed++
		}
	}
	auto := "off"
	if d.autoStep {
		auto = "on"
	}
	d.text(0, 0, tcell.StyleDefault.Bold(true),
		fmt.Sprintf("%-9s step %d  open %d  closed %d  path %d  auto %s",
			d.run.State(), d.run.Steps(), open, closed, len(d.run.Path()), auto))
	d.text(0, 1, tcell.StyleDefault.Foreground(tcell.ColorGray),
		"arrows move  space mark  enter run  n step  a auto  backspace reset  esc quit")

	s.Show()
}

func (d *Driver) text(x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}
