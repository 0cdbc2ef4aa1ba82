package term

import (
	"testing"

	"github.com/pthm-cable/hexastar/astar"
	"github.com/pthm-cable/hexastar/config"
	"github.com/pthm-cable/hexastar/hexgrid"
)

// 3 rows of 3 cells.
var small = hexgrid.Params{Width: 45, Height: 30, Side: 10}

func testDriver(t *testing.T) *Driver {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	cfg.Derived.Grid = small
	cfg.Search.AutoStep = false
	return newDriver(cfg, Options{Silent: true})
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		row, col int
		x, y     int
	}{
		{0, 0, 2, 2},
		{0, 1, 6, 2},
		{1, 0, 0, 3},
		{1, 2, 8, 3},
		{2, 1, 6, 4},
	}
	for _, tc := range tests {
		x, y := origin(tc.row, tc.col)
		if x != tc.x || y != tc.y {
			t.Errorf("origin(%d, %d) = (%d, %d), want (%d, %d)", tc.row, tc.col, x, y, tc.x, tc.y)
		}
	}
}

func TestCursorClamps(t *testing.T) {
	g := hexgrid.Build(small)
	var c cursor

	c.move(g, -1, -1)
	if c.row != 0 || c.col != 0 {
		t.Errorf("cursor = %+v, want origin", c)
	}
	c.move(g, 10, 10)
	if c.row != g.Rows()-1 || c.col != g.RowLen(g.Rows()-1)-1 {
		t.Errorf("cursor = %+v, want last cell", c)
	}
	if c.cell(g) == nil {
		t.Error("clamped cursor should select a cell")
	}

	var empty cursor
	empty.move(hexgrid.Build(hexgrid.Params{}), 1, 1)
	if empty.row != 0 || empty.col != 0 {
		t.Errorf("cursor moved on empty grid: %+v", empty)
	}
}

func TestKeyboardSession(t *testing.T) {
	d := testDriver(t)

	// Mark start at (0,0), end at (2,2).
	d.apply(cmdClick)
	d.apply(cmdDown)
	d.apply(cmdDown)
	d.apply(cmdRight)
	d.apply(cmdRight)
	d.apply(cmdClick)

	g := d.run.Grid()
	if d.run.StartID() != g.At(0, 0).ID || d.run.EndID() != g.At(2, 2).ID {
		t.Fatalf("start %d end %d, want corners", d.run.StartID(), d.run.EndID())
	}

	d.apply(cmdBegin)
	if d.run.State() != astar.Running {
		t.Fatalf("state = %s, want running", d.run.State())
	}

	for i := 0; i < 20 && d.run.State() == astar.Running; i++ {
		d.apply(cmdStep)
	}
	if d.run.State() != astar.Succeeded {
		t.Fatalf("state = %s, want succeeded", d.run.State())
	}
	if len(d.rec.Records()) != d.run.Steps() {
		t.Errorf("recorded %d steps, run reports %d", len(d.rec.Records()), d.run.Steps())
	}
	if d.lastState != astar.Succeeded {
		t.Errorf("finish not observed, last state %s", d.lastState)
	}

	d.apply(cmdReset)
	if d.run.State() != astar.Idle || d.run.StartID() != hexgrid.NoParent {
		t.Errorf("reset left state %s start %d", d.run.State(), d.run.StartID())
	}
	if len(d.rec.Records()) != 0 {
		t.Errorf("reset kept %d records", len(d.rec.Records()))
	}

	if d.apply(cmdQuit) {
		t.Error("quit should stop the driver")
	}
}

func TestAutoStepTick(t *testing.T) {
	d := testDriver(t)
	d.stepsPerTick = 2

	d.apply(cmdClick)
	d.apply(cmdRight)
	d.apply(cmdRight)
	d.apply(cmdClick)
	d.apply(cmdBegin)

	d.tick()
	if d.run.Steps() != 0 {
		t.Fatalf("tick advanced with auto-step off: %d steps", d.run.Steps())
	}

	d.apply(cmdAuto)
	d.tick()
	if d.run.Steps() == 0 || d.run.Steps() > 2 {
		t.Errorf("steps after one tick = %d, want 1 or 2", d.run.Steps())
	}
	for i := 0; i < 10; i++ {
		d.tick()
	}
	if !d.run.State().Terminal() {
		t.Errorf("state = %s after ticks, want terminal", d.run.State())
	}
}
