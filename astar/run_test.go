package astar

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/hexastar/hexgrid"
)

// Three rows of three cells, side 10.
var small = hexgrid.Params{Width: 45, Height: 30, Side: 10}

// Five rows of seven cells, side 10.
var wide = hexgrid.Params{Width: 115, Height: 60, Side: 10}

func cellAt(t *testing.T, r *Run, row, col int) *hexgrid.Cell {
	t.Helper()
	c := r.Grid().At(row, col)
	if c == nil {
		t.Fatalf("no cell at (%d, %d)", row, col)
	}
	return c
}

// setup clicks start, end and barriers in order and begins the run.
func setup(t *testing.T, r *Run, start, end [2]int, barriers ...[2]int) {
	t.Helper()
	for _, rc := range append([][2]int{start, end}, barriers...) {
		if !r.ClickCell(cellAt(t, r, rc[0], rc[1]).ID) {
			t.Fatalf("click on (%d, %d) rejected", rc[0], rc[1])
		}
	}
	if !r.BeginRun() {
		t.Fatal("BeginRun rejected")
	}
}

func TestClickPriority(t *testing.T) {
	r := New(small)
	a, b, c := cellAt(t, r, 0, 0), cellAt(t, r, 1, 1), cellAt(t, r, 2, 2)

	steps := []struct {
		name     string
		id       int
		accepted bool
		start    int
		end      int
		barrier  bool // expected barrier flag on c afterwards
	}{
		{"set start", a.ID, true, a.ID, hexgrid.NoParent, false},
		{"unset start while end unset", a.ID, true, hexgrid.NoParent, hexgrid.NoParent, false},
		{"set start again", a.ID, true, a.ID, hexgrid.NoParent, false},
		{"set end", b.ID, true, a.ID, b.ID, false},
		{"set barrier", c.ID, true, a.ID, b.ID, true},
		{"clear barrier", c.ID, true, a.ID, b.ID, false},
		{"barrier again", c.ID, true, a.ID, b.ID, true},
		{"unset end", b.ID, true, a.ID, hexgrid.NoParent, true},
		{"unset start with end unset", a.ID, true, hexgrid.NoParent, hexgrid.NoParent, true},
		{"barrier cannot become an endpoint", c.ID, false, hexgrid.NoParent, hexgrid.NoParent, true},
		{"start once more", a.ID, true, a.ID, hexgrid.NoParent, true},
		{"end once more", b.ID, true, a.ID, b.ID, true},
		{"unset start with end set", a.ID, true, hexgrid.NoParent, b.ID, true},
		{"end cell also becomes start", b.ID, true, b.ID, b.ID, true},
	}

	for _, s := range steps {
		if got := r.ClickCell(s.id); got != s.accepted {
			t.Errorf("%s: accepted = %v, want %v", s.name, got, s.accepted)
		}
		if r.StartID() != s.start || r.EndID() != s.end {
			t.Errorf("%s: start/end = %d/%d, want %d/%d", s.name, r.StartID(), r.EndID(), s.start, s.end)
		}
		if c.Barrier != s.barrier {
			t.Errorf("%s: barrier = %v, want %v", s.name, c.Barrier, s.barrier)
		}
	}

	if a.Start {
		t.Error("start flag left on a cell that was unset")
	}
	if !b.Start || !b.End {
		t.Error("shared start/end cell is missing a role flag")
	}
}

func TestClickPoint(t *testing.T) {
	r := New(small)
	target := cellAt(t, r, 1, 2)

	if !r.Click(target.Center) {
		t.Fatal("click on a cell center rejected")
	}
	if r.StartID() != target.ID || !target.Start {
		t.Errorf("start = %d, want %d", r.StartID(), target.ID)
	}

	far := target.Center
	far.X += 1e5
	if r.Click(far) {
		t.Error("click far outside the board was accepted")
	}
}

func TestCommandsGatedByState(t *testing.T) {
	r := New(small)

	if r.BeginRun() {
		t.Fatal("BeginRun accepted without endpoints")
	}
	if _, ok := r.Advance(); ok {
		t.Fatal("Advance accepted while idle")
	}

	setup(t, r, [2]int{0, 0}, [2]int{2, 2})
	if r.State() != Running {
		t.Fatalf("state = %s, want running", r.State())
	}
	if r.ClickCell(cellAt(t, r, 1, 1).ID) {
		t.Error("click accepted while running")
	}
	if cellAt(t, r, 1, 1).Barrier {
		t.Error("click while running changed a role")
	}
	if r.Reset() {
		t.Error("reset accepted while running")
	}
	if r.BeginRun() {
		t.Error("BeginRun accepted while running")
	}

	if r.Solve(0) != Succeeded {
		t.Fatalf("state = %s, want succeeded", r.State())
	}
	if r.ClickCell(cellAt(t, r, 1, 0).ID) {
		t.Error("click accepted after the run finished")
	}
	if _, ok := r.Advance(); ok {
		t.Error("Advance accepted after the run finished")
	}
}

// Scenario: corner to corner on an open 3x3 grid.
func TestOpenGridCornerToCorner(t *testing.T) {
	r := New(small)
	setup(t, r, [2]int{0, 0}, [2]int{2, 2})

	if got := r.Solve(0); got != Succeeded {
		t.Fatalf("state = %s, want succeeded", got)
	}

	start, end := cellAt(t, r, 0, 0), cellAt(t, r, 2, 2)
	_, hops, ok := r.Grid().ShortestCost(start.ID, end.ID)
	if !ok {
		t.Fatal("oracle found no route")
	}
	if hops != 3 {
		t.Fatalf("oracle hops = %d, want 3", hops)
	}

	path := r.Path()
	if len(path)-1 != hops {
		t.Errorf("path has %d steps, want %d: %v", len(path)-1, hops, path)
	}
	if path[0] != start.ID || path[len(path)-1] != end.ID {
		t.Errorf("path endpoints = %d..%d, want %d..%d", path[0], path[len(path)-1], start.ID, end.ID)
	}
	if g := r.G(end.ID); math.Abs(g-3*r.Grid().EdgeCost()) > 1e-9 {
		t.Errorf("G(end) = %f, want %f", g, 3*r.Grid().EdgeCost())
	}
	assertContiguous(t, r, path)

	for _, c := range r.Grid().Cells() {
		onPath := contains(path, c.ID)
		if c.Path != onPath {
			t.Errorf("cell %d Path = %v, on reconstructed path = %v", c.ID, c.Path, onPath)
		}
	}
}

// Scenario: a barrier column with a single gap forces the route through it.
func TestRouteThroughGap(t *testing.T) {
	r := New(wide)
	gap := cellAt(t, r, 0, 3)
	setup(t, r, [2]int{4, 0}, [2]int{4, 6},
		[2]int{1, 3}, [2]int{2, 3}, [2]int{3, 3}, [2]int{4, 3})

	if got := r.Solve(0); got != Succeeded {
		t.Fatalf("state = %s, want succeeded", got)
	}

	path := r.Path()
	if !contains(path, gap.ID) {
		t.Fatalf("path %v does not pass through the gap %d", path, gap.ID)
	}
	for _, id := range path {
		c := r.Grid().Cell(id)
		if c.Barrier {
			t.Errorf("path crosses barrier %d", id)
		}
		if c.Col == 3 && id != gap.ID {
			t.Errorf("path uses column 3 cell %d outside the gap", id)
		}
	}
	assertContiguous(t, r, path)

	_, hops, _ := r.Grid().ShortestCost(r.StartID(), r.EndID())
	if len(path)-1 != hops {
		t.Errorf("path has %d steps, oracle says %d", len(path)-1, hops)
	}
}

// Scenario: an enclosed end cell exhausts the open set.
func TestEnclosedEndFails(t *testing.T) {
	r := New(wide)
	end := cellAt(t, r, 2, 3)

	var ring [][2]int
	for _, id := range end.Neighbors {
		c := r.Grid().Cell(id)
		ring = append(ring, [2]int{c.Row, c.Col})
	}
	setup(t, r, [2]int{0, 0}, [2]int{2, 3}, ring...)

	if got := r.Solve(r.Grid().Len() + 1); got != Failed {
		t.Fatalf("state = %s, want failed", got)
	}
	if len(r.Path()) != 0 {
		t.Errorf("failed run has a path: %v", r.Path())
	}
	if end.Closed || end.HasParent() {
		t.Error("enclosed end cell was reached")
	}

	rep, ok := r.Advance()
	if ok || rep.State != Failed {
		t.Errorf("Advance after failure = %+v, %v", rep, ok)
	}
}

func TestStartIsEnd(t *testing.T) {
	r := New(small)
	c := cellAt(t, r, 1, 1)

	// Set an end elsewhere, free the start slot, then click the end cell.
	r.ClickCell(c.ID)
	r.ClickCell(cellAt(t, r, 0, 0).ID)
	r.ClickCell(c.ID) // clears start, end stays (0,0)
	r.ClickCell(cellAt(t, r, 0, 0).ID)
	if r.StartID() != r.EndID() || r.StartID() != cellAt(t, r, 0, 0).ID {
		t.Fatalf("start/end = %d/%d, want both at (0,0)", r.StartID(), r.EndID())
	}

	if !r.BeginRun() {
		t.Fatal("BeginRun rejected")
	}
	rep, ok := r.Advance()
	if !ok || rep.State != Succeeded {
		t.Fatalf("first step = %+v, want succeeded", rep)
	}
	if len(r.Path()) != 1 || r.Path()[0] != r.StartID() {
		t.Errorf("path = %v, want only the start", r.Path())
	}
	if r.G(r.EndID()) != 0 {
		t.Errorf("G(end) = %f, want 0", r.G(r.EndID()))
	}
}

// Scenario: reset after success leaves no residual state.
func TestResetClearsEverything(t *testing.T) {
	r := New(wide)
	setup(t, r, [2]int{0, 0}, [2]int{4, 6}, [2]int{2, 2}, [2]int{2, 3})
	if r.Solve(0) != Succeeded {
		t.Fatalf("state = %s, want succeeded", r.State())
	}

	if !r.Reset() {
		t.Fatal("reset rejected after success")
	}
	if r.State() != Idle {
		t.Errorf("state = %s, want idle", r.State())
	}
	if r.StartID() != hexgrid.NoParent || r.EndID() != hexgrid.NoParent {
		t.Errorf("endpoints survived reset: %d/%d", r.StartID(), r.EndID())
	}
	if len(r.Path()) != 0 || r.Steps() != 0 {
		t.Errorf("path %v / steps %d survived reset", r.Path(), r.Steps())
	}
	for _, c := range r.Grid().Cells() {
		if c.Kind() != hexgrid.KindDefault || c.HasParent() {
			t.Fatalf("cell %d not cleared: %+v", c.ID, c)
		}
	}
	for _, k := range r.Snapshot() {
		if k != hexgrid.KindDefault {
			t.Fatalf("snapshot kind %s after reset", k)
		}
	}
}

func TestResetFromFailed(t *testing.T) {
	r := New(small)
	end := cellAt(t, r, 2, 2)
	var ring [][2]int
	for _, id := range end.Neighbors {
		c := r.Grid().Cell(id)
		ring = append(ring, [2]int{c.Row, c.Col})
	}
	setup(t, r, [2]int{0, 0}, [2]int{2, 2}, ring...)
	if r.Solve(0) != Failed {
		t.Fatalf("state = %s, want failed", r.State())
	}
	if !r.Reset() || r.State() != Idle {
		t.Fatalf("reset from failed: state = %s", r.State())
	}
}

func TestHeuristic(t *testing.T) {
	r := New(wide)
	for _, c := range r.Grid().Cells() {
		if h := r.H(c.ID); h != 0 {
			t.Fatalf("H without an end = %f, want 0", h)
		}
	}

	setup(t, r, [2]int{0, 0}, [2]int{3, 4})
	for _, c := range r.Grid().Cells() {
		h := r.H(c.ID)
		if h < 0 || math.IsNaN(h) {
			t.Errorf("H(%d) = %f", c.ID, h)
		}
		for _, id := range c.Neighbors {
			// Consistency: h never drops by more than one edge.
			if h > r.H(id)+r.Grid().EdgeCost()+1e-9 {
				t.Errorf("heuristic inconsistent between %d and %d", c.ID, id)
			}
		}
	}
	if h := r.H(r.EndID()); h != 0 {
		t.Errorf("H(end) = %f, want 0", h)
	}
}

// TestSearchInvariants runs random boards step by step and checks that g
// never increases, parent chains stay acyclic and rooted at start, and the
// result matches an independent shortest-path oracle.
func TestSearchInvariants(t *testing.T) {
	p := hexgrid.Params{Width: 260, Height: 180, Side: 10}

	for seed := int64(1); seed <= 12; seed++ {
		rng := rand.New(rand.NewSource(seed))
		r := New(p)
		n := r.Grid().Len()

		start := rng.Intn(n)
		end := rng.Intn(n)
		for end == start {
			end = rng.Intn(n)
		}
		r.ClickCell(start)
		r.ClickCell(end)
		for i := 0; i < n/4; i++ {
			id := rng.Intn(n)
			c := r.Grid().Cell(id)
			if c.Start || c.End || c.Barrier {
				continue
			}
			r.ClickCell(id)
		}
		if !r.BeginRun() {
			t.Fatalf("seed %d: BeginRun rejected", seed)
		}

		prev := make([]float64, n)
		for i := range prev {
			prev[i] = math.Inf(1)
		}
		for steps := 0; r.State() == Running; steps++ {
			if steps > n+1 {
				t.Fatalf("seed %d: run did not terminate", seed)
			}
			rep, _ := r.Advance()
			if rep.State == Running && rep.Batch() == 0 {
				t.Fatalf("seed %d: running step expanded nothing", seed)
			}

			for _, c := range r.Grid().Cells() {
				g := r.G(c.ID)
				if g > prev[c.ID] {
					t.Fatalf("seed %d step %d: G(%d) rose from %f to %f", seed, rep.Step, c.ID, prev[c.ID], g)
				}
				prev[c.ID] = g
				if c.Barrier && !math.IsInf(g, 1) {
					t.Fatalf("seed %d: barrier %d has finite g", seed, c.ID)
				}
				if c.HasParent() {
					if _, ok := r.hops(c.ID); !ok {
						t.Fatalf("seed %d: chain from %d does not reach start", seed, c.ID)
					}
				}
			}
			if r.Grid().Cell(start).HasParent() {
				t.Fatalf("seed %d: start acquired a parent", seed)
			}
		}

		cost, _, reachable := r.Grid().ShortestCost(start, end)
		switch r.State() {
		case Succeeded:
			if !reachable {
				t.Fatalf("seed %d: succeeded but oracle finds no route", seed)
			}
			if math.Abs(r.G(end)-cost) > 1e-6 {
				t.Errorf("seed %d: G(end) = %f, oracle cost %f", seed, r.G(end), cost)
			}
			assertContiguous(t, r, r.Path())
		case Failed:
			if reachable {
				t.Errorf("seed %d: failed but oracle finds a route of cost %f", seed, cost)
			}
		}
	}
}

func TestBatchesAreDeterministic(t *testing.T) {
	play := func() []StepReport {
		r := New(wide)
		setup(t, r, [2]int{2, 0}, [2]int{2, 6}, [2]int{1, 3}, [2]int{2, 3})
		var reps []StepReport
		for r.State() == Running {
			rep, _ := r.Advance()
			reps = append(reps, rep)
		}
		return reps
	}

	a, b := play(), play()
	if len(a) != len(b) {
		t.Fatalf("step counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Batch() != b[i].Batch() || a[i].Open != b[i].Open || a[i].Closed != b[i].Closed {
			t.Fatalf("step %d differs: %+v vs %+v", i+1, a[i], b[i])
		}
		for j := range a[i].Expanded {
			if a[i].Expanded[j] != b[i].Expanded[j] {
				t.Fatalf("step %d expansion order differs", i+1)
			}
		}
	}

	if first := a[0]; first.Batch() != 1 || first.Closed != 1 {
		t.Errorf("first step should expand only the start, got %+v", first)
	}
}

func TestBrokenChainPanics(t *testing.T) {
	r := New(small)
	setup(t, r, [2]int{0, 0}, [2]int{2, 2})
	r.Solve(0)

	// Sever the chain behind the end cell and reconstruct again.
	end := r.Grid().Cell(r.EndID())
	end.Parent = hexgrid.NoParent

	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, ErrBrokenChain) {
			t.Fatalf("recovered %v, want ErrBrokenChain", rec)
		}
	}()
	r.reconstruct()
}

func assertContiguous(t *testing.T, r *Run, path []int) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		if !contains(r.Grid().Cell(path[i-1]).Neighbors, path[i]) {
			t.Errorf("path step %d -> %d is not between neighbors", path[i-1], path[i])
		}
	}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestPlace(t *testing.T) {
	r := New(wide)
	a, b, c := cellAt(t, r, 0, 0), cellAt(t, r, 4, 6), cellAt(t, r, 2, 3)

	r.ClickCell(cellAt(t, r, 1, 1).ID)
	if !r.Place(a.ID, b.ID, c.ID) {
		t.Fatal("Place rejected")
	}
	if r.StartID() != a.ID || r.EndID() != b.ID || !c.Barrier {
		t.Fatalf("start %d end %d barrier %v", r.StartID(), r.EndID(), c.Barrier)
	}
	if cellAt(t, r, 1, 1).Start {
		t.Error("earlier start flag survived Place")
	}

	if r.Place(a.ID, b.ID, a.ID) {
		t.Error("barrier on the start should be rejected")
	}
	if r.Place(a.ID, r.Grid().Len()) {
		t.Error("unknown end should be rejected")
	}

	if !r.BeginRun() {
		t.Fatal("BeginRun rejected")
	}
	if r.Place(a.ID, b.ID) {
		t.Error("Place accepted while running")
	}
	if r.Solve(0) != Succeeded {
		t.Errorf("state = %s, want succeeded", r.State())
	}
}
