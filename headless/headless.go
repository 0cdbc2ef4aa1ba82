// Package headless solves a configured board without a window and checks
// the result against an independent shortest-path computation.
package headless

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/hexastar/astar"
	"github.com/pthm-cable/hexastar/config"
	"github.com/pthm-cable/hexastar/telemetry"
)

// ErrOracleMismatch reports a path whose cost disagrees with Dijkstra.
var ErrOracleMismatch = errors.New("headless: path cost differs from shortest path")

// Options configures a headless solve.
type Options struct {
	Logger   *slog.Logger
	Output   *telemetry.OutputManager // nil disables CSV output
	MaxSteps int                      // 0 = use config
}

// Result is the outcome of a headless solve.
type Result struct {
	Run     *astar.Run
	Records []telemetry.StepRecord
	Summary telemetry.Summary
}

// Place applies start, end and barriers given as [row, col] to an idle run.
func Place(r *astar.Run, rc config.RunConfig) error {
	if rc.Start == nil || rc.End == nil {
		return errors.New("run needs start and end")
	}
	g := r.Grid()
	lookup := func(name string, at config.Coord) (int, error) {
		c := g.At(at.Row(), at.Col())
		if c == nil {
			return 0, fmt.Errorf("%s %v: outside grid", name, at)
		}
		return c.ID, nil
	}

	start, err := lookup("start", *rc.Start)
	if err != nil {
		return err
	}
	end, err := lookup("end", *rc.End)
	if err != nil {
		return err
	}
	barriers := make([]int, 0, len(rc.Barriers))
	for _, b := range rc.Barriers {
		id, err := lookup("barrier", b)
		if err != nil {
			return err
		}
		if id == start || id == end {
			return fmt.Errorf("barrier %v: on an endpoint", b)
		}
		barriers = append(barriers, id)
	}

	if !r.Place(start, end, barriers...) {
		return fmt.Errorf("placement rejected in state %s", r.State())
	}
	return nil
}

// Solve builds a run from cfg, places the configured endpoints and
// barriers, and steps it to completion or the step limit.
func Solve(cfg *config.Config, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := astar.New(cfg.Derived.Grid, astar.WithLogger(log))
	if r.Grid().Len() == 0 {
		return nil, errors.New("empty grid")
	}
	if err := Place(r, cfg.Run); err != nil {
		return nil, fmt.Errorf("placing run: %w", err)
	}
	if !r.BeginRun() {
		return nil, errors.New("run not ready")
	}

	maxSteps := cfg.Search.MaxSteps
	if opts.MaxSteps > 0 {
		maxSteps = opts.MaxSteps
	}

	rec := &telemetry.Recorder{}
	for r.State() == astar.Running {
		if maxSteps > 0 && r.Steps() >= maxSteps {
			log.Info("max steps reached", "steps", r.Steps())
			break
		}
		rep, ok := rec.Advance(r)
		if !ok {
			break
		}
		if n := cfg.Telemetry.LogEvery; n > 0 && rep.Step%n == 0 {
			log.Info("step",
				"step", rep.Step,
				"batch", rep.Batch(),
				"open", rep.Open,
				"closed", rep.Closed,
				"min_f", rep.MinF,
			)
		}
	}

	res := &Result{
		Run:     r,
		Records: rec.Records(),
		Summary: telemetry.Summarize(r, rec.Records()),
	}
	log.Info("run finished", "summary", res.Summary)

	if err := opts.Output.WriteConfig(cfg); err != nil {
		return res, err
	}
	if err := opts.Output.WriteSteps(res.Records); err != nil {
		return res, err
	}
	if err := opts.Output.WriteSummary(res.Summary); err != nil {
		return res, err
	}

	if err := Verify(r); err != nil {
		return res, err
	}
	return res, nil
}

// Verify compares a terminal run with Dijkstra over the same grid. A
// succeeded run must match the optimal cost and a failed run must have no
// route at all. Non-terminal runs are not checked.
func Verify(r *astar.Run) error {
	if !r.State().Terminal() {
		return nil
	}
	g := r.Grid()
	cost, hops, ok := g.ShortestCost(r.StartID(), r.EndID())

	switch r.State() {
	case astar.Succeeded:
		if !ok {
			return fmt.Errorf("%w: search found a path, oracle found none", ErrOracleMismatch)
		}
		got := r.G(r.EndID())
		if math.Abs(got-cost) > 1e-6*math.Max(1, cost) || len(r.Path())-1 != hops {
			return fmt.Errorf("%w: cost %.3f over %d hops, oracle %.3f over %d hops",
				ErrOracleMismatch, got, len(r.Path())-1, cost, hops)
		}
	case astar.Failed:
		if ok {
			return fmt.Errorf("%w: search failed, oracle found cost %.3f", ErrOracleMismatch, cost)
		}
	}
	return nil
}
