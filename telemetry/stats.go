// Package telemetry records per-step search statistics, frame timings,
// and writes them out as CSV.
package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/hexastar/astar"
)

// StepRecord is one Advance call, flattened for CSV export.
type StepRecord struct {
	Step       int     `csv:"step"`
	Batch      int     `csv:"batch"`
	Open       int     `csv:"open"`
	Closed     int     `csv:"closed"`
	MinF       float64 `csv:"min_f"`
	State      string  `csv:"state"`
	DurationUS int64   `csv:"duration_us"`
}

// NewStepRecord flattens a step report and the time the step took.
func NewStepRecord(rep astar.StepReport, d time.Duration) StepRecord {
	return StepRecord{
		Step:       rep.Step,
		Batch:      rep.Batch(),
		Open:       rep.Open,
		Closed:     rep.Closed,
		MinF:       rep.MinF,
		State:      rep.State.String(),
		DurationUS: d.Microseconds(),
	}
}

// Summary aggregates a finished run.
type Summary struct {
	Outcome    string  `csv:"outcome"`
	Cells      int     `csv:"cells"`
	Steps      int     `csv:"steps"`
	Expanded   int     `csv:"expanded"`
	PathCells  int     `csv:"path_cells"`
	PathCost   float64 `csv:"path_cost"`
	MeanBatch  float64 `csv:"mean_batch"`
	StdBatch   float64 `csv:"std_batch"`
	MaxBatch   int     `csv:"max_batch"`
	PeakOpen   int     `csv:"peak_open"`
	TotalUS    int64   `csv:"total_us"`
	MeanStepUS float64 `csv:"mean_step_us"`
}

// Summarize computes run-level statistics from the step records of r.
func Summarize(r *astar.Run, records []StepRecord) Summary {
	s := Summary{
		Outcome:   r.State().String(),
		Cells:     r.Grid().Len(),
		Steps:     len(records),
		PathCells: len(r.Path()),
	}
	if r.State() == astar.Succeeded {
		s.PathCost = r.G(r.EndID())
	}
	if len(records) == 0 {
		return s
	}

	batches := make([]float64, len(records))
	durations := make([]float64, len(records))
	for i, rec := range records {
		batches[i] = float64(rec.Batch)
		durations[i] = float64(rec.DurationUS)
		s.Expanded += rec.Batch
		s.TotalUS += rec.DurationUS
		if rec.Batch > s.MaxBatch {
			s.MaxBatch = rec.Batch
		}
		if rec.Open > s.PeakOpen {
			s.PeakOpen = rec.Open
		}
	}
	s.MeanBatch, s.StdBatch = stat.MeanStdDev(batches, nil)
	s.MeanStepUS = stat.Mean(durations, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("outcome", s.Outcome),
		slog.Int("cells", s.Cells),
		slog.Int("steps", s.Steps),
		slog.Int("expanded", s.Expanded),
		slog.Int("path_cells", s.PathCells),
		slog.Float64("path_cost", s.PathCost),
		slog.Float64("mean_batch", s.MeanBatch),
		slog.Int("max_batch", s.MaxBatch),
		slog.Int("peak_open", s.PeakOpen),
		slog.Int64("total_us", s.TotalUS),
	)
}

// Recorder collects step records for a run, timing each Advance.
type Recorder struct {
	records []StepRecord
}

// Advance steps r once, recording the report when the step was accepted.
func (rc *Recorder) Advance(r *astar.Run) (astar.StepReport, bool) {
	start := time.Now()
	rep, ok := r.Advance()
	if ok {
		rc.records = append(rc.records, NewStepRecord(rep, time.Since(start)))
	}
	return rep, ok
}

// Records returns the collected records.
func (rc *Recorder) Records() []StepRecord { return rc.records }

// Last returns the most recent record, if any.
func (rc *Recorder) Last() (StepRecord, bool) {
	if len(rc.records) == 0 {
		return StepRecord{}, false
	}
	return rc.records[len(rc.records)-1], true
}

// Reset drops collected records.
func (rc *Recorder) Reset() { rc.records = rc.records[:0] }
