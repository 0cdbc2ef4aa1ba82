package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/hexastar/config"
)

// OutputManager writes run output into a directory: steps.csv,
// summary.csv and a config.yaml snapshot.
type OutputManager struct {
	dir         string
	stepsFile   *os.File
	summaryFile *os.File

	stepsHeaderWritten   bool
	summaryHeaderWritten bool
}

// NewOutputManager creates the output directory and files.
// Returns nil if dir is empty (output disabled); every method is a no-op
// on a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "steps.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating steps.csv: %w", err)
	}
	om.stepsFile = f

	f, err = os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		om.stepsFile.Close()
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	om.summaryFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSteps appends step records to steps.csv.
func (om *OutputManager) WriteSteps(records []StepRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := writeCSV(om.stepsFile, records, &om.stepsHeaderWritten); err != nil {
		return fmt.Errorf("writing steps: %w", err)
	}
	return nil
}

// WriteSummary appends a run summary to summary.csv.
func (om *OutputManager) WriteSummary(s Summary) error {
	if om == nil {
		return nil
	}
	if err := writeCSV(om.summaryFile, []Summary{s}, &om.summaryHeaderWritten); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// writeCSV includes headers only on the first write to a file.
func writeCSV(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.stepsFile, om.summaryFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
