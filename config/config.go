// Package config provides configuration loading and access for hexastar.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/hexastar/hexgrid"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Search    SearchConfig    `yaml:"search"`
	Run       RunConfig       `yaml:"run"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the board bounds and hexagon size.
// Width and height default to the screen size when zero.
type GridConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	SideLength float64 `yaml:"side_length"`
}

// SearchConfig holds stepping parameters for interactive drivers.
type SearchConfig struct {
	AutoStep      bool `yaml:"auto_step"`       // Advance every frame once running
	StepsPerFrame int  `yaml:"steps_per_frame"` // Advance calls per frame when auto-stepping
	MaxSteps      int  `yaml:"max_steps"`       // Headless step cap (0 = unlimited)
}

// Coord is a lattice position written as [row, col].
type Coord [2]int

// Row returns the row index.
func (c Coord) Row() int { return c[0] }

// Col returns the column index.
func (c Coord) Col() int { return c[1] }

// RunConfig places endpoints and barriers for headless runs.
type RunConfig struct {
	Start    *Coord  `yaml:"start"`
	End      *Coord  `yaml:"end"`
	Barriers []Coord `yaml:"barriers"`
}

// TelemetryConfig holds step timing and logging parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Frames averaged by the perf collector
	LogEvery   int `yaml:"log_every"`   // Log a progress line every N steps (0 = never)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Grid hexgrid.Params // Effective grid parameters
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Grid bounds default to screen size if not specified
	w := c.Grid.Width
	if w == 0 {
		w = float64(c.Screen.Width)
	}
	h := c.Grid.Height
	if h == 0 {
		h = float64(c.Screen.Height)
	}
	c.Derived.Grid = hexgrid.Params{Width: w, Height: h, Side: c.Grid.SideLength}

	if c.Search.StepsPerFrame < 1 {
		c.Search.StepsPerFrame = 1
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
}

func (c *Config) validate() error {
	if err := c.Derived.Grid.Validate(); err != nil {
		return fmt.Errorf("invalid grid: %w", err)
	}
	if c.Screen.Width < 0 || c.Screen.Height < 0 || c.Screen.TargetFPS < 0 {
		return fmt.Errorf("invalid screen: %dx%d @ %d fps", c.Screen.Width, c.Screen.Height, c.Screen.TargetFPS)
	}
	for _, b := range c.Run.Barriers {
		if b.Row() < 0 || b.Col() < 0 {
			return fmt.Errorf("invalid barrier %v: negative index", b)
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
