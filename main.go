package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hexastar/config"
	"github.com/pthm-cable/hexastar/headless"
	"github.com/pthm-cable/hexastar/telemetry"
	"github.com/pthm-cable/hexastar/term"
	"github.com/pthm-cable/hexastar/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headlessMode := flag.Bool("headless", false, "Solve the configured run without graphics")
	termMode := flag.Bool("term", false, "Run in the terminal instead of a window")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logFile := flag.String("log-file", "", "Log destination in terminal mode (empty = discard)")
	maxSteps := flag.Int("max-steps", 0, "Stop a headless run after N steps (0 = use config)")
	debug := flag.Bool("debug", false, "Log rejected commands and per-step progress")
	silent := flag.Bool("silent", false, "Disable outcome tones in terminal mode")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	switch {
	case *headlessMode:
		// JSON to stdout for structured logging
		logger := slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
		slog.SetDefault(logger)

		slog.Info("starting headless run",
			"grid", cfg.Derived.Grid,
			"max_steps", *maxSteps,
			"output_dir", out.Dir(),
		)
		_, err := headless.Solve(cfg, headless.Options{
			Logger:   logger,
			Output:   out,
			MaxSteps: *maxSteps,
		})
		if cerr := out.Close(); cerr != nil {
			slog.Error("closing output", "error", cerr)
		}
		if err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}

	case *termMode:
		// stdout belongs to the screen
		var w io.Writer = io.Discard
		if *logFile != "" {
			f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				slog.Error("failed to open log file", "error", err)
				os.Exit(1)
			}
			defer f.Close()
			w = f
		}
		logger := slog.New(slog.NewTextHandler(w, handlerOpts))
		slog.SetDefault(logger)

		d, err := term.New(cfg, term.Options{Logger: logger, Output: out, Silent: *silent})
		if err != nil {
			slog.Error("failed to start terminal", "error", err)
			os.Exit(1)
		}
		defer d.Close()
		d.Run()

	default:
		// Graphical mode
		logger := slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
		slog.SetDefault(logger)

		rl.SetConfigFlags(rl.FlagWindowResizable)
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Hex A*")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		v := viewer.New(cfg, viewer.Options{Logger: logger, Output: out})
		defer v.Unload()

		for !rl.WindowShouldClose() {
			v.Update()
			v.Draw()
		}
	}
}
