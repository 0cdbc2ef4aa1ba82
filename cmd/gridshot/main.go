// Grid snapshot tool - solves the configured run and renders the final
// board to a PNG file for inspection.
//
// Usage: go run ./cmd/gridshot -config config.yaml -out board.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hexastar/camera"
	"github.com/pthm-cable/hexastar/config"
	"github.com/pthm-cable/hexastar/headless"
	"github.com/pthm-cable/hexastar/viewer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "board.png", "Output PNG path")
	showF := flag.Bool("f", false, "Label open and closed cells with f")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	res, err := headless.Solve(cfg, headless.Options{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Solve failed: %v\n", err)
		os.Exit(1)
	}

	board := cfg.Derived.Grid
	margin := float32(board.Side)
	width := int32(board.Width + 2*board.Side)
	height := int32(board.Height + 2*board.Side)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Grid Snapshot")
	defer rl.CloseWindow()

	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	cam := camera.Fit(float32(width), float32(height), float32(board.Width), float32(board.Height), margin)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	viewer.DrawBoard(res.Run, cam, *showF)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Board rendered to: %s (%dx%d, %s after %d steps)\n",
			*outPath, width, height, res.Run.State(), res.Run.Steps())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
