//go:build ebiten

// Command voxelca opens the voxel sandbox window.
package main

import (
	"errors"
	"flag"
	"log"

	"voxel-ca/internal/app"
	"voxel-ca/internal/automaton"
	"voxel-ca/internal/core"
	"voxel-ca/internal/sandbox"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := cfg.ValidRule(); err != nil {
		log.Fatal(err)
	}
	factory, ok := core.Sims()[cfg.PresetName()]
	if !ok {
		log.Fatalf("unknown preset %q", cfg.PresetName())
	}
	grid, ok := factory(cfg.ToMap()).(*automaton.Grid)
	if !ok {
		log.Fatalf("preset %q is not a voxel grid", cfg.PresetName())
	}
	if grid.Size().N != cfg.N {
		log.Fatalf("invalid grid size %d: want an even side of at least %d", cfg.N, automaton.MinSize)
	}

	game := app.New(sandbox.FromGrid(grid), cfg)

	ebiten.SetWindowTitle("voxel-ca: " + grid.Name())
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
