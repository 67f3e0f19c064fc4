// Command voxelca-run steps a voxel automaton without a window and logs the
// population of every generation.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"voxel-ca/internal/automaton"
)

func main() {
	defaults := automaton.DefaultConfig()
	o := options{}
	flag.StringVar(&o.preset, "preset", "445", "named rule preset")
	flag.StringVar(&o.rule, "rule", "", "rule text S/B/states, overrides -preset")
	flag.IntVar(&o.n, "n", defaults.N, "grid side length (even, at least 6)")
	flag.Int64Var(&o.seed, "seed", defaults.Seed, "seed for -random")
	flag.IntVar(&o.steps, "steps", 20, "generations to run")
	flag.BoolVar(&o.random, "random", false, "start from a random seed region instead of the fixed pattern")
	flag.StringVar(&o.glb, "glb", "", "write the final grid as binary glTF to this path")
	doSweep := flag.Bool("sweep", false, "run every preset and print a summary")
	workers := flag.Int("workers", runtime.NumCPU(), "worker goroutines for -sweep")
	verbose := flag.Bool("v", false, "log debug events")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *doSweep {
		start := time.Now()
		all, err := sweep(o, *workers)
		for _, res := range all {
			fmt.Printf("%-8s %-24s gen=%d population=%d hash=%016x\n", res.preset, res.rule, res.generation, res.population, res.fingerprint)
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\n%d presets in %s\n", len(all), time.Since(start).Round(time.Millisecond))
		return
	}

	res, err := run(logger, o)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s gen=%d population=%d hash=%016x\n", res.rule, res.generation, res.population, res.fingerprint)
}
