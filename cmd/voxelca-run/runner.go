package main

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"voxel-ca/internal/automaton"
	"voxel-ca/internal/core"
	"voxel-ca/internal/export"
	"voxel-ca/internal/picker"
	"voxel-ca/internal/rule"
)

type options struct {
	preset string
	rule   string
	n      int
	seed   int64
	steps  int
	random bool
	glb    string
}

type result struct {
	preset      string
	rule        string
	generation  int
	population  int
	fingerprint uint64
}

var errUnknownPreset = errors.New("unknown preset")

// build resolves the preset through the sim registry, applying the rule
// override and grid size.
func build(o options) (*automaton.Grid, error) {
	if o.rule != "" {
		if _, err := rule.Parse(o.rule); err != nil {
			return nil, err
		}
	}
	factory, ok := core.Sims()[o.preset]
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownPreset, o.preset)
	}
	cfg := map[string]string{
		"n":    fmt.Sprint(o.n),
		"seed": fmt.Sprint(o.seed),
	}
	if o.rule != "" {
		cfg["rule"] = o.rule
	}
	g, ok := factory(cfg).(*automaton.Grid)
	if !ok {
		return nil, fmt.Errorf("preset %q is not a voxel grid", o.preset)
	}
	if g.Size().N != o.n {
		return nil, fmt.Errorf("invalid grid size %d: want an even side of at least %d", o.n, automaton.MinSize)
	}
	if o.random {
		g.Reset(o.seed)
	}
	return g, nil
}

// run steps one grid and logs every generation.
func run(logger *slog.Logger, o options) (result, error) {
	g, err := build(o)
	if err != nil {
		return result{}, err
	}
	logger.Info("start", "preset", o.preset, "rule", g.Rule().String(), "n", g.Size().N, "population", g.Population())
	for i := 0; i < o.steps; i++ {
		g.Step()
		logger.Info("step", "generation", g.Generation(), "population", g.Population(), "fingerprint", fmt.Sprintf("%016x", g.Fingerprint()))
	}
	if o.glb != "" {
		if err := export.SaveGLB(o.glb, g, picker.Centered(g.Size().N)); err != nil {
			return result{}, err
		}
		logger.Info("exported", "path", o.glb, "cells", g.Population())
	}
	return summarize(o.preset, g), nil
}

func summarize(preset string, g *automaton.Grid) result {
	return result{
		preset:      preset,
		rule:        g.Rule().String(),
		generation:  g.Generation(),
		population:  g.Population(),
		fingerprint: g.Fingerprint(),
	}
}

// sweep runs every registered preset for o.steps on a pool of workers and
// returns the results sorted by preset name.
func sweep(o options, workers int) ([]result, error) {
	if workers < 1 {
		workers = 1
	}
	names := rule.Presets()

	type outcome struct {
		res result
		err error
	}
	jobs := make(chan string)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				po := o
				po.preset, po.rule = name, ""
				g, err := build(po)
				if err != nil {
					results <- outcome{err: err}
					continue
				}
				for s := 0; s < o.steps; s++ {
					g.Step()
				}
				results <- outcome{res: summarize(name, g)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, name := range names {
			jobs <- name
		}
		close(jobs)
	}()

	var all []result
	var errs []error
	for out := range results {
		if out.err != nil {
			errs = append(errs, out.err)
			continue
		}
		all = append(all, out.res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].preset < all[j].preset })
	return all, errors.Join(errs...)
}
