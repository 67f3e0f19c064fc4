package automaton

import "voxel-ca/internal/core"

// Reset clears the grid and randomizes the seed region with the provided
// seed. A zero seed uses the configured one.
func (g *Grid) Reset(seed int64) {
	if seed == 0 {
		seed = g.cfg.Seed
	}
	g.Randomize(seed)
}

// Clear zeroes every cell and restarts the generation counter.
func (g *Grid) Clear() {
	g.cur.Clear()
	g.generation = 0
}

// Randomize clears the grid, then makes each cell of the cube of half extent
// cfg.Radius around the centre fully alive with probability cfg.Density.
func (g *Grid) Randomize(seed int64) {
	g.Clear()
	rng := core.NewRNG(seed)
	n := g.cur.N
	lo, hi := n/2-g.cfg.Radius, n/2+g.cfg.Radius
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	alive := g.rule.Alive()
	for x := lo; x < hi; x++ {
		for y := lo; y < hi; y++ {
			for z := lo; z < hi; z++ {
				if rng.Chance(g.cfg.Density) {
					g.SetCell(x, y, z, alive)
				}
			}
		}
	}
}

// SeedPattern clears the grid and places the start-up pattern: two 2x2
// plates facing each other across the centre along z.
func (g *Grid) SeedPattern() {
	g.Clear()
	h := g.cur.N / 2
	alive := g.rule.Alive()
	for _, z := range [2]int{h - 3, h + 2} {
		for _, x := range [2]int{h - 1, h} {
			for _, y := range [2]int{h, h + 1} {
				g.SetCell(x, y, z, alive)
			}
		}
	}
}
