// Package automaton implements a multi-state Life-like cellular automaton on
// a cubic toroidal grid.
package automaton

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"voxel-ca/internal/core"
	"voxel-ca/internal/rule"
)

// MinSize is the smallest supported grid side; the default seed pattern
// reaches three cells below the centre.
const MinSize = 6

// Cell is one occupied voxel as reported to renderers.
type Cell struct {
	X, Y, Z int
	State   uint8
}

// Grid owns two equally sized state buffers. Step writes the next generation
// into the spare buffer and swaps them.
type Grid struct {
	name string
	cfg  Config
	rule rule.Rule

	cur *core.VoxelGrid
	nxt *core.VoxelGrid

	generation int
}

// New returns an empty grid of side n governed by r.
func New(n int, r rule.Rule) (*Grid, error) {
	if !validSize(n) {
		return nil, fmt.Errorf("automaton: grid size %d must be even and at least %d", n, MinSize)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("automaton: %w", err)
	}
	cfg := DefaultConfig()
	cfg.N = n
	cfg.Rule = r.String()
	return &Grid{
		name: "voxel",
		cfg:  cfg,
		rule: r,
		cur:  core.NewVoxelGrid(n),
		nxt:  core.NewVoxelGrid(n),
	}, nil
}

// NewWithConfig builds a grid from cfg and seeds it with the default pattern.
func NewWithConfig(cfg Config) (*Grid, error) {
	r, err := rule.Parse(cfg.Rule)
	if err != nil {
		return nil, fmt.Errorf("automaton: %w", err)
	}
	g, err := New(cfg.N, r)
	if err != nil {
		return nil, err
	}
	g.cfg = cfg
	g.SeedPattern()
	return g, nil
}

// Name returns the simulation identifier.
func (g *Grid) Name() string { return g.name }

// Size reports the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{N: g.cur.N} }

// Cells exposes the current state buffer in x*N*N + y*N + z order.
func (g *Grid) Cells() []uint8 { return g.cur.Cells() }

// Rule returns the active rule.
func (g *Grid) Rule() rule.Rule { return g.rule }

// Generation counts steps since the last seed or clear.
func (g *Grid) Generation() int { return g.generation }

// InBounds reports whether (x, y, z) addresses a cell.
func (g *Grid) InBounds(x, y, z int) bool { return g.cur.InBounds(x, y, z) }

// Cell returns the state at (x, y, z). It panics outside the grid.
func (g *Grid) Cell(x, y, z int) uint8 {
	return g.cur.Cells()[g.cur.MustIndex(x, y, z)]
}

// SetCell writes a single cell. Coordinates outside the grid or a state not
// below the rule's state count are programming errors and panic.
func (g *Grid) SetCell(x, y, z int, state uint8) {
	if int(state) >= g.rule.States() {
		panic(fmt.Sprintf("automaton: state %d not below %d states", state, g.rule.States()))
	}
	g.cur.Cells()[g.cur.MustIndex(x, y, z)] = state
}

// SetRule installs r. Every occupied cell is set to the new fully-alive
// state, so live structures survive a change of state count.
func (g *Grid) SetRule(r rule.Rule) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("automaton: %w", err)
	}
	g.rule = r
	g.cfg.Rule = r.String()
	alive := r.Alive()
	cells := g.cur.Cells()
	for i, c := range cells {
		if c > 0 {
			cells[i] = alive
		}
	}
	return nil
}

// OccupiedCells lists every cell with a non-zero state in index order.
func (g *Grid) OccupiedCells() []Cell {
	var out []Cell
	for i, c := range g.cur.Cells() {
		if c == 0 {
			continue
		}
		x, y, z := g.cur.Coords(i)
		out = append(out, Cell{X: x, Y: y, Z: z, State: c})
	}
	return out
}

// Population counts cells with a non-zero state.
func (g *Grid) Population() int {
	total := 0
	for _, c := range g.cur.Cells() {
		if c != 0 {
			total++
		}
	}
	return total
}

// Fingerprint hashes the current state buffer.
func (g *Grid) Fingerprint() uint64 { return xxhash.Sum64(g.cur.Cells()) }

// Step advances the automaton by one synchronous generation. Only fully-alive
// neighbours are counted; decaying cells age by one regardless of
// neighbours.
func (g *Grid) Step() {
	n := g.cur.N
	alive := g.rule.Alive()
	cur, nxt := g.cur.Cells(), g.nxt.Cells()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				neighbors := 0
				for dx := -1; dx <= 1; dx++ {
					for dy := -1; dy <= 1; dy++ {
						for dz := -1; dz <= 1; dz++ {
							if dx == 0 && dy == 0 && dz == 0 {
								continue
							}
							nx, ny, nz := g.cur.Wrap(x+dx, y+dy, z+dz)
							if cur[g.cur.Index(nx, ny, nz)] == alive {
								neighbors++
							}
						}
					}
				}
				idx := g.cur.Index(x, y, z)
				nxt[idx] = nextState(g.rule, cur[idx], neighbors)
			}
		}
	}
	g.cur, g.nxt = g.nxt, g.cur
	g.generation++
}

func nextState(r rule.Rule, state uint8, neighbors int) uint8 {
	alive := r.Alive()
	switch {
	case state == alive:
		if r.Survives(neighbors) || alive == 0 {
			return alive
		}
		return alive - 1
	case state > 0:
		return state - 1
	case r.Born(neighbors):
		return alive
	default:
		return 0
	}
}

func init() {
	for _, name := range rule.Presets() {
		text, _ := rule.Preset(name)
		core.Register(name, func(cfg map[string]string) core.Sim {
			c := FromMap(cfg)
			if v, ok := cfg["rule"]; !ok || v != c.Rule {
				c.Rule = text
			}
			g, err := NewWithConfig(c)
			if err != nil {
				g, _ = NewWithConfig(DefaultConfig())
			}
			g.name = name
			return g
		})
	}
}
