package automaton

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxel-ca/internal/core"
	"voxel-ca/internal/rule"
)

func newGrid(t *testing.T, n int, text string) *Grid {
	t.Helper()
	g, err := New(n, rule.MustParse(text))
	require.NoError(t, err)
	return g
}

func TestNewRejectsBadSizes(t *testing.T) {
	for _, n := range []int{0, 4, 5, 7, 49} {
		_, err := New(n, rule.MustParse(rule.Default))
		assert.Error(t, err, "size %d", n)
	}
	_, err := New(6, rule.Rule{})
	assert.ErrorIs(t, err, rule.ErrRange)

	g, err := New(6, rule.MustParse(rule.Default))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Population())
	assert.Equal(t, core.Size{N: 6}, g.Size())
}

func TestBlockInSliceIsStill(t *testing.T) {
	g := newGrid(t, 8, "2,3/3/2")
	block := [][3]int{{3, 3, 4}, {4, 3, 4}, {3, 4, 4}, {4, 4, 4}}
	for _, c := range block {
		g.SetCell(c[0], c[1], c[2], 1)
	}

	g.Step()

	for _, c := range block {
		if g.Cell(c[0], c[1], c[2]) != 1 {
			t.Fatalf("block cell %v died", c)
		}
	}
	if g.Population() != len(block) {
		t.Fatalf("population = %d, expected %d", g.Population(), len(block))
	}
}

func TestAgingIgnoresNeighbours(t *testing.T) {
	g := newGrid(t, 8, "//5")
	g.SetCell(2, 2, 2, 4)

	for _, want := range []uint8{3, 2, 1, 0} {
		g.Step()
		if got := g.Cell(2, 2, 2); got != want {
			t.Fatalf("generation %d: state %d, expected %d", g.Generation(), got, want)
		}
	}

	// A decaying cell surrounded by fully-alive, surviving neighbours still
	// ages by one per step.
	g = newGrid(t, 8, "0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20,21,22,23,24,25,26//5")
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				g.SetCell(4+dx, 4+dy, 4+dz, 4)
			}
		}
	}
	g.SetCell(4, 4, 4, 2)
	g.Step()
	assert.Equal(t, uint8(1), g.Cell(4, 4, 4))
	assert.Equal(t, uint8(4), g.Cell(3, 3, 3))
}

func TestDeathWithTwoStates(t *testing.T) {
	g := newGrid(t, 6, "//2")
	g.SetCell(1, 1, 1, 1)
	g.Step()
	assert.Equal(t, uint8(0), g.Cell(1, 1, 1))

	single := rule.MustParse("//1")
	assert.Equal(t, uint8(0), nextState(single, 0, 0))
	assert.Equal(t, uint8(0), nextState(single, 0, 26))
}

func TestToroidalWrap(t *testing.T) {
	g := newGrid(t, 6, "1//2")
	g.SetCell(0, 0, 0, 1)
	g.SetCell(5, 0, 0, 1)
	g.Step()
	assert.Equal(t, uint8(1), g.Cell(0, 0, 0), "cell at origin must see its wrapped neighbour")
	assert.Equal(t, uint8(1), g.Cell(5, 0, 0))

	g = newGrid(t, 6, "1//2")
	g.SetCell(0, 0, 0, 1)
	g.SetCell(5, 5, 5, 1)
	g.Step()
	assert.Equal(t, 2, g.Population(), "opposite corners are diagonal neighbours on a torus")

	g = newGrid(t, 6, "/1/2")
	g.SetCell(0, 0, 0, 1)
	g.Step()
	assert.Equal(t, 26, g.Population(), "births wrap across every face of the corner cell")
	for _, c := range [][3]int{{5, 5, 5}, {5, 0, 1}, {0, 5, 0}, {1, 1, 5}} {
		assert.Equal(t, uint8(1), g.Cell(c[0], c[1], c[2]), "cell %v", c)
	}
	assert.Equal(t, uint8(0), g.Cell(0, 0, 0))
	assert.Equal(t, uint8(0), g.Cell(2, 0, 0))
}

func TestStepIsSynchronous(t *testing.T) {
	g := newGrid(t, 8, "/1/2")
	g.SetCell(4, 4, 4, 1)
	g.Step()
	assert.Equal(t, 26, g.Population())
	assert.Equal(t, uint8(0), g.Cell(4, 4, 4))
	assert.Equal(t, uint8(1), g.Cell(3, 5, 4))
	assert.Equal(t, uint8(0), g.Cell(2, 4, 4))
}

func TestStepDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 12
	cfg.Radius = 4
	cfg.Density = 0.4
	a, err := NewWithConfig(cfg)
	require.NoError(t, err)
	a.Randomize(7)

	b, err := NewWithConfig(cfg)
	require.NoError(t, err)
	copy(b.Cells(), a.Cells())

	for i := 0; i < 5; i++ {
		a.Step()
		b.Step()
		if diff := cmp.Diff(a.Cells(), b.Cells()); diff != "" {
			t.Fatalf("generation %d diverged:\n%s", i+1, diff)
		}
		require.Equal(t, a.Fingerprint(), b.Fingerprint())
	}
	assert.Equal(t, 5, a.Generation())
}

func TestSetRuleClampsOccupiedCells(t *testing.T) {
	g := newGrid(t, 6, "4/4/5")
	g.SetCell(1, 1, 1, 4)
	g.SetCell(2, 2, 2, 2)

	require.NoError(t, g.SetRule(rule.MustParse("4/4/3")))
	assert.Equal(t, uint8(2), g.Cell(1, 1, 1))
	assert.Equal(t, uint8(2), g.Cell(2, 2, 2))
	assert.Equal(t, uint8(0), g.Cell(3, 3, 3))

	require.NoError(t, g.SetRule(rule.MustParse("4/4/10")))
	assert.Equal(t, uint8(9), g.Cell(1, 1, 1))

	assert.Error(t, g.SetRule(rule.Rule{}))
	assert.Equal(t, "4/4/10", g.Rule().String())
}

func TestSetCellPreconditions(t *testing.T) {
	g := newGrid(t, 6, "4/4/5")
	assert.Panics(t, func() { g.SetCell(6, 0, 0, 1) })
	assert.Panics(t, func() { g.SetCell(0, -1, 0, 1) })
	assert.Panics(t, func() { g.SetCell(0, 0, 0, 5) })
	assert.Panics(t, func() { g.Cell(0, 0, 6) })
	assert.NotPanics(t, func() { g.SetCell(5, 5, 5, 4) })
	assert.Equal(t, 1, g.Population())
}

func TestOccupiedCells(t *testing.T) {
	g := newGrid(t, 6, "4/4/5")
	g.SetCell(5, 0, 1, 2)
	g.SetCell(0, 3, 2, 4)

	want := []Cell{{X: 0, Y: 3, Z: 2, State: 4}, {X: 5, Y: 0, Z: 1, State: 2}}
	if diff := cmp.Diff(want, g.OccupiedCells()); diff != "" {
		t.Fatalf("OccupiedCells mismatch (-want +got):\n%s", diff)
	}
}

func TestSeedPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 6
	g, err := NewWithConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 8, g.Population())
	for _, c := range g.OccupiedCells() {
		assert.Equal(t, uint8(4), c.State)
		assert.Contains(t, []int{2, 3}, c.X)
		assert.Contains(t, []int{3, 4}, c.Y)
		assert.Contains(t, []int{0, 5}, c.Z)
	}
}

func TestRandomizeBoundedAndDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 16
	cfg.Density = 0.5
	g, err := NewWithConfig(cfg)
	require.NoError(t, err)
	g.Step()

	g.Randomize(99)
	assert.Equal(t, 0, g.Generation())
	first := slices.Clone(g.Cells())
	require.NotZero(t, g.Population())
	for _, c := range g.OccupiedCells() {
		for _, v := range []int{c.X, c.Y, c.Z} {
			if v < 5 || v >= 11 {
				t.Fatalf("cell %+v outside the seed region", c)
			}
		}
	}
	g.Randomize(99)
	assert.Equal(t, first, g.Cells())

	g.Reset(0)
	fromConfig := slices.Clone(g.Cells())
	g.Randomize(cfg.Seed)
	assert.Equal(t, fromConfig, g.Cells())

	g.Clear()
	assert.Equal(t, 0, g.Population())
}

func TestRandomizeRadiusClampedToGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 6
	cfg.Radius = 10
	cfg.Density = 1
	g, err := NewWithConfig(cfg)
	require.NoError(t, err)
	assert.NotPanics(t, func() { g.Randomize(1) })
	assert.Equal(t, 216, g.Population())
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"n": "7", "rule": "04/4/5", "density": "2", "radius": "5", "seed": "9"})
	assert.Equal(t, 50, c.N)
	assert.Equal(t, rule.Default, c.Rule)
	assert.Equal(t, 0.2, c.Density)
	assert.Equal(t, 5, c.Radius)
	assert.Equal(t, int64(9), c.Seed)

	c = FromMap(map[string]string{"n": "10", "rule": "/2/3"})
	assert.Equal(t, 10, c.N)
	assert.Equal(t, "/2/3", c.Rule)
}

func TestRegisteredPresets(t *testing.T) {
	factory, ok := core.Sims()["brain"]
	require.True(t, ok)
	sim := factory(map[string]string{"n": "10"})
	g := sim.(*Grid)
	assert.Equal(t, "brain", g.Name())
	assert.Equal(t, "/2/3", g.Rule().String())
	assert.Equal(t, core.Size{N: 10}, g.Size())

	sim = core.Sims()["brain"](map[string]string{"rule": "2,3/3/2"})
	assert.Equal(t, "2,3/3/2", sim.(*Grid).Rule().String())

	sim = core.Sims()["445"](nil)
	assert.Equal(t, 8, sim.(*Grid).Population())
}

func TestParameterSetters(t *testing.T) {
	g := newGrid(t, 10, rule.Default)
	assert.True(t, g.SetIntParameter("radius", 5))
	assert.False(t, g.SetIntParameter("radius", 6))
	assert.False(t, g.SetIntParameter("unknown", 1))
	assert.True(t, g.SetFloatParameter("density", 0.75))
	assert.False(t, g.SetFloatParameter("density", 1.5))

	snap := g.Parameters()
	p, ok := snap.Lookup("density")
	require.True(t, ok)
	assert.Equal(t, "0.75", p.Value)
	p, ok = snap.Lookup("rule")
	require.True(t, ok)
	assert.Equal(t, rule.Default, p.Value)
	assert.Len(t, g.ParameterControls(), 2)
}
