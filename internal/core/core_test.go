package core

import (
	"testing"
	"time"
)

func TestVoxelGridIndexLayout(t *testing.T) {
	g := NewVoxelGrid(6)
	if got := g.Index(1, 2, 3); got != 1*36+2*6+3 {
		t.Fatalf("Index(1,2,3) = %d", got)
	}
	for i := range g.Cells() {
		x, y, z := g.Coords(i)
		if g.Index(x, y, z) != i {
			t.Fatalf("Coords(%d) = (%d,%d,%d) does not round trip", i, x, y, z)
		}
	}
}

func TestVoxelGridWrap(t *testing.T) {
	g := NewVoxelGrid(6)
	x, y, z := g.Wrap(-1, 6, 13)
	if x != 5 || y != 0 || z != 1 {
		t.Fatalf("Wrap(-1,6,13) = (%d,%d,%d)", x, y, z)
	}
}

func TestVoxelGridMustIndexPanics(t *testing.T) {
	g := NewVoxelGrid(6)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range coordinates")
		}
	}()
	g.MustIndex(0, 6, 0)
}

func TestVoxelGridClear(t *testing.T) {
	g := NewVoxelGrid(6)
	g.Cells()[g.Index(5, 5, 5)] = 3
	g.Clear()
	for i, c := range g.Cells() {
		if c != 0 {
			t.Fatalf("cell %d = %d after Clear", i, c)
		}
	}
}

func TestFixedStepPacesSteps(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(4)
	fs.now = func() time.Time { return clock }

	if fs.ShouldStep() {
		t.Fatal("first call must not step")
	}
	clock = clock.Add(200 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("stepped before 250ms elapsed")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step after 260ms")
	}
	clock = clock.Add(10 * time.Second)
	if !fs.ShouldStep() {
		t.Fatal("expected a step after a long pause")
	}
	if fs.ShouldStep() {
		t.Fatal("backlog must be discarded")
	}
	if fs.Rate() != 4 {
		t.Fatalf("Rate() = %d", fs.Rate())
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Rule", Params: []Parameter{{Key: "rule", Value: "4/4/5", Type: ParamTypeText}}},
	}}
	p, ok := snap.Lookup("rule")
	if !ok || p.Value != "4/4/5" {
		t.Fatalf("Lookup(rule) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) reported a hit")
	}
	ctrl := ParameterControl{Min: 1, Max: 10, HasMin: true, HasMax: true}
	if ctrl.Clamp(12) != 10 || ctrl.Clamp(-3) != 1 || ctrl.Clamp(5) != 5 {
		t.Fatal("Clamp did not bound the value")
	}
}
