package core

// Size describes the side length of a cubic simulation grid.
type Size struct {
	N int
}

// Cells returns the number of cells in a grid of this size.
func (s Size) Cells() int { return s.N * s.N * s.N }

// Sim defines the minimal contract a 3D cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
