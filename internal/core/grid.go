package core

import "fmt"

// VoxelGrid stores a cubic grid of byte-sized cell values. Cell (x, y, z)
// lives at x*N*N + y*N + z.
type VoxelGrid struct {
	N    int
	data []uint8
}

// NewVoxelGrid allocates a zeroed grid with side n.
func NewVoxelGrid(n int) *VoxelGrid {
	if n <= 0 {
		n = 1
	}
	return &VoxelGrid{N: n, data: make([]uint8, n*n*n)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *VoxelGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y, z).
func (g *VoxelGrid) Index(x, y, z int) int { return (x*g.N+y)*g.N + z }

// Coords is the inverse of Index.
func (g *VoxelGrid) Coords(i int) (int, int, int) {
	z := i % g.N
	i /= g.N
	return i / g.N, i % g.N, z
}

// InBounds reports whether (x, y, z) addresses a cell.
func (g *VoxelGrid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.N && y >= 0 && y < g.N && z >= 0 && z < g.N
}

// MustIndex is Index with a bounds check that panics on violation.
func (g *VoxelGrid) MustIndex(x, y, z int) int {
	if !g.InBounds(x, y, z) {
		panic(fmt.Sprintf("core: cell (%d,%d,%d) outside grid of side %d", x, y, z, g.N))
	}
	return g.Index(x, y, z)
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *VoxelGrid) Wrap(x, y, z int) (int, int, int) {
	x = (x%g.N + g.N) % g.N
	y = (y%g.N + g.N) % g.N
	z = (z%g.N + g.N) % g.N
	return x, y, z
}

// Clear fills the grid with zeros.
func (g *VoxelGrid) Clear() {
	clear(g.data)
}
