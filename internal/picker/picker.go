// Package picker finds the voxel face or ground cell a ray points at.
package picker

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxel-ca/internal/core"
)

// Volume is the read-only occupancy view the picker needs.
type Volume interface {
	Size() core.Size
	Cell(x, y, z int) uint8
}

// Ray is a half line; Dir need not be normalised, distances are in units of
// Dir.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) mgl64.Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// Frame places the grid in world space: cell (x, y, z) spans
// [x+Offset[0], x+Offset[0]+1] on X and likewise for Y and Z. The ground is
// the world plane y=0.
type Frame struct {
	N      int
	Offset [3]int
}

// Centered returns the frame that puts the grid's centre at the world origin.
func Centered(n int) Frame {
	h := -n / 2
	return Frame{N: n, Offset: [3]int{h, h, h}}
}

// Min returns the world-space minimum corner of a cell.
func (f Frame) Min(x, y, z int) mgl64.Vec3 {
	return mgl64.Vec3{float64(x + f.Offset[0]), float64(y + f.Offset[1]), float64(z + f.Offset[2])}
}

// InBounds reports whether (x, y, z) addresses a cell.
func (f Frame) InBounds(x, y, z int) bool {
	return x >= 0 && x < f.N && y >= 0 && y < f.N && z >= 0 && z < f.N
}

// Kind tells which of the pick outcomes a Hit holds.
type Kind uint8

const (
	None Kind = iota
	Cube
	Ground
)

func (k Kind) String() string {
	switch k {
	case Cube:
		return "cube"
	case Ground:
		return "ground"
	default:
		return "none"
	}
}

// Face identifies one side of a cube: Axis is 0, 1 or 2 for X, Y, Z and Sign
// is -1 for the low side and +1 for the high side.
type Face struct {
	Axis int
	Sign int
}

// Normal returns the face's outward unit normal as grid offsets.
func (f Face) Normal() [3]int {
	var n [3]int
	n[f.Axis] = f.Sign
	return n
}

// Hit is the result of a pick. For Cube, Cell is the hit cube and Face the
// face struck. For Ground, Cell is the grid cell resting on the ground plane
// on the camera's side.
type Hit struct {
	Kind     Kind
	Cell     [3]int
	Face     Face
	Distance float64
}

// Adjacent returns the cell across the hit face.
func (h Hit) Adjacent() [3]int {
	n := h.Face.Normal()
	return [3]int{h.Cell[0] + n[0], h.Cell[1] + n[1], h.Cell[2] + n[2]}
}

// Pick casts ray against every occupied cell of vol and against the ground
// plane. The ground distance seeds the running minimum and a cube face only
// replaces it when strictly closer, so exact ties go to the ground.
// Parallel axes yield infinite or NaN distances, which never pass the
// comparisons.
func Pick(ray Ray, vol Volume, frame Frame) Hit {
	best := groundHit(ray, frame)
	tmin := math.Inf(1)
	if best.Kind == Ground {
		tmin = best.Distance
	}

	n := vol.Size().N
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				if vol.Cell(x, y, z) == 0 {
					continue
				}
				lo := frame.Min(x, y, z)
				for axis := 0; axis < 3; axis++ {
					for _, sign := range [2]int{-1, 1} {
						plane := lo[axis]
						if sign > 0 {
							plane++
						}
						t := (plane - ray.Origin[axis]) / ray.Dir[axis]
						if !(t > 0 && t < tmin) {
							continue
						}
						if !onFace(ray.At(t), lo, axis) {
							continue
						}
						tmin = t
						best = Hit{Kind: Cube, Cell: [3]int{x, y, z}, Face: Face{Axis: axis, Sign: sign}, Distance: t}
					}
				}
			}
		}
	}
	return best
}

func onFace(p, lo mgl64.Vec3, axis int) bool {
	for k := 0; k < 3; k++ {
		if k == axis {
			continue
		}
		if !(lo[k] <= p[k] && p[k] <= lo[k]+1) {
			return false
		}
	}
	return true
}

// groundHit intersects the ray with the plane y=0 inside the grid's world
// extent. The returned cell sits on top of the plane when the ray starts
// above it and below the plane otherwise.
func groundHit(ray Ray, frame Frame) Hit {
	t := -ray.Origin.Y() / ray.Dir.Y()
	if !(t > 0) || math.IsInf(t, 0) {
		return Hit{}
	}
	p := ray.At(t)
	lo := frame.Min(0, 0, 0)
	size := float64(frame.N)
	if !(lo.X() <= p.X() && p.X() <= lo.X()+size && lo.Z() <= p.Z() && p.Z() <= lo.Z()+size) {
		return Hit{}
	}
	layer := -frame.Offset[1]
	if ray.Origin.Y() <= 0 {
		layer--
	}
	return Hit{
		Kind: Ground,
		Cell: [3]int{
			int(math.Floor(p.X())) - frame.Offset[0],
			layer,
			int(math.Floor(p.Z())) - frame.Offset[2],
		},
		Distance: t,
	}
}
