package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"voxel-ca/internal/automaton"
	"voxel-ca/internal/picker"
)

// cubeFaces lists the corners of each unit-cube face, counter-clockwise when
// seen from outside, keyed by axis and sign.
var cubeFaces = [6]struct {
	face    picker.Face
	corners [4][3]float64
}{
	{picker.Face{Axis: 0, Sign: 1}, [4][3]float64{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	{picker.Face{Axis: 0, Sign: -1}, [4][3]float64{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{picker.Face{Axis: 1, Sign: 1}, [4][3]float64{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	{picker.Face{Axis: 1, Sign: -1}, [4][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{picker.Face{Axis: 2, Sign: 1}, [4][3]float64{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{picker.Face{Axis: 2, Sign: -1}, [4][3]float64{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
}

// Quad is one exposed cube face in world space.
type Quad struct {
	Corners [4]mgl64.Vec3
	Normal  [3]int
	Center  mgl64.Vec3
	Color   color.RGBA
}

// Faces returns the faces of occupied cells that are not covered by another
// occupied cell. Faces on the grid boundary are always exposed.
func Faces(cells []automaton.Cell, states int, frame picker.Frame) []Quad {
	occupied := make(map[[3]int]struct{}, len(cells))
	for _, c := range cells {
		occupied[[3]int{c.X, c.Y, c.Z}] = struct{}{}
	}
	var quads []Quad
	for _, c := range cells {
		lo := frame.Min(c.X, c.Y, c.Z)
		for _, f := range cubeFaces {
			n := f.face.Normal()
			if _, covered := occupied[[3]int{c.X + n[0], c.Y + n[1], c.Z + n[2]}]; covered {
				continue
			}
			q := Quad{Normal: n, Color: FaceColor(c.State, states, n)}
			for i, corner := range f.corners {
				q.Corners[i] = lo.Add(mgl64.Vec3(corner))
				q.Center = q.Center.Add(q.Corners[i])
			}
			q.Center = q.Center.Mul(0.25)
			quads = append(quads, q)
		}
	}
	return quads
}

// FacesCamera reports whether the quad's front side is visible from eye.
func (q Quad) FacesCamera(eye mgl64.Vec3) bool {
	n := mgl64.Vec3{float64(q.Normal[0]), float64(q.Normal[1]), float64(q.Normal[2])}
	return n.Dot(eye.Sub(q.Center)) > 0
}
