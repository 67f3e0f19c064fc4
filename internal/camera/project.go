package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport describes the screen the camera projects onto.
type Viewport struct {
	Width, Height int
	// FOV is the vertical field of view in radians.
	FOV  float64
	Near float64
}

// DefaultViewport returns a 70 degree viewport of the given size.
func DefaultViewport(w, h int) Viewport {
	return Viewport{Width: w, Height: h, FOV: mgl64.DegToRad(70), Near: 0.01}
}

// Focal returns the distance in pixels from the eye to the image plane.
func (v Viewport) Focal() float64 {
	return float64(v.Height) / 2 / math.Tan(v.FOV/2)
}

// Project maps a world point to screen coordinates. depth is the distance
// along the viewing direction; ok is false for points behind the near plane.
func (p Pose) Project(world mgl64.Vec3, v Viewport) (sx, sy, depth float64, ok bool) {
	forward, right, up := p.Basis()
	rel := world.Sub(p.Position)
	depth = rel.Dot(forward)
	if depth <= v.Near {
		return 0, 0, depth, false
	}
	f := v.Focal()
	sx = float64(v.Width)/2 + f*rel.Dot(right)/depth
	sy = float64(v.Height)/2 - f*rel.Dot(up)/depth
	return sx, sy, depth, true
}
