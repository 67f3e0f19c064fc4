// Package camera models a free-flying first-person camera. Orientation is
// kept as two angles and the basis is recomputed from them on every query.
package camera

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// PitchLimit keeps the camera just short of looking straight up or down.
const PitchLimit = math.Pi/2 - 0.01

// WorldUp is the world's vertical axis.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Pose is a camera position plus yaw (rotation in the horizontal plane,
// measured from +Z towards +X) and pitch (elevation above the horizon).
type Pose struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

// Default looks from (-50, 50, 50) back at the world origin.
func Default() Pose {
	return Pose{
		Position: mgl64.Vec3{-50, 50, 50},
		Yaw:      3 * math.Pi / 4,
		Pitch:    -math.Atan(1 / math.Sqrt2),
	}
}

// Forward returns the unit viewing direction.
func (p Pose) Forward() mgl64.Vec3 {
	cp := math.Cos(p.Pitch)
	return mgl64.Vec3{cp * math.Sin(p.Yaw), math.Sin(p.Pitch), cp * math.Cos(p.Yaw)}
}

// Basis returns the orthonormal forward, right and up vectors.
func (p Pose) Basis() (forward, right, up mgl64.Vec3) {
	forward = p.Forward()
	back := forward.Mul(-1)
	up = WorldUp.Sub(back.Mul(back.Dot(WorldUp))).Normalize()
	right = up.Cross(back)
	return forward, right, up
}

// Ray returns the ray through the centre of the view.
func (p Pose) Ray() (origin, dir mgl64.Vec3) {
	return p.Position, p.Forward()
}

// Look turns the camera by a mouse delta in pixels.
func (p *Pose) Look(dx, dy, sensitivity float64) {
	p.Yaw -= sensitivity * dx
	p.Pitch -= sensitivity * dy
	p.Pitch = mgl64.Clamp(p.Pitch, -PitchLimit, PitchLimit)
}

// Movement is the set of movement keys held during a frame.
type Movement struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool
	Fast          bool
}

// Speeds are distances travelled per reference frame of 16.66ms.
type Speeds struct {
	Normal float64
	Fast   float64
}

// DefaultSpeeds returns the stock fly speeds.
func DefaultSpeeds() Speeds { return Speeds{Normal: 0.1, Fast: 0.3} }

const referenceFrame = 16660 * time.Microsecond

// Move flies the camera. Forward and back stay in the horizontal plane,
// strafing follows the right vector and up/down follow the world axis.
func (p *Pose) Move(m Movement, s Speeds, dt time.Duration) {
	_, right, _ := p.Basis()
	flat := mgl64.Vec3{math.Sin(p.Yaw), 0, math.Cos(p.Yaw)}

	var dir mgl64.Vec3
	if m.Forward {
		dir = dir.Add(flat)
	}
	if m.Back {
		dir = dir.Sub(flat)
	}
	if m.Left {
		dir = dir.Sub(right)
	}
	if m.Right {
		dir = dir.Add(right)
	}
	if m.Up {
		dir = dir.Add(WorldUp)
	}
	if m.Down {
		dir = dir.Sub(WorldUp)
	}
	if dir.Len() <= 1e-6 {
		return
	}
	speed := s.Normal
	if m.Fast {
		speed = s.Fast
	}
	scale := speed * float64(dt) / float64(referenceFrame)
	p.Position = p.Position.Add(dir.Normalize().Mul(scale))
}
