package camera

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestDefaultLooksAtOrigin(t *testing.T) {
	p := Default()
	toOrigin := p.Position.Mul(-1).Normalize()
	assert.InDelta(t, 1, p.Forward().Dot(toOrigin), eps)
}

func TestBasisIsOrthonormal(t *testing.T) {
	for _, p := range []Pose{
		Default(),
		{Yaw: 0, Pitch: 0},
		{Yaw: 1.3, Pitch: PitchLimit},
		{Yaw: -2.1, Pitch: -PitchLimit},
	} {
		f, r, u := p.Basis()
		assert.InDelta(t, 1, f.Len(), eps)
		assert.InDelta(t, 1, r.Len(), eps)
		assert.InDelta(t, 1, u.Len(), eps)
		assert.InDelta(t, 0, f.Dot(r), eps)
		assert.InDelta(t, 0, f.Dot(u), eps)
		assert.InDelta(t, 0, r.Dot(u), eps)
		assert.InDelta(t, 0, r.Y(), eps, "right stays horizontal")
	}

	f, r, u := Pose{}.Basis()
	assert.True(t, f.ApproxEqual(mgl64.Vec3{0, 0, 1}))
	assert.True(t, r.ApproxEqual(mgl64.Vec3{-1, 0, 0}))
	assert.True(t, u.ApproxEqual(mgl64.Vec3{0, 1, 0}))
}

func TestLookClampsPitch(t *testing.T) {
	p := Pose{}
	p.Look(0, -1e6, 0.0003)
	assert.Equal(t, PitchLimit, p.Pitch)
	p.Look(0, 1e7, 0.0003)
	assert.Equal(t, -PitchLimit, p.Pitch)

	p = Pose{}
	p.Look(100, 0, 0.01)
	assert.InDelta(t, -1.0, p.Yaw, eps)
}

func TestMoveForwardStaysLevel(t *testing.T) {
	p := Pose{Pitch: -1}
	p.Move(Movement{Forward: true}, DefaultSpeeds(), referenceFrame)
	assert.InDelta(t, 0, p.Position.Y(), eps)
	assert.InDelta(t, 0.1, p.Position.Z(), eps)

	p = Pose{}
	p.Move(Movement{Up: true, Fast: true}, DefaultSpeeds(), 2*referenceFrame)
	assert.InDelta(t, 0.6, p.Position.Y(), eps)

	p = Pose{}
	p.Move(Movement{Forward: true, Back: true}, DefaultSpeeds(), time.Second)
	assert.Equal(t, mgl64.Vec3{}, p.Position)

	p = Pose{}
	p.Move(Movement{Forward: true, Right: true}, DefaultSpeeds(), referenceFrame)
	assert.InDelta(t, 0.1, p.Position.Len(), eps, "diagonal movement is normalised")
}

func TestProject(t *testing.T) {
	p := Pose{}
	v := DefaultViewport(800, 600)

	sx, sy, depth, ok := p.Project(mgl64.Vec3{0, 0, 10}, v)
	require.True(t, ok)
	assert.InDelta(t, 400, sx, eps)
	assert.InDelta(t, 300, sy, eps)
	assert.InDelta(t, 10, depth, eps)

	sx, sy, _, ok = p.Project(mgl64.Vec3{0, 1, 10}, v)
	require.True(t, ok)
	assert.InDelta(t, 400, sx, eps)
	assert.Less(t, sy, 300.0, "points above the camera project upwards")

	sx, _, _, ok = p.Project(mgl64.Vec3{-1, 0, 10}, v)
	require.True(t, ok)
	assert.Greater(t, sx, 400.0, "-X is to the right when looking down +Z")

	_, _, _, ok = p.Project(mgl64.Vec3{0, 0, -1}, v)
	assert.False(t, ok)

	assert.InDelta(t, 300/math.Tan(mgl64.DegToRad(35)), v.Focal(), 1e-6)
}
