//go:build ebiten

package render

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"voxel-ca/internal/automaton"
	"voxel-ca/internal/camera"
	"voxel-ca/internal/picker"
)

// maxBatchQuads keeps each DrawTriangles call under the uint16 index limit.
const maxBatchQuads = 16000

// VoxelPainter draws occupied cells as flat-shaded cubes, sorted back to
// front. Face geometry is rebuilt only when the grid revision changes.
type VoxelPainter struct {
	white *ebiten.Image

	revision uint64
	built    bool
	quads    []Quad

	visible  []projectedQuad
	vertices []ebiten.Vertex
	indices  []uint16
}

type projectedQuad struct {
	pts   [4][2]float32
	depth float64
	color color.RGBA
}

// NewVoxelPainter allocates the painter's source texture.
func NewVoxelPainter() *VoxelPainter {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &VoxelPainter{white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)}
}

// Invalidate forces the next Draw to rebuild geometry.
func (p *VoxelPainter) Invalidate() { p.built = false }

// Draw renders cells seen from pose.
func (p *VoxelPainter) Draw(dst *ebiten.Image, cells []automaton.Cell, states int, frame picker.Frame, revision uint64, pose camera.Pose) {
	if !p.built || revision != p.revision {
		p.quads = Faces(cells, states, frame)
		p.revision = revision
		p.built = true
	}
	b := dst.Bounds()
	view := camera.DefaultViewport(b.Dx(), b.Dy())

	drawGround(dst, frame, pose, view)

	p.visible = p.visible[:0]
	for _, q := range p.quads {
		if !q.FacesCamera(pose.Position) {
			continue
		}
		pq := projectedQuad{color: q.Color}
		ok := true
		for i, c := range q.Corners {
			sx, sy, _, inFront := pose.Project(c, view)
			if !inFront {
				ok = false
				break
			}
			pq.pts[i] = [2]float32{float32(sx), float32(sy)}
		}
		if !ok {
			continue
		}
		pq.depth = q.Center.Sub(pose.Position).Len()
		p.visible = append(p.visible, pq)
	}
	sort.Slice(p.visible, func(i, j int) bool { return p.visible[i].depth > p.visible[j].depth })

	for start := 0; start < len(p.visible); start += maxBatchQuads {
		end := start + maxBatchQuads
		if end > len(p.visible) {
			end = len(p.visible)
		}
		p.drawBatch(dst, p.visible[start:end])
	}

	drawCrosshair(dst)
}

func (p *VoxelPainter) drawBatch(dst *ebiten.Image, batch []projectedQuad) {
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]
	for i, q := range batch {
		r := float32(q.color.R) / 255
		g := float32(q.color.G) / 255
		bl := float32(q.color.B) / 255
		for _, pt := range q.pts {
			p.vertices = append(p.vertices, ebiten.Vertex{
				DstX: pt[0], DstY: pt[1],
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: g, ColorB: bl, ColorA: 1,
			})
		}
		base := uint16(i * 4)
		p.indices = append(p.indices, base, base+1, base+2, base, base+2, base+3)
	}
	dst.DrawTriangles(p.vertices, p.indices, p.white, &ebiten.DrawTrianglesOptions{})
}

var groundColor = color.RGBA{R: 70, G: 70, B: 80, A: 255}

// drawGround outlines the grid's footprint on the plane y=0.
func drawGround(dst *ebiten.Image, frame picker.Frame, pose camera.Pose, view camera.Viewport) {
	lo := frame.Min(0, 0, 0)
	size := float64(frame.N)
	step := 1
	if frame.N > 32 {
		step = frame.N / 16
	}
	for i := 0; i <= frame.N; i += step {
		o := float64(i)
		line(dst, pose, view, mgl64.Vec3{lo.X() + o, 0, lo.Z()}, mgl64.Vec3{lo.X() + o, 0, lo.Z() + size})
		line(dst, pose, view, mgl64.Vec3{lo.X(), 0, lo.Z() + o}, mgl64.Vec3{lo.X() + size, 0, lo.Z() + o})
	}
}

func line(dst *ebiten.Image, pose camera.Pose, view camera.Viewport, a, b mgl64.Vec3) {
	ax, ay, _, okA := pose.Project(a, view)
	bx, by, _, okB := pose.Project(b, view)
	if !okA || !okB {
		return
	}
	vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), 1, groundColor, false)
}

func drawCrosshair(dst *ebiten.Image) {
	b := dst.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2
	vector.StrokeLine(dst, cx-6, cy, cx+6, cy, 1, color.White, false)
	vector.StrokeLine(dst, cx, cy-6, cx, cy+6, 1, color.White, false)
}
