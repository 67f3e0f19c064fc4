//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// LayerPainter shows one horizontal layer of the grid as a small top-down
// map.
type LayerPainter struct {
	n     int
	img   *ebiten.Image
	layer []uint8
	buf   []byte
}

// NewLayerPainter allocates a painter for a grid of side n.
func NewLayerPainter(n int) *LayerPainter {
	return &LayerPainter{n: n, img: ebiten.NewImage(n, n), buf: make([]byte, 4*n*n)}
}

// Blit uploads layer y of cells into the painter image and draws it at
// (x, y0) scaled by scale.
func (lp *LayerPainter) Blit(dst *ebiten.Image, cells []uint8, y int, palette []color.RGBA, x, y0 float64, scale int) {
	if len(cells) != lp.n*lp.n*lp.n || y < 0 || y >= lp.n {
		return
	}
	lp.layer = LayerY(lp.layer, cells, lp.n, y)
	fillPaletteRGBA(lp.buf, lp.layer, palette)
	lp.img.WritePixels(lp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(x, y0)
	dst.DrawImage(lp.img, op)
}

// Size returns the side of the underlying image.
func (lp *LayerPainter) Size() int { return lp.n }
