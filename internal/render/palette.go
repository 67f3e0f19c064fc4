// Package render turns grid contents into coloured geometry. The geometry
// and colour code is pure; drawing with ebiten lives behind the ebiten build
// tag.
package render

import (
	"image/color"
	"math"
)

// lightDir is the un-normalised light direction used for face shading.
var lightDir = [3]float64{0.3, 0.5, 1}

// StateRed maps a state to a red intensity in [0,1]: 1 for fully alive,
// easing quadratically towards 0 as the cell decays.
func StateRed(state uint8, states int) float64 {
	if states <= 1 {
		return 1
	}
	d := 1 - float64(state)/float64(states-1)
	return math.Max(0, math.Min(1, 1-d*d))
}

// Shade returns the brightness factor for a face with the given normal.
func Shade(normal [3]int) float64 {
	dot := lightDir[0]*float64(normal[0]) + lightDir[1]*float64(normal[1]) + lightDir[2]*float64(normal[2])
	return (2 + dot) / 3
}

// FaceColor combines state colour and face shading.
func FaceColor(state uint8, states int, normal [3]int) color.RGBA {
	v := StateRed(state, states) * Shade(normal)
	return color.RGBA{R: uint8(math.Round(255 * math.Max(0, math.Min(1, v)))), A: 255}
}

// Palette returns one unshaded colour per state. State 0 is transparent.
func Palette(states int) []color.RGBA {
	if states < 1 {
		states = 1
	}
	out := make([]color.RGBA, states)
	for s := 1; s < states; s++ {
		out[s] = color.RGBA{R: uint8(math.Round(255 * StateRed(uint8(s), states))), G: 24, B: 24, A: 255}
	}
	return out
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// LayerY copies the horizontal layer y of a cubic grid of side n into dst as
// an n*n image in row-major (z rows, x columns) order.
func LayerY(dst, cells []uint8, n, y int) []uint8 {
	if cap(dst) < n*n {
		dst = make([]uint8, n*n)
	}
	dst = dst[:n*n]
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			dst[z*n+x] = cells[(x*n+y)*n+z]
		}
	}
	return dst
}
