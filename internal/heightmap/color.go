package heightmap

import (
	"image/color"
	"math"
)

// rgb8 returns the 8-bit RGB components of a color.
func rgb8(c color.Color) (r, g, b uint8) {
	r16, g16, b16, _ := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8)
}

// rgba8 returns the 8-bit RGBA components of a color.
func rgba8(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

// nrgba builds a color.NRGBA from 8-bit components.
func nrgba(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// rgbToHSV converts 8-bit RGB to HSV with every component on the 0..255
// scale, matching the convention of the palettes these maps come with.
func rgbToHSV(r, g, b uint8) (h, s, v float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	v = maxC

	delta := maxC - minC
	if maxC > 0 {
		s = 255 * delta / maxC
	}
	if delta == 0 {
		return 0, s, v
	}

	switch maxC {
	case rf:
		h = (gf - bf) / delta
	case gf:
		h = 2 + (bf-rf)/delta
	default:
		h = 4 + (rf-gf)/delta
	}
	h *= 255.0 / 6
	if h < 0 {
		h += 255
	}
	return h, s, v
}
