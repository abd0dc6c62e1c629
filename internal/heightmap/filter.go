package heightmap

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/globelia/globelia"
	"github.com/globelia/globelia/internal/parallel"
)

// FillDark replaces the dark pixels of the image, which correspond to
// areas with no data, with the last bright color seen in scan order.
func FillDark(img image.Image) image.Image {
	const (
		tooDarkValue = 30
		darkestFill  = 50
	)
	globelia.Logger().Info("filling dark areas with nearby color")

	b := img.Bounds()
	filled := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(filled, filled.Bounds(), img, b.Min, draw.Src)

	lastFill := nrgba(255, 255, 255, 255)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := filled.NRGBAAt(x, y)
			_, _, v := rgbToHSV(c.R, c.G, c.B)
			switch {
			case v < tooDarkValue:
				filled.SetNRGBA(x, y, lastFill)
			case v > darkestFill:
				lastFill = c
			}
		}
	}
	return filled
}

// FixRatio resizes the image when the projection expects a different
// width/height ratio than the image has. Maps are often distributed
// slightly cropped or padded; sampling them as-is would shear the sphere.
func FixRatio(img image.Image, proj globelia.Projection) image.Image {
	b := img.Bounds()
	nx, ny := b.Dx(), b.Dy()
	expected := proj.NaturalHeight(nx)
	if expected == 0 || ny == expected {
		return img
	}

	globelia.Logger().Warn("image ratio does not match the projection, resizing",
		"projection", proj, "width", nx, "height", ny, "expected_height", expected)

	resized := image.NewNRGBA(image.Rect(0, 0, nx, expected))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, b, draw.Src, nil)
	return resized
}

// Blur applies a box blur of the given radius to the grid, smoothing the
// elevations before sampling. Radius 0 returns the grid unchanged.
func Blur(g *globelia.Grid, radius int) *globelia.Grid {
	if radius <= 0 {
		return g
	}
	globelia.Logger().Info("blurring heights", "radius", radius)

	out := make([]float64, len(g.V))
	parallel.For(g.H, func(j int) {
		for i := 0; i < g.W; i++ {
			sum, n := 0.0, 0
			for dj := -radius; dj <= radius; dj++ {
				y := j + dj
				if y < 0 || y >= g.H {
					continue
				}
				for di := -radius; di <= radius; di++ {
					x := i + di
					if x < 0 || x >= g.W {
						continue
					}
					sum += g.At(x, y)
					n++
				}
			}
			out[j*g.W+i] = sum / float64(n)
		}
	})
	return globelia.NewGrid(g.W, g.H, out)
}
