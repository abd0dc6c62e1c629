// Package heightmap decodes map images and extracts the per-pixel
// elevation (or color) grids that the globelia samplers consume. It
// handles channel selection, inversion, gap filling, blurring and the
// projection aspect-ratio fix; everything geometric stays in globelia.
package heightmap

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	_ "image/gif"  // register gif decoding
	_ "image/jpeg" // register jpeg decoding
	_ "image/png"  // register png decoding

	_ "golang.org/x/image/bmp"  // register bmp decoding
	_ "golang.org/x/image/tiff" // register tiff decoding
	_ "golang.org/x/image/webp" // register webp decoding

	"github.com/globelia/globelia"
)

// ErrUnknownChannel is returned for a channel name ParseChannel does not
// recognize.
var ErrUnknownChannel = errors.New("heightmap: unknown channel")

// Channel selects which property of a pixel encodes the elevation.
type Channel int

// Supported channels.
const (
	// Val is the HSV value; the default, as most elevation maps encode
	// height as brightness.
	Val Channel = iota
	Red
	Green
	Blue
	Average
	Hue
	Sat
	// ColorOrder ranks the distinct colors of the image by (-hue,
	// value) and uses the rank as the height. It undoes the rainbow
	// palettes used by planetary radar maps, where low heights get big
	// hues and, within a hue, darker means higher.
	ColorOrder
)

var channelNames = map[Channel]string{
	Red: "r", Green: "g", Blue: "b", Average: "average",
	Hue: "hue", Sat: "sat", Val: "val", ColorOrder: "color",
}

// String returns the channel name as used on the command line.
func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ParseChannel returns the channel with the given name.
func ParseChannel(name string) (Channel, error) {
	for c, n := range channelNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownChannel, name)
}

// Load decodes the image at the given path. Supported formats: png, jpeg,
// gif, tiff, bmp, webp.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("heightmap: open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("heightmap: decode %s: %w", path, err)
	}
	return img, nil
}

// Heights extracts the elevation grid from the image using the given
// channel.
func Heights(img image.Image, channel Channel) *globelia.Grid {
	globelia.Logger().Info("extracting heights from image", "channel", channel)

	if channel == ColorOrder {
		return colorOrderHeights(img)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	v := make([]float64, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := rgb8(img.At(x, y))
			switch channel {
			case Red:
				v = append(v, float64(r))
			case Green:
				v = append(v, float64(g))
			case Blue:
				v = append(v, float64(bl))
			case Average:
				v = append(v, (float64(r)+float64(g)+float64(bl))/3)
			default:
				hue, sat, val := rgbToHSV(r, g, bl)
				switch channel {
				case Hue:
					v = append(v, hue)
				case Sat:
					v = append(v, sat)
				default:
					v = append(v, val)
				}
			}
		}
	}
	return globelia.NewGrid(w, h, v)
}

// colorOrderHeights maps every distinct color to its rank in the
// (-hue, value) ordering and uses the rank as the height.
func colorOrderHeights(img image.Image) *globelia.Grid {
	type hv struct{ negHue, val float64 }

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgbToHV := make(map[[3]uint8]hv)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := rgb8(img.At(x, y))
			hue, _, val := rgbToHSV(r, g, bl)
			rgbToHV[[3]uint8{r, g, bl}] = hv{-hue, val}
		}
	}

	ordered := make([]hv, 0, len(rgbToHV))
	for _, x := range rgbToHV {
		ordered = append(ordered, x)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].negHue != ordered[j].negHue {
			return ordered[i].negHue < ordered[j].negHue
		}
		return ordered[i].val < ordered[j].val
	})
	rank := make(map[hv]float64, len(ordered))
	for i, x := range ordered {
		if _, ok := rank[x]; !ok {
			rank[x] = float64(i)
		}
	}

	v := make([]float64, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := rgb8(img.At(x, y))
			v = append(v, rank[rgbToHV[[3]uint8{r, g, bl}]])
		}
	}
	return globelia.NewGrid(w, h, v)
}

// Colors extracts the per-pixel colors of the image, for painting a map
// onto the sphere instead of extruding it.
func Colors(img image.Image) *globelia.ColorGrid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	grid := &globelia.ColorGrid{W: w, H: h}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := rgba8(img.At(x, y))
			grid.Pix = append(grid.Pix, nrgba(r, g, bl, a))
		}
	}
	return grid
}

// Invert negates the grid in place, swapping high and low elevations, and
// returns it.
func Invert(g *globelia.Grid) *globelia.Grid {
	for i := range g.V {
		g.V[i] = -g.V[i]
	}
	return g
}
