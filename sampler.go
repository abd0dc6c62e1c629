package globelia

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// CapMode selects how the polar caps of the figure are sized.
type CapMode int

const (
	// CapAuto closes the sphere from the latitude where the map ends.
	CapAuto CapMode = iota
	// CapNone adds no caps at all. The cap angle is still computed, but
	// only to bound logo placement.
	CapNone
	// CapAngle closes the sphere from an explicit latitude.
	CapAngle
)

// Caps is the cap policy of a figure: automatic, none, or an explicit
// angle in degrees measured from the equator. The three-way distinction is
// deliberate; in particular CapNone affects logo placement but never the
// map sampling.
type Caps struct {
	Mode  CapMode
	Angle float64
}

// AutoCaps returns the automatic cap policy.
func AutoCaps() Caps { return Caps{Mode: CapAuto} }

// NoCaps returns the policy that adds no caps.
func NoCaps() Caps { return Caps{Mode: CapNone} }

// CapsAt returns the policy with caps down to the given latitude, in
// degrees.
func CapsAt(deg float64) Caps { return Caps{Mode: CapAngle, Angle: deg} }

// ParseCaps parses a cap policy as written on the command line: "auto",
// "none", or an angle in degrees in (0, 90).
func ParseCaps(s string) (Caps, error) {
	switch s {
	case "auto":
		return AutoCaps(), nil
	case "none":
		return NoCaps(), nil
	}
	deg, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Caps{}, fmt.Errorf(`globelia: caps must be "auto", "none" or an angle, got %q`, s)
	}
	if !(0 < deg && deg < 90) {
		return Caps{}, fmt.Errorf("globelia: caps angle must be > 0 and < 90, got %g", deg)
	}
	return CapsAt(deg), nil
}

// Meridian marks a great circle of longitude to raise above the relief,
// making it visible on the printed model. Position and width are radians.
type Meridian struct {
	Pos, Width float64
}

// SampleOptions configures how a map image is sampled into rows of points
// on the sphere.
type SampleOptions struct {
	// Projection is the map projection of the image.
	Projection Projection

	// Points is the target number of points to emit, or 0 to use every
	// pixel.
	Points int

	// Scale is the fraction of the radius between the lowest and the
	// highest elevation.
	Scale float64

	// Caps is the cap policy. See AutoCaps, NoCaps and CapsAt.
	Caps Caps

	// CapHeight is the radius of the caps, and of meridians where they
	// meet the caps. Zero means the default protrusion above the
	// highest elevation.
	CapHeight float64

	// Meridians lists the meridians to raise. A meridian narrower than
	// the column step is widened so it stays visible at low sampling
	// density.
	Meridians []Meridian

	// MeridianHeight is the radius of meridians at the equator. Zero
	// means the default protrusion.
	MeridianHeight float64

	// EquatorWidth raises a band of the given angular width around the
	// equator to EquatorHeight. Zero disables the band.
	EquatorWidth, EquatorHeight float64
}

// DefaultProtrusion returns the radius at which raised features (caps,
// meridians) clear a relief of the given scale, using the standard 2%
// protrusion.
func DefaultProtrusion(scale float64) float64 {
	return 1.02 * (1 + scale/2)
}

// withDefaults fills the zero heights in from the scale.
func (opt SampleOptions) withDefaults() SampleOptions {
	if opt.CapHeight == 0 {
		opt.CapHeight = DefaultProtrusion(opt.Scale)
	}
	if opt.MeridianHeight == 0 {
		opt.MeridianHeight = DefaultProtrusion(opt.Scale)
	}
	return opt
}

// phiCap returns the latitude at which the caps end. For the automatic
// and none policies that is the latitude at the vertical edge of the
// image; the none value is only ever used to bound logo placement.
func (opt SampleOptions) phiCap(inv Inverse) float64 {
	if opt.Caps.Mode == CapAngle {
		return math.Pi/2 - opt.Caps.Angle*math.Pi/180
	}
	return inv.EdgePhi()
}

// radiusField returns the function mapping a grid position to the sphere
// radius. Elevations are rescaled so the lowest maps to 1-scale and the
// highest to 1+scale; a flat input (spread below 1e-6) maps everything
// to radius 1.
func radiusField(heights *Grid, scale float64) func(i, j int) float64 {
	hmin, hmax := heights.MinMax()
	if hmax-hmin <= 1e-6 {
		return func(i, j int) float64 { return 1 }
	}
	return func(i, j int) float64 {
		return 1 + scale*(2*(heights.At(i, j)-hmin)/(hmax-hmin)-1)
	}
}

// interpolate returns the quadratic f with f(x0) = y0 and f(x1) = y1,
// flat at x0. Meridian radii follow it from the equator to the caps so
// the meridians join both smoothly.
func interpolate(x0, y0, x1, y1 float64) func(float64) float64 {
	a := (y1 - y0) / ((x1 - x0) * (x1 - x0))
	return func(x float64) float64 { return y0 + a*(x-x0)*(x-x0) }
}

// MapPoints samples the height grid into rows of points on the sphere,
// pole to pole, each row in increasing azimuth order. That ordering is a
// precondition for the triangulator. Ids come from alloc.
func MapPoints(heights *Grid, alloc *Allocator, opt SampleOptions) []Row {
	opt = opt.withDefaults()
	if opt.Projection == HalfSphere {
		return halfMapPoints(heights, alloc, opt)
	}

	Logger().Info("projecting heights on a sphere", "projection", opt.Projection)

	nx, ny := heights.W, heights.H
	inv := opt.Projection.Inverse(nx, ny)

	phiCap := opt.phiCap(inv)
	if opt.Caps.Mode != CapNone && phiCap > inv.EdgePhi() {
		Logger().Warn("gap between caps and the map projection",
			"cap_deg", 180*phiCap/math.Pi,
			"map_deg", 180*inv.EdgePhi()/math.Pi)
	}

	radius := radiusField(heights, opt.Scale)
	rmeridian := interpolate(0, opt.MeridianHeight, phiCap, opt.CapHeight)

	n := math.Sqrt(float64(opt.Points))
	stepY := 1
	if n > 0 {
		// The 3 factor is related to 1/cos(phi).
		stepY = int(math.Max(1, float64(ny)/(3*n)))
	}

	var rows []Row
	for j := 0; j < ny; j += stepY {
		yMap := float64(ny/2 - j)
		phi := inv.Phi(0, yMap)
		if math.IsNaN(phi) || math.Abs(phi) > phiCap {
			continue
		}

		cphi, sphi := math.Cos(phi), math.Sin(phi)
		stepX := 1
		if n > 0 {
			dilation := 1.0
			if !opt.Projection.compensatesLatitude() {
				dilation = 1 / cphi
			}
			// The dilation is unbounded at the poles; clamp the step to
			// the row width before the conversion to int can overflow.
			step := math.Max(1, float64(nx)/n*dilation)
			stepX = int(math.Min(step, float64(nx)))
		}
		minMeridianWidth := 2 * math.Pi * float64(stepX) / float64(nx)

		var row Row
		for i := 0; i < nx; i += stepX {
			xMap := float64(i - nx/2)
			theta := inv.Theta(xMap, yMap)
			if math.IsNaN(theta) {
				continue
			}

			var r float64
			switch {
			case opt.EquatorWidth > 0 && math.Abs(phi) < opt.EquatorWidth/2:
				r = opt.EquatorHeight
			case onMeridians(theta, opt.Meridians, minMeridianWidth):
				r = rmeridian(phi)
			default:
				r = radius(i, j)
			}

			row = append(row, Point{
				ID: alloc.Next(),
				X:  r * math.Cos(theta) * cphi,
				Y:  r * math.Sin(theta) * cphi,
				Z:  r * sphi,
			})
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// halfMapPoints projects the grid onto a half-sphere. The azimuthal
// projection needs both pixel coordinates for phi, so it samples every
// pixel instead of stepping by latitude.
func halfMapPoints(heights *Grid, alloc *Allocator, opt SampleOptions) []Row {
	Logger().Info("projecting heights on a half-sphere")

	nx, ny := heights.W, heights.H
	inv := HalfSphere.Inverse(nx, ny)
	radius := radiusField(heights, opt.Scale)

	var rows []Row
	for j := 0; j < ny; j++ {
		yMap := float64(ny/2 - j)

		var row Row
		for i := 0; i < nx; i++ {
			xMap := float64(i - nx/2)
			phi := inv.Phi(xMap, yMap)
			theta := inv.Theta(xMap, yMap)
			if math.IsNaN(phi) || math.IsNaN(theta) {
				continue
			}

			r := radius(i, j)
			cphi := math.Cos(phi)
			row = append(row, Point{
				ID: alloc.Next(),
				X:  r * math.Cos(theta) * cphi,
				Y:  r * math.Sin(theta) * cphi,
				Z:  r * math.Sin(phi),
			})
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// onMeridians reports whether the azimuth falls on one of the meridians,
// each widened to at least minWidth so it stays visible.
func onMeridians(theta float64, meridians []Meridian, minWidth float64) bool {
	for _, m := range meridians {
		if math.Abs(mod2pi(theta-m.Pos)) <= math.Max(m.Width/2, minWidth) {
			return true
		}
	}
	return false
}

// mod2pi returns the equivalent of angle a in [-pi, pi).
func mod2pi(a float64) float64 {
	return angleDelta(a, 2*math.Pi)
}

// ColorGrid is a row-major grid of per-pixel colors, used when painting a
// map onto the sphere instead of extruding it.
type ColorGrid struct {
	W, H int
	Pix  []color.NRGBA
}

// At returns the color at column i, row j.
func (c *ColorGrid) At(i, j int) color.NRGBA {
	return c.Pix[j*c.W+i]
}

// PaintPoints samples the color grid into rows of points on the unit
// sphere, returning one color per point in id order. The stepping matches
// MapPoints; the radius is always 1.
func PaintPoints(colors *ColorGrid, alloc *Allocator, proj Projection, target int) ([]Row, []color.NRGBA) {
	Logger().Info("painting colors on a sphere", "projection", proj)

	nx, ny := colors.W, colors.H
	inv := proj.Inverse(nx, ny)

	n := math.Sqrt(float64(target))
	stepY := 1
	if n > 0 {
		stepY = int(math.Max(1, float64(ny)/(3*n)))
	}

	var rows []Row
	var pointColors []color.NRGBA
	for j := 0; j < ny; j += stepY {
		yMap := float64(ny/2 - j)
		phi := inv.Phi(0, yMap)
		if math.IsNaN(phi) {
			continue
		}

		cphi, sphi := math.Cos(phi), math.Sin(phi)
		stepX := 1
		if n > 0 {
			dilation := 1.0
			if !proj.compensatesLatitude() {
				dilation = 1 / cphi
			}
			// Clamped like in MapPoints: the pole rows dilate without
			// bound.
			step := math.Max(1, float64(nx)/n*dilation)
			stepX = int(math.Min(step, float64(nx)))
		}

		var row Row
		for i := 0; i < nx; i += stepX {
			xMap := float64(i - nx/2)
			theta := inv.Theta(xMap, yMap)
			if math.IsNaN(theta) {
				continue
			}

			row = append(row, Point{
				ID: alloc.Next(),
				X:  math.Cos(theta) * cphi,
				Y:  math.Sin(theta) * cphi,
				Z:  sphi,
			})
			pointColors = append(pointColors, colors.At(i, j))
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, pointColors
}
