package globelia

import (
	"fmt"
	"math"
)

// Projection identifies the map projection an image uses. The zero value
// is Mercator.
type Projection int

// Supported projections.
const (
	Mercator Projection = iota
	CentralCylindrical
	Mollweide
	Equirectangular
	Sinusoidal
	HalfSphere
)

var projectionNames = map[Projection]string{
	Mercator:           "mercator",
	CentralCylindrical: "central-cylindrical",
	Mollweide:          "mollweide",
	Equirectangular:    "equirectangular",
	Sinusoidal:         "sinusoidal",
	HalfSphere:         "half-sphere",
}

// String returns the name of the projection as used on the command line.
func (p Projection) String() string {
	if name, ok := projectionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// ParseProjection returns the projection with the given name.
func ParseProjection(name string) (Projection, error) {
	for p, n := range projectionNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("globelia: unknown projection %q", name)
}

// compensatesLatitude reports whether the projection already keeps ring
// circumference roughly constant across latitudes, so the sampler must not
// divide the column step by cos(phi) on top of it.
func (p Projection) compensatesLatitude() bool {
	return p == Mollweide || p == Sinusoidal
}

// NaturalHeight returns the image height that a map of width nx should
// have in this projection, or 0 if the projection does not constrain the
// aspect ratio.
func (p Projection) NaturalHeight(nx int) int {
	switch p {
	case Mollweide:
		return int(float64(nx) * math.Sqrt2 / math.Pi)
	case Equirectangular, Sinusoidal:
		return nx / 2
	default:
		return 0
	}
}

// Inverse returns the inverse map of the projection for an nx by ny image:
// pure functions from pixel offsets (relative to the image center, y
// growing upwards) to spherical angles. Both return NaN where the inverse
// has no solution in-domain; such samples are simply skipped.
func (p Projection) Inverse(nx, ny int) Inverse {
	inv := Inverse{kind: p, nx: nx, ny: ny}
	switch p {
	case Mollweide:
		// Reconstructing the radius from nx. The epsilon avoids
		// overlapping points on the border.
		const epsilon = 1e-8
		inv.r = float64(nx) / (4*math.Sqrt2 - epsilon)
	case HalfSphere:
		inv.r = float64(nx) / 2
	default:
		inv.r = float64(nx) / (2 * math.Pi)
	}
	return inv
}

// Inverse maps pixel offsets from the center of a concrete image to
// spherical angles. It is stateless and trivially parallelizable.
type Inverse struct {
	kind   Projection
	r      float64
	nx, ny int
}

// Radius returns the sphere radius deduced from the image width, in
// pixels.
func (v Inverse) Radius() float64 {
	return v.r
}

// Theta returns the azimuth for the pixel offset (x, y), or NaN when the
// pixel falls outside the projection domain.
//
// The forward maps, for reference:
//
//	mercator:             x = r*theta    y = r*log(tan(pi/4 + phi/2))
//	central-cylindrical:  x = r*theta    y = r*tan(phi)
//	mollweide:            x = r*2*sqrt(2)/pi*theta*cos(aux)
//	                      y = r*sqrt(2)*sin(aux)
//	                      with 2*aux + sin(2*aux) = pi*sin(phi)
//	equirectangular:      x = r*theta    y = r*phi
//	sinusoidal:           x = r*theta*cos(phi)    y = r*phi
func (v Inverse) Theta(x, y float64) float64 {
	switch v.kind {
	case Mollweide:
		sinAux := y / (v.r * math.Sqrt2)
		if !(-1 < sinAux && sinAux < 1) {
			return math.NaN()
		}
		aux := math.Asin(sinAux)
		theta := math.Pi * x / (2 * v.r * math.Sqrt2 * math.Cos(aux))
		if !(-math.Pi < theta && theta < math.Pi) {
			return math.NaN()
		}
		return theta
	case Sinusoidal:
		theta := x / (v.r * math.Cos(y/v.r))
		if !(-math.Pi < theta && theta < math.Pi) {
			return math.NaN()
		}
		return theta
	case HalfSphere:
		return math.Atan2(y, x)
	default:
		return x / v.r
	}
}

// Phi returns the elevation angle for the pixel offset (x, y), or NaN when
// the pixel falls outside the projection domain. Only the half-sphere
// projection uses x; for every other projection phi depends on y alone.
func (v Inverse) Phi(x, y float64) float64 {
	switch v.kind {
	case Mercator:
		return 2*math.Atan(math.Exp(y/v.r)) - math.Pi/2
	case CentralCylindrical:
		return math.Atan2(y, v.r)
	case Mollweide:
		sinAux := y / (v.r * math.Sqrt2)
		if !(-1 < sinAux && sinAux < 1) {
			return math.NaN()
		}
		aux := math.Asin(sinAux)
		sinPhi := (2*aux + math.Sin(2*aux)) / math.Pi
		if !(-1 < sinPhi && sinPhi < 1) {
			return math.NaN()
		}
		return math.Asin(sinPhi)
	case HalfSphere:
		r2 := x*x + y*y
		if r2 > v.r*v.r {
			return math.NaN()
		}
		return math.Pi / 2 * (1 - math.Sqrt(r2)/v.r)
	default: // Equirectangular, Sinusoidal
		return y / v.r
	}
}

// EdgePhi returns the elevation at the vertical edge of the image, the
// widest latitude the map covers. The automatic cap policy closes the
// sphere from this angle to the pole.
func (v Inverse) EdgePhi() float64 {
	if v.kind == HalfSphere {
		return math.Pi / 2
	}
	return v.Phi(0, float64(v.ny/2))
}
