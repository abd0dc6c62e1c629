package globelia

import (
	"math"
	"testing"
)

const epsilon = 1e-9

// forward applies the forward projection, mapping spherical angles to
// pixel offsets. It is the inverse of Inverse, used to verify the
// round trip.
func forward(t *testing.T, p Projection, inv Inverse, theta, phi float64) (x, y float64) {
	t.Helper()
	r := inv.Radius()
	switch p {
	case Mercator:
		return r * theta, r * math.Log(math.Tan(math.Pi/4+phi/2))
	case CentralCylindrical:
		return r * theta, r * math.Tan(phi)
	case Mollweide:
		aux := mollweideAux(phi)
		return r * 2 * math.Sqrt2 / math.Pi * theta * math.Cos(aux),
			r * math.Sqrt2 * math.Sin(aux)
	case Equirectangular:
		return r * theta, r * phi
	case Sinusoidal:
		return r * theta * math.Cos(phi), r * phi
	default:
		t.Fatalf("no forward map for %v", p)
		return 0, 0
	}
}

// mollweideAux solves 2*aux + sin(2*aux) = pi*sin(phi) by Newton
// iteration.
func mollweideAux(phi float64) float64 {
	aux := phi
	for i := 0; i < 50; i++ {
		f := 2*aux + math.Sin(2*aux) - math.Pi*math.Sin(phi)
		df := 2 + 2*math.Cos(2*aux)
		if math.Abs(df) < 1e-15 {
			break
		}
		next := aux - f/df
		if math.Abs(next-aux) < 1e-15 {
			return next
		}
		aux = next
	}
	return aux
}

func TestInverseRoundTrip(t *testing.T) {
	projections := []Projection{
		Mercator, CentralCylindrical, Mollweide, Equirectangular, Sinusoidal,
	}
	for _, p := range projections {
		t.Run(p.String(), func(t *testing.T) {
			inv := p.Inverse(1024, 512)
			for _, theta := range []float64{-2.8, -1.3, 0, 0.7, 2.9} {
				for _, phi := range []float64{-1.3, -0.6, 0, 0.4, 1.2} {
					x, y := forward(t, p, inv, theta, phi)

					gotPhi := inv.Phi(x, y)
					if math.IsNaN(gotPhi) {
						t.Fatalf("Phi(%g, %g) = NaN for theta=%g phi=%g", x, y, theta, phi)
					}
					if math.Abs(gotPhi-phi) > epsilon {
						t.Errorf("Phi(%g, %g) = %g, want %g", x, y, gotPhi, phi)
					}

					gotTheta := inv.Theta(x, y)
					if math.IsNaN(gotTheta) {
						t.Fatalf("Theta(%g, %g) = NaN for theta=%g phi=%g", x, y, theta, phi)
					}
					if math.Abs(gotTheta-theta) > epsilon {
						t.Errorf("Theta(%g, %g) = %g, want %g", x, y, gotTheta, theta)
					}
				}
			}
		})
	}
}

func TestInverseUndefined(t *testing.T) {
	tests := []struct {
		name string
		p    Projection
		x, y float64
	}{
		{"mollweide y beyond sqrt2 r", Mollweide, 0, 1e6},
		{"mollweide theta out of range", Mollweide, 1e6, 0},
		{"sinusoidal theta out of range", Sinusoidal, 1e6, 0},
		{"half-sphere outside the disc", HalfSphere, 600, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.p.Inverse(1024, 512)
			theta := inv.Theta(tt.x, tt.y)
			phi := inv.Phi(tt.x, tt.y)
			if !math.IsNaN(theta) && !math.IsNaN(phi) {
				t.Errorf("Theta=%g Phi=%g, want at least one NaN", theta, phi)
			}
		})
	}
}

func TestHalfSphereInverse(t *testing.T) {
	inv := HalfSphere.Inverse(1024, 1024)

	// Center of the disc is the pole.
	if phi := inv.Phi(0, 0); math.Abs(phi-math.Pi/2) > epsilon {
		t.Errorf("Phi(0, 0) = %g, want pi/2", phi)
	}
	// Edge of the disc is the equator.
	if phi := inv.Phi(512, 0); math.Abs(phi) > epsilon {
		t.Errorf("Phi(512, 0) = %g, want 0", phi)
	}
	// Azimuth is the plain angle.
	if theta := inv.Theta(100, 100); math.Abs(theta-math.Pi/4) > epsilon {
		t.Errorf("Theta(100, 100) = %g, want pi/4", theta)
	}
}

func TestEdgePhi(t *testing.T) {
	// For an equirectangular map of the whole sphere the edge sits at
	// the pole.
	inv := Equirectangular.Inverse(1024, 512)
	if got := inv.EdgePhi(); math.Abs(got-math.Pi/2) > 0.02 {
		t.Errorf("EdgePhi() = %g, want about pi/2", got)
	}

	// A central-cylindrical map can never reach the pole.
	inv = CentralCylindrical.Inverse(1024, 512)
	if got := inv.EdgePhi(); !(0 < got && got < math.Pi/2) {
		t.Errorf("EdgePhi() = %g, want inside (0, pi/2)", got)
	}
}

func TestNaturalHeight(t *testing.T) {
	nx := 1024
	tests := []struct {
		p    Projection
		nx   int
		want int
	}{
		{Mollweide, 1024, int(float64(nx) * math.Sqrt2 / math.Pi)},
		{Equirectangular, 1024, 512},
		{Sinusoidal, 1000, 500},
		{Mercator, 1024, 0},
		{CentralCylindrical, 1024, 0},
	}
	for _, tt := range tests {
		if got := tt.p.NaturalHeight(tt.nx); got != tt.want {
			t.Errorf("%v.NaturalHeight(%d) = %d, want %d", tt.p, tt.nx, got, tt.want)
		}
	}
}

func TestParseProjection(t *testing.T) {
	for p, name := range projectionNames {
		got, err := ParseProjection(name)
		if err != nil {
			t.Fatalf("ParseProjection(%q) = %v", name, err)
		}
		if got != p {
			t.Errorf("ParseProjection(%q) = %v, want %v", name, got, p)
		}
	}
	if _, err := ParseProjection("bogus"); err == nil {
		t.Error("ParseProjection(bogus) should fail")
	}
}
