package globelia

import (
	"math"
)

// CapPoints returns the rows of points that form a polar cap of radius r,
// from the pole down to latitude phiMax. phiMax > 0 builds the north cap,
// phiMax < 0 the south cap. The north cap is emitted pole first (the rim
// is its last row), the south cap rim first (the pole is its last row), so
// rows always run north to south like the map body.
func CapPoints(r, phiMax float64, alloc *Allocator) []Row {
	if phiMax > 0 {
		return spherePoints(r, math.Pi/2, phiMax, alloc)
	}
	return spherePoints(r, phiMax, -math.Pi/2, alloc)
}

// spherePoints returns rows of points on a sphere of radius r covering
// latitudes phiStart to phiEnd. Ring length grows with cos(phi) to keep
// edge length roughly uniform; a ring coincident with a pole collapses to
// a single point to avoid degenerate triangles.
func spherePoints(r, phiStart, phiEnd float64, alloc *Allocator) []Row {
	nphi := int(math.Max(10, 21*math.Abs(phiEnd-phiStart)))
	var rows []Row
	for _, phi := range linspace(phiStart, phiEnd, nphi) {
		z := r * math.Sin(phi)
		if math.Abs(math.Abs(z)-r) < 1e-6 {
			// We are at a pole: just put one point.
			rows = append(rows, Row{Pt(alloc.Next(), 0, 0, z)})
			continue
		}
		rcphi := r * math.Cos(phi)
		ntheta := int(math.Max(9, 300*math.Cos(phi)))
		row := make(Row, 0, ntheta)
		for _, theta := range linspace(-math.Pi, math.Pi, ntheta) {
			row = append(row, Pt(alloc.Next(),
				math.Cos(theta)*rcphi, math.Sin(theta)*rcphi, z))
		}
		rows = append(rows, row)
	}
	return rows
}

// LogoPoints maps a square image onto an azimuthal disc centered on a
// pole. The normalized distance from the image center (clipped to the
// inscribed circle) maps linearly to latitude between the pole and
// phiMax, the pixel angle maps to azimuth, and the pixel intensity
// perturbs the radius around capHeight, scaled by scale. phiMax > 0
// selects the north pole, < 0 the south pole.
//
// Rows left with fewer than 2 points are dropped and their ids reclaimed,
// so the id sequence stays contiguous.
func LogoPoints(heights *Grid, phiMax, capHeight, scale float64, alloc *Allocator) []Row {
	Logger().Info("projecting logo")

	signPhi := 1.0
	if phiMax < 0 {
		signPhi = -1
	}
	absPhiMax := math.Abs(phiMax)

	_, hmax := heights.MinMax()
	if hmax == 0 {
		hmax = 1 // all-black logo, keep the radius at capHeight
	}

	nx, ny := heights.W, heights.H
	n2 := float64(max(nx, ny)) / 2
	nx2, ny2 := float64(nx)/2, float64(ny)/2

	var rows []Row
	for j := 0; j < ny; j++ {
		var row Row
		for i := 0; i < nx; i++ {
			di, dj := float64(i)-nx2, float64(j)-ny2
			dist := math.Sqrt(di*di+dj*dj) / n2
			if dist > 1 {
				continue // only values inside the circle
			}
			r := capHeight + scale*(capHeight-1)*heights.At(i, j)/hmax
			theta := signPhi * math.Atan2(ny2-float64(j), float64(i)-nx2)
			phi := signPhi * (math.Pi/2 - (math.Pi/2-absPhiMax)*dist)

			row = append(row, Pt(alloc.Next(),
				r*math.Cos(theta)*math.Cos(phi),
				r*math.Sin(theta)*math.Cos(phi),
				r*math.Sin(phi)))
		}
		if len(row) > 1 { // we want at least 2 points in a row
			rows = append(rows, row)
		} else {
			alloc.Unwind(len(row)) // we didn't add it, so don't count it
		}
	}
	return rows
}

// linspace returns n values evenly spaced from a to b, both inclusive.
func linspace(a, b float64, n int) []float64 {
	if n == 1 {
		return []float64{a}
	}
	vs := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range vs {
		vs[i] = a + float64(i)*step
	}
	vs[n-1] = b
	return vs
}
