package globelia

import (
	"github.com/golang/geo/r3"
)

// AutoZCut returns the cut plane used by the automatic mode: the mean z
// of all triangle vertices.
func AutoZCut(tris []Triangle) float64 {
	if len(tris) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range tris {
		sum += t[0].Z + t[1].Z + t[2].Z
	}
	return sum / float64(3*len(tris))
}

// SplitByPlane cuts the triangles by the plane z = zcut into a north and
// a south mesh. Triangles fully on one side go there whole; straddling
// triangles are re-tiled, inserting interpolated vertices where their
// edges cross the plane, so both halves end flush with the plane.
func SplitByPlane(tris []Triangle, zcut float64) (north, south []Triangle) {
	for _, t := range tris {
		switch side(t, zcut) {
		case 1:
			north = append(north, t)
		case -1:
			south = append(south, t)
		default:
			up, down := cutTriangle(t, zcut)
			north = append(north, up...)
			south = append(south, down...)
		}
	}
	return north, south
}

// SplitDiscardingBorder is SplitByPlane except that straddling triangles
// are not re-tiled: they are routed whole to the border result, to be
// written to a separate file or dropped.
func SplitDiscardingBorder(tris []Triangle, zcut float64) (north, south, border []Triangle) {
	for _, t := range tris {
		switch side(t, zcut) {
		case 1:
			north = append(north, t)
		case -1:
			south = append(south, t)
		default:
			border = append(border, t)
		}
	}
	return north, south, border
}

// SplitByCount splits by running triangle index, the first n triangles to
// one mesh and the rest to the other, with no geometric cutting at all.
func SplitByCount(tris []Triangle, n int) (first, rest []Triangle) {
	if n > len(tris) {
		n = len(tris)
	}
	return tris[:n], tris[n:]
}

// side classifies a triangle against the plane: 1 fully above, -1 fully
// below, 0 straddling. Triangles lying exactly on the plane count as
// above.
func side(t Triangle, zcut float64) int {
	if t[0].Z >= zcut && t[1].Z >= zcut && t[2].Z >= zcut {
		return 1
	}
	if t[0].Z <= zcut && t[1].Z <= zcut && t[2].Z <= zcut {
		return -1
	}
	return 0
}

// cutTriangle re-tiles one straddling triangle. Walking the three
// vertices cyclically, each vertex joins the polygon of its side (both,
// when exactly on the plane) and every edge crossing inserts the
// interpolated vertex
//
//	p + ((zcut - p.z) / (q.z - p.z)) * (q - p)
//
// into both polygons. Each resulting 3- or 4-vertex cycle is fanned into
// 1-2 triangles, preserving the winding of the original.
func cutTriangle(t Triangle, zcut float64) (north, south []Triangle) {
	var upper, lower []r3.Vector
	for i := 0; i < 3; i++ {
		p, q := t[i], t[(i+1)%3]
		if p.Z >= zcut {
			upper = append(upper, p)
		}
		if p.Z <= zcut {
			lower = append(lower, p)
		}
		if (p.Z-zcut)*(q.Z-zcut) < 0 {
			f := (zcut - p.Z) / (q.Z - p.Z)
			m := p.Add(q.Sub(p).Mul(f))
			m.Z = zcut // exact, despite rounding in the interpolation
			upper = append(upper, m)
			lower = append(lower, m)
		}
	}
	return fan(upper), fan(lower)
}

// fan triangulates a convex 3- or 4-vertex cycle from its first vertex.
func fan(poly []r3.Vector) []Triangle {
	var tris []Triangle
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, Triangle{poly[0], poly[i], poly[i+1]})
	}
	return tris
}
