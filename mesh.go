package globelia

import (
	"fmt"
	"image/color"
)

// Face is an ordered triple of point ids. The winding order encodes the
// outward normal.
type Face [3]int

// Mesh is the set of all points of a figure plus the list of all faces.
// Points are ordered by id, so Points[i].ID == i; index-based writers rely
// on this. Colors, when non-nil, holds one color per point in id order.
type Mesh struct {
	Points []Point
	Colors []color.NRGBA
	Faces  []Face
}

// Grid is a row-major 2D grid of numeric values: elevations extracted from
// a map image, or the intensity of a logo. Row 0 is the top of the image.
type Grid struct {
	W, H int
	V    []float64
}

// NewGrid creates a grid of the given size. It panics if len(v) != w*h.
func NewGrid(w, h int, v []float64) *Grid {
	if len(v) != w*h {
		panic(fmt.Sprintf("globelia: grid size %dx%d needs %d values, got %d",
			w, h, w*h, len(v)))
	}
	return &Grid{W: w, H: h, V: v}
}

// At returns the value at column i, row j.
func (g *Grid) At(i, j int) float64 {
	return g.V[j*g.W+i]
}

// MinMax returns the smallest and largest value in the grid.
func (g *Grid) MinMax() (min, max float64) {
	min, max = g.V[0], g.V[0]
	for _, v := range g.V[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// AddRows appends the points of the given rows to the mesh. The rows must
// arrive in id order, continuing where the previous ones ended.
func (m *Mesh) AddRows(rows []Row) {
	for _, row := range rows {
		m.Points = append(m.Points, row...)
	}
}

// AddFaces appends faces to the mesh.
func (m *Mesh) AddFaces(faces []Face) {
	m.Faces = append(m.Faces, faces...)
}

// check panics if the mesh violates the invariants the writers depend on:
// points ordered by id and every face referencing an existing point. A
// violation is a programming error, so it fails loudly instead of
// silently emitting bad geometry.
func (m *Mesh) check() {
	for i, p := range m.Points {
		if p.ID != i {
			panic(fmt.Sprintf("globelia: point at index %d has id %d", i, p.ID))
		}
	}
	if m.Colors != nil && len(m.Colors) != len(m.Points) {
		panic(fmt.Sprintf("globelia: %d colors for %d points",
			len(m.Colors), len(m.Points)))
	}
	for _, f := range m.Faces {
		for _, id := range f {
			if id < 0 || id >= len(m.Points) {
				panic(fmt.Sprintf("globelia: face %v references unknown point %d", f, id))
			}
		}
	}
}
