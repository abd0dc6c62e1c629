package globelia

import (
	"math"

	"github.com/golang/geo/r3"
)

// Point is a 3D point with the unique id that faces use to reference it.
// Points are immutable once created; ids are assigned by an Allocator in
// pipeline order and never reused within one run.
type Point struct {
	ID      int
	X, Y, Z float64
}

// Pt is a convenience function to create a Point.
func Pt(id int, x, y, z float64) Point {
	return Point{ID: id, X: x, Y: y, Z: z}
}

// Vec returns the point coordinates as an r3 vector.
func (p Point) Vec() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// Radius returns the distance from the origin.
func (p Point) Radius() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Theta returns the azimuth of the point, in (-pi, pi].
func (p Point) Theta() float64 {
	return math.Atan2(p.Y, p.X)
}

// Phi returns the elevation angle of the point, in [-pi/2, pi/2].
func (p Point) Phi() float64 {
	return math.Asin(p.Z / p.Radius())
}

// unit returns the point projected onto the unit sphere. Triangulation
// distances are measured between unit-projected points so that mesh
// quality does not depend on local elevation.
func (p Point) unit() r3.Vector {
	return p.Vec().Normalize()
}

// Row is an ordered sequence of points sharing one parametric coordinate,
// typically one latitude ring. The order defines triangulation adjacency;
// closed rings wrap circularly.
type Row []Point

// Patch is a continuous parametric grid of rows covering one coherent
// surface region: the map body, a polar cap or a logo disc.
type Patch struct {
	Rows  []Row
	Faces []Face
}

// NumPoints returns the number of points in the patch.
func (p *Patch) NumPoints() int {
	n := 0
	for _, row := range p.Rows {
		n += len(row)
	}
	return n
}

// Allocator hands out point ids from a single monotonically increasing
// counter. One Allocator is shared by every sampler in an assembly run so
// ids never collide across patches; a patch that must run independently
// can reserve a disjoint range up front with Reserve.
type Allocator struct {
	next int
}

// NewAllocator returns an allocator whose first id is start.
func NewAllocator(start int) *Allocator {
	return &Allocator{next: start}
}

// Next returns the next free id and advances the counter.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Peek returns the id that Next would return, without advancing.
func (a *Allocator) Peek() int {
	return a.next
}

// Reserve allocates a block of n consecutive ids and returns the first.
func (a *Allocator) Reserve(n int) int {
	start := a.next
	a.next += n
	return start
}

// Unwind gives back the last n allocated ids. Samplers use it when a whole
// row is dropped, so the id sequence stays contiguous.
func (a *Allocator) Unwind(n int) {
	a.next -= n
}
