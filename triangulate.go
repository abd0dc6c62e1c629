package globelia

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// Triangulate returns the faces spanning the band between two adjacent
// rows, following the "walking the dog" heuristic: for each point of the
// current row (the human), a cursor into the previous row (the dog)
// advances circularly while each step strictly decreases the distance to
// the human, emitting a face per step, and then one more face bridges to
// the next point of the current row.
//
// Distances are measured between points projected onto the unit sphere, so
// triangulation quality is independent of local elevation. The strict
// inequality is the tie-break: equal distance never advances the dog,
// which prevents infinite loops on symmetric input.
//
// With closeFigure the rows are treated as closed rings: the last point
// bridges back to the first and the dog walks the rest of the way around.
// Without it the band stays open at the seam, for later stitching. Rows of
// length 1 degenerate into a fan via the modulo arithmetic.
func Triangulate(previous, current Row, closeFigure bool) []Face {
	if len(previous) == 0 || len(current) == 0 {
		return nil
	}

	prev := make([]r3.Vector, len(previous))
	for i, p := range previous {
		prev[i] = p.unit()
	}
	cur := make([]r3.Vector, len(current))
	for i, p := range current {
		cur[i] = p.unit()
	}

	var faces []Face
	dog := 0
	for i := range current {
		walking := dog
		dist := cur[i].Sub(prev[dog]).Norm2()
		for { // let the dog walk until it's as close as possible
			walking = (walking + 1) % len(previous)
			distNew := cur[i].Sub(prev[walking]).Norm2()
			if distNew >= dist {
				break
			}
			faces = append(faces, Face{current[i].ID, previous[walking].ID, previous[dog].ID})
			dog = walking
			dist = distNew
		}
		// Triangle from the current position to the next one and the dog.
		if i+1 < len(current) {
			faces = append(faces, Face{current[i].ID, current[i+1].ID, previous[dog].ID})
		} else if closeFigure {
			faces = append(faces, Face{current[i].ID, current[0].ID, previous[dog].ID})
		}
	}
	if closeFigure {
		for dog != 0 { // we have to close the figure
			walking := (dog + 1) % len(previous)
			faces = append(faces, Face{current[0].ID, previous[walking].ID, previous[dog].ID})
			dog = walking
		}
	}
	return faces
}

// TriangulateRows runs Triangulate over every consecutive pair of rows
// and returns all the faces. The cursor state is per pair; within one
// patch the pairs must be processed in row order.
func TriangulateRows(rows []Row, closeFigure bool) []Face {
	Logger().Info("forming faces", "rows", len(rows))

	var faces []Face
	for j := 1; j < len(rows); j++ {
		faces = append(faces, Triangulate(rows[j-1], rows[j], closeFigure)...)
	}
	return faces
}

// Invert returns the faces with the opposite orientation, swapping the
// last two ids of each face. Invert(Invert(faces)) restores the input.
func Invert(faces []Face) []Face {
	inverted := make([]Face, len(faces))
	for i, f := range faces {
		inverted[i] = Face{f[0], f[2], f[1]}
	}
	return inverted
}

// BoundaryRow extracts the rim of a patch: the points whose planar radius
// exceeds the mean planar radius of the sample row, sorted by azimuth.
// When two patches were generated independently and their natural row
// order does not align, this locates the correct row to stitch. A nil
// sample defaults to the second row of the patch.
func BoundaryRow(rows []Row, sample Row) Row {
	if sample == nil && len(rows) > 1 {
		sample = rows[1]
	}
	if len(sample) == 0 {
		return nil
	}

	r2xy := func(p Point) float64 { return p.X*p.X + p.Y*p.Y }

	limit := 0.0
	for _, p := range sample {
		limit += r2xy(p)
	}
	limit /= float64(len(sample))

	var rim Row
	for _, row := range rows {
		for _, p := range row {
			if r2xy(p) > limit {
				rim = append(rim, p)
			}
		}
	}
	sort.Slice(rim, func(i, j int) bool {
		return math.Atan2(rim[i].Y, rim[i].X) < math.Atan2(rim[j].Y, rim[j].X)
	})
	return rim
}
