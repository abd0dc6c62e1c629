package globelia

import (
	"math"
	"testing"
)

// ring returns n points evenly spaced on the circle of the given radius
// and height, with ids starting at firstID.
func ring(firstID, n int, radius, z float64) Row {
	row := make(Row, n)
	for i := range row {
		theta := 2 * math.Pi * float64(i) / float64(n)
		row[i] = Pt(firstID+i, radius*math.Cos(theta), radius*math.Sin(theta), z)
	}
	return row
}

func TestTriangulateIdenticalRings(t *testing.T) {
	// Two rings of n points each, closed, always yield exactly 2n
	// triangles: one bridge per point plus one dog step per point.
	for _, n := range []int{3, 4, 7, 16, 100} {
		previous := ring(0, n, 1, 0)
		current := ring(n, n, 1, 0.5)
		faces := Triangulate(previous, current, true)
		if len(faces) != 2*n {
			t.Errorf("n=%d: got %d faces, want %d", n, len(faces), 2*n)
		}
	}
}

func TestTriangulateFaceCount(t *testing.T) {
	tests := []struct {
		name string
		m, n int // len(previous), len(current)
	}{
		{"equal", 8, 8},
		{"previous denser", 12, 5},
		{"current denser", 5, 12},
		{"very uneven", 40, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := ring(0, tt.m, 1, 0)
			current := ring(tt.m, tt.n, 1, 0.5)
			faces := Triangulate(previous, current, true)
			if len(faces) < max(tt.m, tt.n) || len(faces) > tt.m+tt.n {
				t.Errorf("got %d faces, want between %d and %d",
					len(faces), max(tt.m, tt.n), tt.m+tt.n)
			}
		})
	}
}

func TestTriangulateIDs(t *testing.T) {
	previous := ring(100, 6, 1, 0)
	current := ring(200, 9, 1, 0.4)
	faces := Triangulate(previous, current, true)

	valid := make(map[int]bool)
	for _, p := range previous {
		valid[p.ID] = true
	}
	for _, p := range current {
		valid[p.ID] = true
	}
	for _, f := range faces {
		for _, id := range f {
			if !valid[id] {
				t.Fatalf("face %v references unknown id %d", f, id)
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			t.Errorf("degenerate face %v", f)
		}
	}
}

func TestTriangulateOpen(t *testing.T) {
	// An open band leaves the seam unstitched: no face may connect the
	// last point of a row back to the first.
	previous := ring(0, 8, 1, 0)
	current := ring(8, 8, 1, 0.5)

	closed := Triangulate(previous, current, true)
	open := Triangulate(previous, current, false)
	if len(open) >= len(closed) {
		t.Errorf("open band has %d faces, closed has %d; want fewer", len(open), len(closed))
	}

	last, first := current[len(current)-1].ID, current[0].ID
	for _, f := range open {
		has := func(id int) bool { return f[0] == id || f[1] == id || f[2] == id }
		if has(last) && has(first) {
			t.Errorf("open band stitched the seam: face %v", f)
		}
	}
}

func TestTriangulateFan(t *testing.T) {
	// A previous row of length 1 degenerates into a fan covering the
	// whole ring.
	apex := Row{Pt(99, 0, 0, 1)}
	rim := ring(0, 12, 1, 0.5)
	faces := Triangulate(apex, rim, true)
	if len(faces) != 12 {
		t.Errorf("got %d faces, want 12", len(faces))
	}
	for _, f := range faces {
		if f[2] != 99 {
			t.Errorf("face %v does not end at the apex", f)
		}
	}
}

func TestTriangulateEmpty(t *testing.T) {
	if faces := Triangulate(nil, ring(0, 4, 1, 0), true); faces != nil {
		t.Errorf("got %v, want nil", faces)
	}
	if faces := Triangulate(ring(0, 4, 1, 0), nil, true); faces != nil {
		t.Errorf("got %v, want nil", faces)
	}
}

func TestTriangulateRows(t *testing.T) {
	rows := []Row{
		ring(0, 6, 1, -0.5),
		ring(6, 8, 1.2, 0),
		ring(14, 6, 1, 0.5),
	}
	faces := TriangulateRows(rows, true)

	want := len(Triangulate(rows[0], rows[1], true)) + len(Triangulate(rows[1], rows[2], true))
	if len(faces) != want {
		t.Errorf("got %d faces, want %d", len(faces), want)
	}
}

func TestInvert(t *testing.T) {
	faces := []Face{{0, 1, 2}, {3, 4, 5}, {1, 5, 2}}
	inverted := Invert(faces)
	for i, f := range inverted {
		want := Face{faces[i][0], faces[i][2], faces[i][1]}
		if f != want {
			t.Errorf("face %d: got %v, want %v", i, f, want)
		}
	}
	restored := Invert(inverted)
	for i, f := range restored {
		if f != faces[i] {
			t.Errorf("double inversion changed face %d: got %v, want %v", i, f, faces[i])
		}
	}
}

func TestBoundaryRow(t *testing.T) {
	// A disc-like patch scanned in horizontal rows: the rim points sit at
	// planar radius 1, the inner points well inside.
	inner := ring(0, 6, 0.3, 1)
	outer := ring(6, 12, 1, 0.9)
	rows := []Row{
		append(append(Row{}, outer[:4]...), inner[:3]...),
		append(append(Row{}, outer[4:8]...), inner[3:]...),
		append(Row{}, outer[8:]...),
	}

	// The default sample is the second row, a mix of rim and interior
	// points, so the mean planar radius falls between the two.
	rim := BoundaryRow(rows, nil)
	if len(rim) != len(outer) {
		t.Fatalf("got %d rim points, want %d", len(rim), len(outer))
	}
	for i := 1; i < len(rim); i++ {
		if rim[i-1].Theta() > rim[i].Theta() {
			t.Errorf("rim not sorted by azimuth at %d: %g > %g",
				i, rim[i-1].Theta(), rim[i].Theta())
		}
	}
	seen := make(map[int]bool)
	for _, p := range rim {
		seen[p.ID] = true
	}
	for _, p := range outer {
		if !seen[p.ID] {
			t.Errorf("rim misses point %d", p.ID)
		}
	}
}

func TestBoundaryRowEmpty(t *testing.T) {
	if rim := BoundaryRow(nil, nil); rim != nil {
		t.Errorf("got %v, want nil", rim)
	}
	if rim := BoundaryRow([]Row{ring(0, 4, 1, 0)}, nil); rim != nil {
		t.Errorf("single row without sample: got %v, want nil", rim)
	}
}
