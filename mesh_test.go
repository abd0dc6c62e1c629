package globelia

import (
	"image/color"
	"testing"
)

func TestNewGridPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewGrid with a short slice should panic")
		}
	}()
	NewGrid(3, 3, make([]float64, 8))
}

func TestGridAt(t *testing.T) {
	g := NewGrid(3, 2, []float64{0, 1, 2, 3, 4, 5})
	tests := []struct {
		i, j int
		want float64
	}{
		{0, 0, 0}, {2, 0, 2}, {0, 1, 3}, {2, 1, 5},
	}
	for _, tt := range tests {
		if got := g.At(tt.i, tt.j); got != tt.want {
			t.Errorf("At(%d, %d) = %g, want %g", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestGridMinMax(t *testing.T) {
	g := NewGrid(2, 2, []float64{3, -1, 7, 0})
	min, max := g.MinMax()
	if min != -1 || max != 7 {
		t.Errorf("MinMax() = %g, %g, want -1, 7", min, max)
	}
}

func TestMeshCheckPanics(t *testing.T) {
	tests := []struct {
		name string
		mesh *Mesh
	}{
		{"id out of order", &Mesh{Points: []Point{Pt(1, 0, 0, 0)}}},
		{"face out of range", &Mesh{
			Points: []Point{Pt(0, 0, 0, 0)},
			Faces:  []Face{{0, 0, 1}},
		}},
		{"colors mismatch", &Mesh{
			Points: []Point{Pt(0, 0, 0, 0), Pt(1, 0, 0, 1)},
			Colors: []color.NRGBA{{A: 255}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("check() should panic")
				}
			}()
			tt.mesh.check()
		})
	}
}

func TestMeshAddRows(t *testing.T) {
	m := &Mesh{}
	m.AddRows([]Row{ring(0, 4, 1, 0), ring(4, 4, 1, 0.5)})
	m.AddFaces([]Face{{0, 1, 5}})
	if len(m.Points) != 8 || len(m.Faces) != 1 {
		t.Errorf("got %d points, %d faces, want 8, 1", len(m.Points), len(m.Faces))
	}
	m.check()
}
