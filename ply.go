package globelia

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PLYOptions configures the ply writer.
type PLYOptions struct {
	// ASCII writes the vertex and face blocks as text instead of
	// binary little-endian.
	ASCII bool

	// Invert flips the orientation of every face.
	Invert bool
}

// WritePLY writes the mesh as a ply file. Vertices are written in id
// order, so the vertex index in the file equals the point id; faces
// reference vertices by that index. When the mesh carries colors, one
// uchar RGBA quadruple is written per vertex.
func WritePLY(w io.Writer, m *Mesh, opt PLYOptions) error {
	m.check()

	bw := bufio.NewWriter(w)
	writeHeader(bw, m, opt.ASCII)

	if opt.ASCII {
		for i, p := range m.Points {
			fmt.Fprintf(bw, "%g %g %g", p.X, p.Y, p.Z)
			if m.Colors != nil {
				c := m.Colors[i]
				fmt.Fprintf(bw, " %d %d %d %d", c.R, c.G, c.B, c.A)
			}
			fmt.Fprintln(bw)
		}
	} else {
		for i, p := range m.Points {
			writeBinary(bw, [3]float32{float32(p.X), float32(p.Y), float32(p.Z)})
			if m.Colors != nil {
				c := m.Colors[i]
				writeBinary(bw, [4]uint8{c.R, c.G, c.B, c.A})
			}
		}
	}

	for _, f := range m.Faces {
		if opt.Invert {
			f = Face{f[0], f[2], f[1]}
		}
		if opt.ASCII {
			fmt.Fprintf(bw, "3 %d %d %d\n", f[0], f[1], f[2])
		} else {
			writeBinary(bw, struct {
				N uint8
				V [3]int32
			}{3, [3]int32{int32(f[0]), int32(f[1]), int32(f[2])}})
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("globelia: write ply: %w", err)
	}
	return nil
}

// writeHeader writes the ply header for the mesh.
func writeHeader(w io.Writer, m *Mesh, ascii bool) {
	format := "binary_little_endian"
	if ascii {
		format = "ascii"
	}
	fmt.Fprintf(w, "ply\nformat %s 1.0\ncomment made by globelia\n", format)
	fmt.Fprintf(w, "element vertex %d\n", len(m.Points))
	fmt.Fprint(w, "property float x\nproperty float y\nproperty float z\n")
	if m.Colors != nil {
		fmt.Fprint(w, "property uchar red\nproperty uchar green\n"+
			"property uchar blue\nproperty uchar alpha\n")
	}
	fmt.Fprintf(w, "element face %d\n", len(m.Faces))
	fmt.Fprint(w, "property list uchar int vertex_index\nend_header\n")
}

// writeBinary writes v little-endian into a bufio.Writer. Write errors
// surface at Flush time.
func writeBinary(bw *bufio.Writer, v any) {
	_ = binary.Write(bw, binary.LittleEndian, v)
}

// SavePLY writes the mesh to a ply file at the given path.
func SavePLY(path string, m *Mesh, opt PLYOptions) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("globelia: save ply: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := WritePLY(f, m, opt); err != nil {
		return err
	}
	return f.Close()
}
