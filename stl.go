package globelia

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/geo/r3"
)

// Triangle is one stl triangle, three vertices in winding order. The
// normal is not stored: globelia always writes zero normals and readers
// are expected to derive them from the winding, as slicers do.
type Triangle [3]r3.Vector

// stlRecordSize is the size of one binary stl triangle record: a 3-float
// normal, three 3-float vertices and a 2-byte attribute count.
const stlRecordSize = 4*3*4 + 2

// stlHeaderSize is the 80-byte header plus the 4-byte triangle count.
const stlHeaderSize = 80 + 4

// Errors returned by the stl reader.
var (
	// ErrTriangleCount means the triangle count declared in the header
	// is inconsistent with the file size. ReadSTL reports it before any
	// processing; pass force to process the declared count anyway.
	ErrTriangleCount = errors.New("globelia: stl triangle count does not match file size")

	// ErrTruncatedSTL means the file ended in the middle of a triangle
	// record.
	ErrTruncatedSTL = errors.New("globelia: truncated stl record")
)

// WriteSTL writes the mesh as a binary stl file: an empty 80-byte header,
// the triangle count, and one 50-byte record per face with zero normal
// and attribute bytes.
func WriteSTL(w io.Writer, m *Mesh, invert bool) error {
	m.check()

	tris := make([]Triangle, 0, len(m.Faces))
	for _, f := range m.Faces {
		if invert {
			f = Face{f[0], f[2], f[1]}
		}
		tris = append(tris, Triangle{
			m.Points[f[0]].Vec(),
			m.Points[f[1]].Vec(),
			m.Points[f[2]].Vec(),
		})
	}
	return WriteSTLTriangles(w, tris)
}

// WriteSTLTriangles writes raw triangles as a binary stl file.
func WriteSTLTriangles(w io.Writer, tris []Triangle) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	_, _ = bw.Write(header[:])
	writeBinary(bw, uint32(len(tris)))

	for _, t := range tris {
		writeBinary(bw, [3]float32{}) // normal vector (empty)
		for _, v := range t {
			writeBinary(bw, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
		}
		writeBinary(bw, uint16(0)) // attribute byte count (empty)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("globelia: write stl: %w", err)
	}
	return nil
}

// SaveSTL writes the mesh to a binary stl file at the given path.
func SaveSTL(path string, m *Mesh, invert bool) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("globelia: save stl: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteSTL(f, m, invert); err != nil {
		return err
	}
	return f.Close()
}

// SaveSTLTriangles writes raw triangles to a binary stl file at the given
// path.
func SaveSTLTriangles(path string, tris []Triangle) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("globelia: save stl: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteSTLTriangles(f, tris); err != nil {
		return err
	}
	return f.Close()
}

// ReadSTL reads a binary stl file. Before reading any triangle it checks
// that the declared triangle count matches the file size, failing with
// ErrTriangleCount unless force is set. A file that ends mid-record fails
// with ErrTruncatedSTL.
func ReadSTL(path string, force bool) ([]Triangle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("globelia: read stl: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("globelia: read stl: %w", err)
	}
	return ReadSTLFrom(f, info.Size(), force)
}

// ReadSTLFrom reads a binary stl stream of the given total size. See
// ReadSTL.
func ReadSTLFrom(r io.Reader, size int64, force bool) ([]Triangle, error) {
	var header struct {
		H    [80]byte
		NTri uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("globelia: read stl header: %w", err)
	}

	n := int64(header.NTri)
	if want := stlHeaderSize + n*stlRecordSize; size != want && !force {
		return nil, fmt.Errorf("%w: %d triangles declared, %d bytes (expected %d)",
			ErrTriangleCount, n, size, want)
	}

	tris := make([]Triangle, 0, n)
	buf := make([]byte, stlRecordSize)
	for i := int64(0); i < n; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: record %d of %d", ErrTruncatedSTL, i, n)
		}
		var t Triangle
		for v := 0; v < 3; v++ {
			const start = 3 * 4 // skip the normal
			off := start + v*12
			t[v] = r3.Vector{
				X: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))),
				Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:]))),
				Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off+8:]))),
			}
		}
		tris = append(tris, t)
	}
	return tris, nil
}
