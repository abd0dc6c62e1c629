// Command polygonize creates a file of polygons (ply or stl) from one
// with only 3D points (asc).
//
// The asc file must have its points in the order that corresponds to the
// sections of a quasi-spherical object, the way globelia writes them.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/globelia/globelia"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("polygonize: ")

	var (
		output    = flag.String("output", "", "output file (if empty, it is generated from the asc file name)")
		overwrite = flag.Bool("overwrite", false, "do not check if the output file already exists")
		ftype     = flag.String("type", "ply", "type of 3D file to generate (ply, stl)")
		ascii     = flag.Bool("ascii", false, "write the resulting ply file in ascii")
		invert    = flag.Bool("invert", false, "invert the orientation of the faces")
		rowLength = flag.Int("row-length", 0, "number of points per row (or 0 to autodetect)")
		open      = flag.Bool("open", false, "do not close the rings at the seam")
		quiet     = flag.Bool("quiet", false, "do not report progress")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: polygonize [options] <file.asc>")
	}
	if !*quiet {
		globelia.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	ascPath := flag.Arg(0)
	out := *output
	if out == "" {
		out = withExtension(ascPath, *ftype)
	}
	if !*overwrite {
		if _, err := os.Stat(out); err == nil {
			log.Fatalf("file %s already exists (use -overwrite)", out)
		}
	}

	f, err := os.Open(ascPath)
	if err != nil {
		log.Fatal(err)
	}
	points, err := globelia.ReadASC(f)
	_ = f.Close()
	if err != nil {
		log.Fatal(err)
	}
	if len(points) == 0 {
		log.Fatalf("no points in %s", ascPath)
	}

	rows := globelia.SplitRows(points, *rowLength)
	faces := globelia.TriangulateRows(rows, !*open)

	mesh := &globelia.Mesh{}
	mesh.AddRows(rows)
	mesh.AddFaces(faces)

	switch *ftype {
	case "ply":
		err = globelia.SavePLY(out, mesh, globelia.PLYOptions{ASCII: *ascii, Invert: *invert})
	case "stl":
		err = globelia.SaveSTL(out, mesh, *invert)
	default:
		log.Fatalf("unknown output type %q (want ply or stl)", *ftype)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("The output is in file %s\n", out)
}

// withExtension replaces the extension of the file name.
func withExtension(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i > 0 {
		path = path[:i]
	}
	return path + "." + ext
}
