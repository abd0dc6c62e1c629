// Command paintmap paints an image with a map over the surface of a
// sphere.
//
// It takes maps from jpg, png, and so on, and writes ply (polygon) files
// whose vertices carry the colors of the map, instead of extruding the
// elevations.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/globelia/globelia"
	"github.com/globelia/globelia/internal/heightmap"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("paintmap: ")

	var (
		output       = flag.String("output", "", "output file (if empty, it is generated from the image file name)")
		overwrite    = flag.Bool("overwrite", false, "do not check if the output file already exists")
		projection   = flag.String("projection", "mercator", "projection used in the map")
		points       = flag.Int("points", 0, "maximum number of points to use (or 0 to use all in the image)")
		noRatioCheck = flag.Bool("no-ratio-check", false, "do not fix the height/width ratio for certain projections")
		fixGaps      = flag.Bool("fix-gaps", false, "try to fill the gaps in the map")
		ascii        = flag.Bool("ascii", false, "write the resulting ply file in ascii")
		quiet        = flag.Bool("quiet", false, "do not report progress")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: paintmap [options] <image>")
	}
	if !*quiet {
		globelia.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	imagePath := flag.Arg(0)
	proj, err := globelia.ParseProjection(*projection)
	if err != nil {
		log.Fatal(err)
	}

	out := *output
	if out == "" {
		out = withExtension(imagePath, "ply")
	}
	if !*overwrite {
		if _, err := os.Stat(out); err == nil {
			log.Fatalf("file %s already exists (use -overwrite)", out)
		}
	}

	img, err := heightmap.Load(imagePath)
	if err != nil {
		log.Fatal(err)
	}
	if *fixGaps {
		img = heightmap.FillDark(img)
	}
	if !*noRatioCheck {
		img = heightmap.FixRatio(img, proj)
	}

	mesh, err := globelia.AssemblePainted(heightmap.Colors(img), proj, *points)
	if err != nil {
		log.Fatal(err)
	}
	if err := globelia.SavePLY(out, mesh, globelia.PLYOptions{ASCII: *ascii}); err != nil {
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
