// Command stlsplit cuts a binary stl mesh by a z-plane into two meshes,
// one per hemisphere, so each half can be printed flat.
//
// Triangles that straddle the plane are re-tiled so both halves end flush
// with it, unless -discard-border routes them to a separate file instead.
// With -number the mesh is split by running triangle index, with no
// geometric cutting at all.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/globelia/globelia"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("stlsplit: ")

	var (
		zcut          = flag.String("zcut", "0", `z of the cut plane (or "auto" for the vertex mean)`)
		discardBorder = flag.Bool("discard-border", false,
			"write straddling triangles to a separate file instead of re-tiling them")
		number = flag.Int("number", 0,
			"split after the given number of triangles instead of cutting by a plane")
		name  = flag.String("name", "", "base name of the output files (default: the input without extension)")
		force = flag.Bool("force", false,
			"process even if the declared triangle count does not match the file size")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: stlsplit [options] <file.stl>")
	}
	stlPath := flag.Arg(0)

	tris, err := globelia.ReadSTL(stlPath, *force)
	if err != nil {
		log.Fatal(err)
	}
	if len(tris) == 0 {
		log.Fatalf("no triangles in %s", stlPath)
	}

	base := *name
	if base == "" {
		base = strings.TrimSuffix(stlPath, ".stl")
	}

	if *number > 0 {
		first, rest := globelia.SplitByCount(tris, *number)
		save(base+"_1.stl", first)
		save(base+"_2.stl", rest)
		return
	}

	cut := 0.0
	if *zcut == "auto" {
		cut = globelia.AutoZCut(tris)
		fmt.Printf("Cutting at z = %g\n", cut)
	} else {
		if cut, err = strconv.ParseFloat(*zcut, 64); err != nil {
			log.Fatalf(`zcut must be "auto" or a number, got %q`, *zcut)
		}
	}

	if *discardBorder {
		north, south, border := globelia.SplitDiscardingBorder(tris, cut)
		save(base+"_north.stl", north)
		save(base+"_south.stl", south)
		save(base+"_border.stl", border)
		return
	}

	north, south := globelia.SplitByPlane(tris, cut)
	save(base+"_north.stl", north)
	save(base+"_south.stl", south)
}

func save(path string, tris []globelia.Triangle) {
	if err := globelia.SaveSTLTriangles(path, tris); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Written %s (%d triangles)\n", path, len(tris))
}
