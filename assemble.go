package globelia

import (
	"errors"
	"math"
)

// Options configures the assembly of a complete figure: the map body plus
// polar caps or logo discs.
type Options struct {
	// Sample configures the sampling of the map body.
	Sample SampleOptions

	// LogoNorth and LogoSouth, when set, replace the polar caps with
	// azimuthal projections of the given (square) intensity grids.
	LogoNorth, LogoSouth *Grid

	// LogoNorthScale and LogoSouthScale scale the logo relief. Zero
	// means 1; negative engraves the logo instead of embossing it.
	LogoNorthScale, LogoSouthScale float64
}

// ErrNoPoints is returned when sampling produces no points at all, e.g.
// for an empty grid or a cap policy that excludes the whole map.
var ErrNoPoints = errors.New("globelia: no points sampled from the map")

// Assemble samples the height grid and composes the map body, the caps or
// logos, and the stitching between them into one consistent mesh. Point
// ids are assigned by a single counter in pipeline order: north cap or
// logo, map body, south cap or logo. Patch boundaries are stitched by
// triangulating across the shared boundary rows exactly once, reusing the
// existing ids, so no duplicate points are created.
func Assemble(heights *Grid, opt Options) (*Mesh, error) {
	mesh, _, err := assemble(heights, opt, true)
	return mesh, err
}

// AssemblePoints is Assemble without the triangulation: it returns the
// sampled rows of every patch in pipeline order, preserving the row
// grouping that the asc format records for later re-triangulation.
func AssemblePoints(heights *Grid, opt Options) ([]Row, error) {
	_, rows, err := assemble(heights, opt, false)
	return rows, err
}

func assemble(heights *Grid, opt Options, faces bool) (*Mesh, []Row, error) {
	if heights == nil || len(heights.V) == 0 {
		return nil, nil, ErrNoPoints
	}
	opt.Sample = opt.Sample.withDefaults()
	if opt.LogoNorthScale == 0 {
		opt.LogoNorthScale = 1
	}
	if opt.LogoSouthScale == 0 {
		opt.LogoSouthScale = 1
	}

	inv := opt.Sample.Projection.Inverse(heights.W, heights.H)
	phiCap := opt.Sample.phiCap(inv)
	capHeight := opt.Sample.CapHeight
	wantCaps := opt.Sample.Caps.Mode != CapNone && phiCap < math.Pi/2-1e-9

	alloc := NewAllocator(0)
	mesh := &Mesh{}
	var all []Row

	addPatch := func(rows []Row) {
		mesh.AddRows(rows)
		all = append(all, rows...)
		if faces {
			mesh.AddFaces(TriangulateRows(rows, true))
		}
	}

	// Logo / north cap.
	var northRim Row
	switch {
	case opt.LogoNorth != nil:
		Logger().Info("adding north logo")
		rows := LogoPoints(opt.LogoNorth, phiCap, capHeight, opt.LogoNorthScale, alloc)
		addPatch(rows)
		northRim = BoundaryRow(rows, nil)
	case wantCaps:
		Logger().Info("adding north cap")
		rows := CapPoints(capHeight, phiCap, alloc)
		addPatch(rows)
		northRim = rows[len(rows)-1]
	}

	// Map body.
	Logger().Info("adding map")
	mapRows := MapPoints(heights, alloc, opt.Sample)
	if len(mapRows) == 0 {
		return nil, nil, ErrNoPoints
	}
	if northRim != nil && faces {
		mesh.AddFaces(Triangulate(northRim, mapRows[0], true))
	}
	addPatch(mapRows)
	lastMapRow := mapRows[len(mapRows)-1]

	// Logo / south cap.
	switch {
	case opt.LogoSouth != nil:
		Logger().Info("adding south logo")
		rows := LogoPoints(opt.LogoSouth, -phiCap, capHeight, opt.LogoSouthScale, alloc)
		if faces {
			mesh.AddFaces(Triangulate(lastMapRow, BoundaryRow(rows, nil), true))
		}
		addPatch(rows)
	case wantCaps:
		Logger().Info("adding south cap")
		rows := CapPoints(capHeight, -phiCap, alloc)
		if faces {
			mesh.AddFaces(Triangulate(lastMapRow, rows[0], true))
		}
		addPatch(rows)
	}

	mesh.check()
	return mesh, all, nil
}

// AssemblePainted builds a colored unit-sphere mesh from a color grid:
// points are sampled like the map body at radius 1, triangulated the same
// way, and each point carries the color of its source pixel.
func AssemblePainted(colors *ColorGrid, proj Projection, target int) (*Mesh, error) {
	if colors == nil || len(colors.Pix) == 0 {
		return nil, ErrNoPoints
	}
	alloc := NewAllocator(0)
	rows, pointColors := PaintPoints(colors, alloc, proj, target)
	if len(rows) == 0 {
		return nil, ErrNoPoints
	}
	mesh := &Mesh{Colors: pointColors}
	mesh.AddRows(rows)
	mesh.AddFaces(TriangulateRows(rows, true))
	mesh.check()
	return mesh, nil
}
