// Package globelia converts 2D raster maps into triangulated 3D models
// of planets and moons, suitable for 3D printing and visualization.
//
// # Overview
//
// A map image (mercator, mollweide, equirectangular...) is sampled into
// rings of points on a sphere whose radius is modulated by the elevations
// read from the image. The rings are then stitched into a watertight
// triangle mesh, optionally closed with polar caps or logo discs, and
// written as ply, stl or asc.
//
// # Quick Start
//
//	import "github.com/globelia/globelia"
//
//	mesh, err := globelia.Assemble(heights, globelia.Options{
//	    Sample: globelia.SampleOptions{
//	        Projection: globelia.Equirectangular,
//	        Scale:      0.02,
//	        Caps:       globelia.AutoCaps(),
//	    },
//	})
//	if err != nil {
//	    // ...
//	}
//	err = globelia.SavePLY("out.ply", mesh, globelia.PLYOptions{})
//
// # Coordinate System
//
// Spherical coordinates follow the convention:
//   - theta: azimuth, angle from the x axis to the projection of the
//     point in the xy plane (the longitude), in (-pi, pi]
//   - phi: elevation, angle from the xy plane to the point (the
//     latitude), in [-pi/2, pi/2]
//
// so that
//
//	x = r * cos(theta) * cos(phi)
//	y = r * sin(theta) * cos(phi)
//	z = r * sin(phi)
//
// # Architecture
//
// The library is organized into:
//   - Sampling: Projection, MapPoints, CapPoints, LogoPoints
//   - Triangulation: Triangulate, TriangulateRows, Invert
//   - Assembly: Assemble, which composes patches into one Mesh
//   - Output: WritePLY, WriteSTL, WriteASC and the Save variants
//   - Splitting: SplitByPlane and friends, for cutting a finished
//     stl mesh into printable hemispheres
//
// Image decoding and elevation-channel extraction live in
// internal/heightmap and are used by the commands under cmd/.
package globelia
