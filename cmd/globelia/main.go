// Command globelia converts images with maps into 3D files.
//
// It takes maps from jpg, png, tiff... files and writes ply (polygons),
// stl (triangles) or asc (point cloud) files with a sphere containing the
// elevations deduced from the map at each point. The output can then be
// manipulated with programs like MeshLab or Blender, or printed.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/globelia/globelia"
	"github.com/globelia/globelia/internal/heightmap"
)

type options struct {
	Output          string   `yaml:"output"`
	Overwrite       bool     `yaml:"overwrite"`
	Type            string   `yaml:"type"`
	Channel         string   `yaml:"channel"`
	Invert          bool     `yaml:"invert"`
	Projection      string   `yaml:"projection"`
	Points          int      `yaml:"points"`
	Scale           float64  `yaml:"scale"`
	Caps            string   `yaml:"caps"`
	CapsHeight      float64  `yaml:"caps-height"`
	Protrusion      float64  `yaml:"protrusion"`
	LogoNorth       string   `yaml:"logo-north"`
	LogoSouth       string   `yaml:"logo-south"`
	LogoNorthScale  float64  `yaml:"logo-north-scale"`
	LogoSouthScale  float64  `yaml:"logo-south-scale"`
	MeridiansPos    string   `yaml:"meridians-pos"`
	MeridiansWidths string   `yaml:"meridians-widths"`
	MeridiansHeight float64  `yaml:"meridians-height"`
	EquatorWidth    float64  `yaml:"equator-width"`
	EquatorHeight   float64  `yaml:"equator-height"`
	NoRatioCheck    bool     `yaml:"no-ratio-check"`
	FixGaps         bool     `yaml:"fix-gaps"`
	Blur            int      `yaml:"blur"`
	ASCII           bool     `yaml:"ascii"`
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("globelia: ")

	opt := options{
		Type:           "ply",
		Channel:        "val",
		Projection:     "mercator",
		Scale:          0.02,
		Caps:           "auto",
		Protrusion:     1.02,
		LogoNorthScale: 1,
		LogoSouthScale: 1,
	}

	flag.StringVar(&opt.Output, "output", opt.Output,
		"output file (if empty, it is generated from the image file name)")
	flag.BoolVar(&opt.Overwrite, "overwrite", opt.Overwrite,
		"do not check if the output file already exists")
	flag.StringVar(&opt.Type, "type", opt.Type, "type of 3D file to generate (ply, stl, asc)")
	flag.StringVar(&opt.Channel, "channel", opt.Channel,
		"channel with the elevation information (r, g, b, average, hue, sat, val, color)")
	flag.BoolVar(&opt.Invert, "invert", opt.Invert, "invert the elevations")
	flag.StringVar(&opt.Projection, "projection", opt.Projection,
		"projection used in the map (mercator, central-cylindrical, mollweide, "+
			"equirectangular, sinusoidal, half-sphere)")
	flag.IntVar(&opt.Points, "points", opt.Points,
		"maximum number of points to use (or 0 to use all in the image)")
	flag.Float64Var(&opt.Scale, "scale", opt.Scale,
		"fraction of the radius between the lowest and highest elevation")
	flag.StringVar(&opt.Caps, "caps", opt.Caps,
		"angle (in degrees) where the caps end (or auto or none)")
	flag.Float64Var(&opt.CapsHeight, "caps-height", opt.CapsHeight,
		"radius of the caps (0 to derive it from the protrusion)")
	flag.Float64Var(&opt.Protrusion, "protrusion", opt.Protrusion,
		"fraction that raised features protrude over the highest elevation")
	flag.StringVar(&opt.LogoNorth, "logo-north", opt.LogoNorth, "image file with the north logo")
	flag.StringVar(&opt.LogoSouth, "logo-south", opt.LogoSouth, "image file with the south logo")
	flag.Float64Var(&opt.LogoNorthScale, "logo-north-scale", opt.LogoNorthScale,
		"scale of the north logo relief (negative to engrave)")
	flag.Float64Var(&opt.LogoSouthScale, "logo-south-scale", opt.LogoSouthScale,
		"scale of the south logo relief (negative to engrave)")
	flag.StringVar(&opt.MeridiansPos, "meridians-pos", opt.MeridiansPos,
		"comma-separated longitudes (in degrees) of meridians to raise")
	flag.StringVar(&opt.MeridiansWidths, "meridians-widths", opt.MeridiansWidths,
		"comma-separated widths (in degrees) of the raised meridians")
	flag.Float64Var(&opt.MeridiansHeight, "meridians-height", opt.MeridiansHeight,
		"radius of the meridians at the equator (0 to derive it from the protrusion)")
	flag.Float64Var(&opt.EquatorWidth, "equator-width", opt.EquatorWidth,
		"angular width (in degrees) of a raised equator band (0 for none)")
	flag.Float64Var(&opt.EquatorHeight, "equator-height", opt.EquatorHeight,
		"radius of the raised equator band")
	flag.BoolVar(&opt.NoRatioCheck, "no-ratio-check", opt.NoRatioCheck,
		"do not fix the height/width ratio for certain projections")
	flag.BoolVar(&opt.FixGaps, "fix-gaps", opt.FixGaps, "try to fill the gaps in the map")
	flag.IntVar(&opt.Blur, "blur", opt.Blur, "radius of a blur applied to the elevations")
	flag.BoolVar(&opt.ASCII, "ascii", opt.ASCII, "write the resulting ply file in ascii")
	configPath := flag.String("config", "", "yaml file with options (command-line flags win)")
	quiet := flag.Bool("quiet", false, "do not report progress")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: globelia [options] <image>")
	}
	if !*quiet {
		globelia.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	if *configPath != "" {
		if err := loadConfig(*configPath, &opt); err != nil {
			log.Fatal(err)
		}
	}

	if err := run(flag.Arg(0), opt); err != nil {
		log.Fatal(err)
	}
}

// loadConfig overlays the yaml file onto opt, then re-applies the flags
// that were explicitly given on the command line so they win. The flag
// values must be captured before the overlay, because the flags are bound
// to the very fields the yaml overwrites.
func loadConfig(path string, opt *options) error {
	given := map[string]string{}
	flag.Visit(func(f *flag.Flag) {
		given[f.Name] = f.Value.String()
	})

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, opt); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for name, value := range given {
		if err := flag.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func run(imagePath string, opt options) error {
	caps, err := globelia.ParseCaps(opt.Caps) // fail early on bad caps
	if err != nil {
		return err
	}
	proj, err := globelia.ParseProjection(opt.Projection)
	if err != nil {
		return err
	}
	channel, err := heightmap.ParseChannel(opt.Channel)
	if err != nil {
		return err
	}
	meridians, err := parseMeridians(opt.MeridiansPos, opt.MeridiansWidths)
	if err != nil {
		return err
	}

	output := opt.Output
	if output == "" {
		output = withExtension(imagePath, opt.Type)
	}
	if !opt.Overwrite {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("file %s already exists (use -overwrite)", output)
		}
	}

	img, err := heightmap.Load(imagePath)
	if err != nil {
		return err
	}
	if opt.FixGaps {
		img = heightmap.FillDark(img)
	}
	if !opt.NoRatioCheck {
		img = heightmap.FixRatio(img, proj)
	}

	heights := heightmap.Heights(img, channel)
	if opt.Invert {
		heights = heightmap.Invert(heights)
	}
	heights = heightmap.Blur(heights, opt.Blur)

	// These projections already reach the poles; closing them with
	// automatic caps would only cover the map.
	if (proj == globelia.Mollweide || proj == globelia.Sinusoidal) && caps.Mode == globelia.CapAuto {
		caps = globelia.NoCaps()
	}

	protrusion := opt.Protrusion * (1 + opt.Scale/2)
	capHeight := opt.CapsHeight
	if capHeight == 0 {
		capHeight = protrusion
	}
	meridianHeight := opt.MeridiansHeight
	if meridianHeight == 0 {
		meridianHeight = protrusion
	}

	assembleOpt := globelia.Options{
		Sample: globelia.SampleOptions{
			Projection:     proj,
			Points:         opt.Points,
			Scale:          opt.Scale,
			Caps:           caps,
			CapHeight:      capHeight,
			Meridians:      meridians,
			MeridianHeight: meridianHeight,
			EquatorWidth:   opt.EquatorWidth * math.Pi / 180,
			EquatorHeight:  opt.EquatorHeight,
		},
		LogoNorthScale: opt.LogoNorthScale,
		LogoSouthScale: opt.LogoSouthScale,
	}
	if opt.LogoNorth != "" {
		if assembleOpt.LogoNorth, err = loadLogo(opt.LogoNorth); err != nil {
			return err
		}
	}
	if opt.LogoSouth != "" {
		if assembleOpt.LogoSouth, err = loadLogo(opt.LogoSouth); err != nil {
			return err
		}
	}

	switch opt.Type {
	case "asc":
		rows, err := globelia.AssemblePoints(heights, assembleOpt)
		if err != nil {
			return err
		}
		err = globelia.SaveASC(output, rows)
		if err != nil {
			return err
		}
	case "ply", "stl":
		mesh, err := globelia.Assemble(heights, assembleOpt)
		if err != nil {
			return err
		}
		if opt.Type == "ply" {
			err = globelia.SavePLY(output, mesh, globelia.PLYOptions{ASCII: opt.ASCII})
		} else {
			err = globelia.SaveSTL(output, mesh, false)
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output type %q (want ply, stl or asc)", opt.Type)
	}

	fmt.Printf("The output is in file %s\n", output)
	return nil
}

// loadLogo reads a logo image as an intensity grid.
func loadLogo(path string) (*globelia.Grid, error) {
	img, err := heightmap.Load(path)
	if err != nil {
		return nil, err
	}
	return heightmap.Heights(img, heightmap.Val), nil
}

// parseMeridians builds the meridian list from the comma-separated
// longitude and width lists, both in degrees. A missing width defaults to
// 1 degree.
func parseMeridians(positions, widths string) ([]globelia.Meridian, error) {
	if positions == "" {
		return nil, nil
	}
	pos, err := parseFloats(positions)
	if err != nil {
		return nil, fmt.Errorf("meridians-pos: %w", err)
	}
	var ws []float64
	if widths != "" {
		if ws, err = parseFloats(widths); err != nil {
			return nil, fmt.Errorf("meridians-widths: %w", err)
		}
		if len(ws) != len(pos) {
			return nil, fmt.Errorf("got %d meridian widths for %d positions", len(ws), len(pos))
		}
	}
	meridians := make([]globelia.Meridian, len(pos))
	for i, p := range pos {
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		meridians[i] = globelia.Meridian{
			Pos:   p * math.Pi / 180,
			Width: w * math.Pi / 180,
		}
	}
	return meridians, nil
}

func parseFloats(list string) ([]float64, error) {
	var vs []float64
	for _, s := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// withExtension replaces the extension of the file name.
func withExtension(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i > 0 {
		path = path[:i]
	}
	return path + "." + ext
}
