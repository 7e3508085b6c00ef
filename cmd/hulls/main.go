// Command hulls prints, as YAML, the shapes a document yields and whether
// each one becomes a body. It runs without opening a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/svgphysics/assets"
	"github.com/milk9111/svgphysics/common"
	"github.com/milk9111/svgphysics/config"
	"github.com/milk9111/svgphysics/physics"
	"github.com/milk9111/svgphysics/shape"
	"gopkg.in/yaml.v3"
)

type point [2]float64

type shapeReport struct {
	Index    int     `yaml:"index"`
	ID       string  `yaml:"id,omitempty"`
	Fill     string  `yaml:"fill"`
	Vertices int     `yaml:"vertices"`
	Area     float64 `yaml:"area"`
	Centroid point   `yaml:"centroid,flow"`
	Body     bool    `yaml:"body"`
	Hull     []point `yaml:"hull,omitempty,flow"`
}

type report struct {
	Source   string        `yaml:"source"`
	Viewport point         `yaml:"viewport,flow"`
	Offset   point         `yaml:"offset,flow"`
	Bodies   int           `yaml:"bodies"`
	Shapes   []shapeReport `yaml:"shapes"`
}

func main() {
	svgPath := flag.String("svg", "", "SVG document (defaults to the embedded demo)")
	configPath := flag.String("config", "", "YAML config overlaid on the defaults")
	source := flag.String("source", "#logo", "selector of the element whose paths are read")
	width := flag.Float64("w", common.BaseWidth, "viewport width")
	height := flag.Float64("h", common.BaseHeight, "viewport height")
	verbose := flag.Bool("v", false, "include hull vertices")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("hulls: using default config: %v", err)
	}
	doc, err := assets.LoadDocument(*svgPath)
	if err != nil {
		log.Fatal(err)
	}

	cache := shape.NewCache()
	cache.Populate(doc, *source, cfg)
	descs := cache.Descriptors()

	vp := common.Viewport{Width: *width, Height: *height}
	world := physics.NewWorld(cfg)
	defer world.Dispose()
	world.CreateBodies(descs, vp)

	out := buildReport(*source, vp, world, descs, *verbose)
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
	_ = enc.Close()
}

func buildReport(source string, vp common.Viewport, world *physics.World, descs []*shape.Descriptor, verbose bool) report {
	withBody := make(map[int]bool)
	for _, b := range world.Bodies() {
		withBody[b.Descriptor.Index] = true
	}

	off := world.Offset()
	r := report{
		Source:   source,
		Viewport: point{vp.Width, vp.Height},
		Offset:   point{off.X, off.Y},
		Bodies:   len(world.Bodies()),
	}
	for _, d := range descs {
		sr := shapeReport{
			Index:    d.Index,
			ID:       d.ID,
			Fill:     fmt.Sprintf("#%02x%02x%02x%02x", d.Fill.R, d.Fill.G, d.Fill.B, d.Fill.A),
			Vertices: len(d.Hull),
			Centroid: point{d.Centroid.X, d.Centroid.Y},
			Body:     withBody[d.Index],
		}
		if len(d.Hull) >= 3 {
			sr.Area = math.Abs(cp.AreaForPoly(len(d.Hull), d.Hull, 0))
		}
		if verbose {
			for _, v := range d.Hull {
				sr.Hull = append(sr.Hull, point{v.X, v.Y})
			}
		}
		r.Shapes = append(r.Shapes, sr)
	}
	return r
}
