package shape

import (
	"image/color"
	"log"
	"strings"

	"github.com/milk9111/svgphysics/config"
	"github.com/milk9111/svgphysics/svgdoc"
	"golang.org/x/image/colornames"
)

// Cache holds the descriptors extracted from a document fragment. It is
// filled once per scene and read-only afterwards.
type Cache struct {
	descriptors []*Descriptor
}

func NewCache() *Cache {
	return &Cache{}
}

// Populate extracts every path below the element matching selector, in
// document order. It does nothing when the cache already holds descriptors.
// A selector that matches nothing leaves the cache empty. It returns the
// number of descriptors held afterwards.
func (c *Cache) Populate(doc *svgdoc.Document, selector string, cfg config.Config) int {
	if c == nil {
		return 0
	}
	if len(c.descriptors) > 0 {
		return len(c.descriptors)
	}

	root := doc.Query(selector)
	if root == nil {
		log.Printf("ShapeCache: source %q not found, continuing without shapes", selector)
		return 0
	}

	def := defaultFill(cfg.DefaultFill)
	paths := root.QueryAll("path")
	if root.Name == "path" {
		paths = append([]*svgdoc.Element{root}, paths...)
	}

	for _, el := range paths {
		d, _ := el.Attr("d")
		if strings.TrimSpace(d) == "" {
			continue
		}
		c.descriptors = append(c.descriptors, Describe(len(c.descriptors), el.ID(), d, el.ResolveFill(def), cfg))
	}

	if cfg.Debug.DevMode {
		log.Printf("ShapeCache: extracted %d shapes from %q", len(c.descriptors), selector)
	}
	return len(c.descriptors)
}

// Describe builds the descriptor for one outline.
func Describe(index int, id, d string, fill color.NRGBA, cfg config.Config) *Descriptor {
	cmds, err := ParsePath(ScalePath(d, cfg.Scale))
	if err != nil && cfg.Debug.DevMode {
		log.Printf("ShapeCache: path %d (%s): %v", index, id, err)
	}
	res := SimplifyCommands(cmds, cfg.Physics.VertexLimit)
	path := BuildPath(cmds)

	desc := &Descriptor{
		Index:      index,
		ID:         id,
		Hull:       res.Hull,
		Centroid:   res.Centroid,
		Fill:       fill,
		RenderPath: path,
		FillMesh:   FillMeshFor(path),
	}
	if outlineVisible(cfg.Outline) {
		desc.StrokeMesh = StrokeMeshFor(path, cfg.Outline.StrokeWidth)
	}
	return desc
}

// Descriptors returns the cached descriptors in document order.
func (c *Cache) Descriptors() []*Descriptor {
	if c == nil {
		return nil
	}
	out := make([]*Descriptor, len(c.descriptors))
	copy(out, c.descriptors)
	return out
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.descriptors)
}

// Release drops the descriptors.
func (c *Cache) Release() {
	if c == nil {
		return
	}
	c.descriptors = nil
}

func defaultFill(s string) color.NRGBA {
	if c, err := svgdoc.ParseColor(s); err == nil {
		return c
	}
	r, g, b, a := colornames.Black.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func outlineVisible(o config.Outline) bool {
	if o.StrokeWidth <= 0 {
		return false
	}
	c, err := svgdoc.ParseColor(o.Stroke)
	return err == nil && c.A > 0
}
