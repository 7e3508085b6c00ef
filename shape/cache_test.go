package shape

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/svgphysics/config"
	"github.com/milk9111/svgphysics/svgdoc"
)

const sample = `<html>
<div id="stage" width="800" height="600"></div>
<svg id="source">
  <g fill="#ff0000">
    <path id="first" d="M0 0 L100 0 L100 100 L0 100 Z"/>
    <path id="second" style="fill: #00ff00" d="M200 0 L300 0 L250 80 Z"/>
  </g>
  <path id="empty" d="  "/>
  <path id="third" d="M400 0 L500 0 L500 50"/>
  <path id="line" d="M0 0 L10 10"/>
</svg>
</html>`

func mustDoc(t *testing.T) *svgdoc.Document {
	t.Helper()
	doc, err := svgdoc.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestCachePopulateDocumentOrder(t *testing.T) {
	c := NewCache()
	n := c.Populate(mustDoc(t), "#source", config.Default())
	if n != 4 {
		t.Fatalf("expected 4 descriptors, got %d", n)
	}

	wantIDs := []string{"first", "second", "third", "line"}
	for i, d := range c.Descriptors() {
		if d.Index != i {
			t.Fatalf("descriptor %d has index %d", i, d.Index)
		}
		if d.ID != wantIDs[i] {
			t.Fatalf("descriptor %d: expected id %q, got %q", i, wantIDs[i], d.ID)
		}
	}
}

func TestCachePopulateFills(t *testing.T) {
	c := NewCache()
	c.Populate(mustDoc(t), "#source", config.Default())
	ds := c.Descriptors()

	cases := []struct {
		idx  int
		want color.NRGBA
	}{
		{0, color.NRGBA{R: 255, A: 255}},
		{1, color.NRGBA{G: 255, A: 255}},
		{2, color.NRGBA{A: 255}},
	}
	for _, tc := range cases {
		if got := ds[tc.idx].Fill; got != tc.want {
			t.Fatalf("descriptor %d: expected fill %v, got %v", tc.idx, tc.want, got)
		}
	}
}

func TestCachePopulateIsIdempotent(t *testing.T) {
	doc := mustDoc(t)
	c := NewCache()
	c.Populate(doc, "#source", config.Default())
	first := c.Descriptors()

	if n := c.Populate(doc, "svg path", config.Default()); n != len(first) {
		t.Fatalf("second populate changed count: %d -> %d", len(first), n)
	}
	for i, d := range c.Descriptors() {
		if d != first[i] {
			t.Fatalf("descriptor %d was rebuilt", i)
		}
	}
}

func TestCachePopulateMissingSource(t *testing.T) {
	c := NewCache()
	if n := c.Populate(mustDoc(t), "#nope", config.Default()); n != 0 {
		t.Fatalf("expected empty cache, got %d", n)
	}
	if c.Len() != 0 {
		t.Fatalf("expected Len 0, got %d", c.Len())
	}
}

func TestCacheDegenerateDescriptorsKept(t *testing.T) {
	c := NewCache()
	c.Populate(mustDoc(t), "#source", config.Default())
	ds := c.Descriptors()
	if ds[0].Degenerate() {
		t.Fatalf("square should not be degenerate")
	}
	if !ds[3].Degenerate() {
		t.Fatalf("line should be degenerate")
	}
	if ds[0].FillMesh.Empty() {
		t.Fatalf("square should have a fill mesh")
	}
	if !ds[0].StrokeMesh.Empty() {
		t.Fatalf("stroke mesh should be empty when outline is disabled")
	}
}

func TestCacheScale(t *testing.T) {
	cfg := config.Default()
	cfg.Scale = 2
	c := NewCache()
	c.Populate(mustDoc(t), "#source", cfg)
	d := c.Descriptors()[0]
	if !near(d.Centroid, cp.Vector{X: 100, Y: 100}, 1e-9) {
		t.Fatalf("expected scaled centroid (100,100), got %v", d.Centroid)
	}
}

func TestCacheStrokeMesh(t *testing.T) {
	cfg := config.Default()
	cfg.Outline.Stroke = "#123456"
	cfg.Outline.StrokeWidth = 2
	c := NewCache()
	c.Populate(mustDoc(t), "#source", cfg)
	if c.Descriptors()[0].StrokeMesh.Empty() {
		t.Fatalf("expected stroke mesh with a visible outline")
	}
}

func TestCacheRelease(t *testing.T) {
	c := NewCache()
	c.Populate(mustDoc(t), "#source", config.Default())
	c.Release()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after release")
	}

	var nilCache *Cache
	nilCache.Release()
	if nilCache.Len() != 0 || nilCache.Descriptors() != nil {
		t.Fatalf("nil cache should be empty")
	}
}
