package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/svgphysics/common"
	"github.com/milk9111/svgphysics/config"
	"github.com/milk9111/svgphysics/physics"
	"github.com/milk9111/svgphysics/shape"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestBodyGeoM(t *testing.T) {
	var scale2 ebiten.GeoM
	scale2.Scale(2, 2)

	cases := []struct {
		name     string
		centroid cp.Vector
		pos      cp.Vector
		angle    float64
		camera   ebiten.GeoM
		in       cp.Vector
		want     cp.Vector
	}{
		{"centroid_lands_on_position", cp.Vector{X: 10, Y: 20}, cp.Vector{X: 100, Y: 50}, 0, ebiten.GeoM{}, cp.Vector{X: 10, Y: 20}, cp.Vector{X: 100, Y: 50}},
		{"offset_point", cp.Vector{X: 10, Y: 20}, cp.Vector{X: 100, Y: 50}, 0, ebiten.GeoM{}, cp.Vector{X: 15, Y: 20}, cp.Vector{X: 105, Y: 50}},
		{"quarter_turn", cp.Vector{}, cp.Vector{X: 100, Y: 100}, math.Pi / 2, ebiten.GeoM{}, cp.Vector{X: 10, Y: 0}, cp.Vector{X: 100, Y: 110}},
		{"camera_last", cp.Vector{X: 5, Y: 5}, cp.Vector{X: 50, Y: 60}, 0, scale2, cp.Vector{X: 5, Y: 5}, cp.Vector{X: 100, Y: 120}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			geo := BodyGeoM(c.centroid, c.pos, c.angle, c.camera)
			x, y := geo.Apply(c.in.X, c.in.Y)
			if !approx(x, c.want.X) || !approx(y, c.want.Y) {
				t.Fatalf("expected (%v,%v), got (%v,%v)", c.want.X, c.want.Y, x, y)
			}
		})
	}
}

func TestAppendMesh(t *testing.T) {
	m := shape.Mesh{
		Vertices: []ebiten.Vertex{{DstX: 0, DstY: 0}, {DstX: 10, DstY: 0}, {DstX: 0, DstY: 10}},
		Indices:  []uint16{0, 1, 2},
	}
	var geo ebiten.GeoM
	geo.Translate(5, 7)

	out := appendMesh(nil, m, geo, color.NRGBA{R: 255, G: 0, B: 51, A: 255})
	if len(out) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(out))
	}
	if out[1].DstX != 15 || out[1].DstY != 7 {
		t.Fatalf("unexpected transformed vertex %+v", out[1])
	}
	if out[0].ColorR != 1 || out[0].ColorG != 0 || out[0].ColorA != 1 || !approx(float64(out[0].ColorB), 0.2) {
		t.Fatalf("unexpected vertex colour %+v", out[0])
	}
	if m.Vertices[1].DstX != 10 {
		t.Fatalf("source mesh was modified")
	}
}

func TestHullDrawerCollectsOutlines(t *testing.T) {
	w := physics.NewWorld(config.Default())
	res := shape.Simplify("M0 0 L100 0 L100 100 L0 100 Z", 1, 100)
	w.CreateBodies([]*shape.Descriptor{{Hull: res.Hull, Centroid: res.Centroid}}, common.Viewport{Width: 200, Height: 200})

	var camera ebiten.GeoM
	camera.Scale(2, 2)
	d := &hullDrawer{}
	d.reset(camera)
	cp.DrawShape(w.Bodies()[0].Shape, d)

	if len(d.lines) != 4 {
		t.Fatalf("expected 4 hull edges, got %d", len(d.lines))
	}
	for _, l := range d.lines {
		for _, v := range []float32{l.x0, l.y0, l.x1, l.y1} {
			if v != 100 && v != 300 {
				t.Fatalf("edge %+v not on the scaled hull", l)
			}
		}
	}

	d.reset(ebiten.GeoM{})
	if len(d.lines) != 0 {
		t.Fatalf("reset should drop collected edges")
	}
}

func TestToggleBoundingBoxes(t *testing.T) {
	cfg := config.Default()
	cfg.Debug.ShowBoundingBoxes = true
	l := NewLoop(nil, cfg)
	if !l.ShowBoundingBoxes() {
		t.Fatalf("expected overlay from config")
	}
	if l.ToggleBoundingBoxes() {
		t.Fatalf("expected overlay off after toggle")
	}
	l.SetShowBoundingBoxes(true)
	if !l.ShowBoundingBoxes() {
		t.Fatalf("expected overlay on")
	}

	var nilLoop *Loop
	if nilLoop.ToggleBoundingBoxes() {
		t.Fatalf("nil loop should report false")
	}
}

func TestNewLoopStroke(t *testing.T) {
	cases := []struct {
		name    string
		stroke  string
		width   float64
		visible bool
	}{
		{"default_none", "none", 0, false},
		{"zero_width", "#ff0000", 0, false},
		{"transparent", "transparent", 2, false},
		{"visible", "#ff0000", 2, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Outline.Stroke = c.stroke
			cfg.Outline.StrokeWidth = c.width
			if got := NewLoop(nil, cfg).strokeVisible; got != c.visible {
				t.Fatalf("expected visible=%v, got %v", c.visible, got)
			}
		})
	}
}
