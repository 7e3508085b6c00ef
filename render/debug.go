package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugLineWidth      = 1
)

var hullColor = toNRGBA(colornames.Limegreen)

type line struct {
	x0, y0, x1, y1 float32
}

// hullDrawer collects the outlines cp.DrawShape emits, already transformed
// by the camera, and strokes them in one pass.
type hullDrawer struct {
	camera ebiten.GeoM
	lines  []line
}

func (d *hullDrawer) reset(camera ebiten.GeoM) {
	d.camera = camera
	d.lines = d.lines[:0]
}

func (d *hullDrawer) flush(screen *ebiten.Image) {
	for _, l := range d.lines {
		vector.StrokeLine(screen, l.x0, l.y0, l.x1, l.y1, debugLineWidth, hullColor, true)
	}
}

func (d *hullDrawer) drawLine(a, b cp.Vector) {
	x0, y0 := d.camera.Apply(a.X, a.Y)
	x1, y1 := d.camera.Apply(b.X, b.Y)
	d.lines = append(d.lines, line{float32(x0), float32(y0), float32(x1), float32(y1)})
}

func (d *hullDrawer) drawPolygon(verts []cp.Vector) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)])
	}
}

func (d *hullDrawer) drawCircle(center cp.Vector, radius float64) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points)
}

func (d *hullDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius)
}

func (d *hullDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b)
}

func (d *hullDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b)
}

func (d *hullDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count])
}

func (d *hullDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {}

func (d *hullDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *hullDrawer) OutlineColor() cp.FColor {
	return toFColor(hullColor)
}

func (d *hullDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{}
}

func (d *hullDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{}
}

func (d *hullDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{}
}

func (d *hullDrawer) Data() interface{} {
	return nil
}

func toFColor(c color.NRGBA) cp.FColor {
	return cp.FColor{
		R: float32(c.R) / 0xff,
		G: float32(c.G) / 0xff,
		B: float32(c.B) / 0xff,
		A: float32(c.A) / 0xff,
	}
}
