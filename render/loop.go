// Package render paints a physics world every frame: each body's cached
// outline mesh at the body's live transform, plus an optional hull overlay.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/svgphysics/config"
	"github.com/milk9111/svgphysics/physics"
	"github.com/milk9111/svgphysics/shape"
	"github.com/milk9111/svgphysics/svgdoc"
	"golang.org/x/image/colornames"
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily created 1x1 white image used as the
// source for untextured meshes.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// Loop draws the bodies of a world. It keeps no timer; the host calls Draw
// once per frame.
type Loop struct {
	world *physics.World

	background    color.NRGBA
	stroke        color.NRGBA
	strokeVisible bool

	showBoundingBoxes bool

	vertices []ebiten.Vertex
	drawer   *hullDrawer
}

func NewLoop(world *physics.World, cfg config.Config) *Loop {
	l := &Loop{
		world:             world,
		background:        toNRGBA(colornames.White),
		showBoundingBoxes: cfg.Debug.ShowBoundingBoxes,
		drawer:            &hullDrawer{},
	}
	if bg, err := svgdoc.ParseColor(cfg.Background); err == nil {
		l.background = bg
	}
	if c, err := svgdoc.ParseColor(cfg.Outline.Stroke); err == nil && c.A > 0 && cfg.Outline.StrokeWidth > 0 {
		l.stroke = c
		l.strokeVisible = true
	}
	return l
}

func (l *Loop) ShowBoundingBoxes() bool {
	return l != nil && l.showBoundingBoxes
}

func (l *Loop) SetShowBoundingBoxes(show bool) {
	if l == nil {
		return
	}
	l.showBoundingBoxes = show
}

// ToggleBoundingBoxes flips the hull overlay and returns the new state.
func (l *Loop) ToggleBoundingBoxes() bool {
	if l == nil {
		return false
	}
	l.showBoundingBoxes = !l.showBoundingBoxes
	return l.showBoundingBoxes
}

// Draw clears screen and paints every body with camera applied last.
func (l *Loop) Draw(screen *ebiten.Image, camera ebiten.GeoM) {
	if l == nil || screen == nil {
		return
	}
	screen.Fill(l.background)

	bodies := l.world.Bodies()
	if len(bodies) == 0 {
		return
	}

	src := ensureWhitePixel()
	op := &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.FillRuleNonZero,
		AntiAlias: true,
	}
	for _, b := range bodies {
		d := b.Descriptor
		if d == nil {
			continue
		}
		geo := BodyGeoM(d.Centroid, b.Position(), b.Angle(), camera)

		if !d.FillMesh.Empty() && d.Fill.A > 0 {
			l.vertices = appendMesh(l.vertices[:0], d.FillMesh, geo, d.Fill)
			screen.DrawTriangles(l.vertices, d.FillMesh.Indices, src, op)
		}
		if l.strokeVisible && !d.StrokeMesh.Empty() {
			l.vertices = appendMesh(l.vertices[:0], d.StrokeMesh, geo, l.stroke)
			screen.DrawTriangles(l.vertices, d.StrokeMesh.Indices, src, op)
		}
	}

	if l.showBoundingBoxes {
		l.drawer.reset(camera)
		for _, b := range bodies {
			if b.Shape != nil {
				cp.DrawShape(b.Shape, l.drawer)
			}
		}
		l.drawer.flush(screen)
	}
}

// BodyGeoM maps descriptor space to screen space: the centroid is moved to
// the origin, rotated by angle, placed at pos and finally transformed by
// camera.
func BodyGeoM(centroid, pos cp.Vector, angle float64, camera ebiten.GeoM) ebiten.GeoM {
	var geo ebiten.GeoM
	geo.Translate(-centroid.X, -centroid.Y)
	geo.Rotate(angle)
	geo.Translate(pos.X, pos.Y)
	geo.Concat(camera)
	return geo
}

// appendMesh appends m's vertices to dst, transformed by geo and tinted clr.
func appendMesh(dst []ebiten.Vertex, m shape.Mesh, geo ebiten.GeoM, clr color.NRGBA) []ebiten.Vertex {
	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff
	for _, v := range m.Vertices {
		x, y := geo.Apply(float64(v.DstX), float64(v.DstY))
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	return dst
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
