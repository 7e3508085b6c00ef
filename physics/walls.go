package physics

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/svgphysics/common"
)

type Side int

const (
	Floor Side = iota
	LeftWall
	RightWall
)

func (s Side) String() string {
	switch s {
	case Floor:
		return "floor"
	case LeftWall:
		return "left"
	case RightWall:
		return "right"
	}
	return "unknown"
}

// Wall is a kinematic box bounding one edge of the viewport. Walls are moved
// and resized in place, never recreated.
type Wall struct {
	Side  Side
	Body  *cp.Body
	Shape *cp.Shape
}

func (wl *Wall) Position() cp.Vector {
	if wl == nil || wl.Body == nil {
		return cp.Vector{}
	}
	return wl.Body.Position()
}

// Size returns the width and height of the wall box.
func (wl *Wall) Size() (float64, float64) {
	if wl == nil || wl.Shape == nil {
		return 0, 0
	}
	poly, ok := wl.Shape.Class.(*cp.PolyShape)
	if !ok {
		return 0, 0
	}
	bb, _ := boundsOf(poly)
	return bb.R - bb.L, bb.T - bb.B
}

func boundsOf(poly *cp.PolyShape) (cp.BB, bool) {
	n := poly.Count()
	if n == 0 {
		return cp.BB{}, false
	}
	v := poly.Vert(0)
	bb := cp.BB{L: v.X, R: v.X, B: v.Y, T: v.Y}
	for i := 1; i < n; i++ {
		bb = bb.Expand(poly.Vert(i))
	}
	return bb, true
}

// wallRect returns the centre and size of side for vp. Each wall sits just
// outside the visible area and overshoots it by common.WallMargin.
func wallRect(side Side, vp common.Viewport) (cp.Vector, float64, float64) {
	t := common.WallThickness
	m := common.WallMargin
	switch side {
	case Floor:
		return cp.Vector{X: vp.Width / 2, Y: vp.Height + t/2}, vp.Width + 2*m, t
	case LeftWall:
		return cp.Vector{X: -t / 2, Y: vp.Height / 2}, t, vp.Height + 2*m
	default:
		return cp.Vector{X: vp.Width + t/2, Y: vp.Height / 2}, t, vp.Height + 2*m
	}
}

func boxVerts(w, h float64) []cp.Vector {
	hw, hh := w/2, h/2
	return []cp.Vector{
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
		{X: -hw, Y: -hh},
	}
}

// CreateWalls adds the floor, left and right walls for vp. Calling it again
// repositions the existing walls instead.
func (w *World) CreateWalls(vp common.Viewport) {
	if w == nil || w.disposed {
		return
	}
	if len(w.walls) > 0 {
		w.RepositionWalls(vp)
		return
	}

	for _, side := range []Side{Floor, LeftWall, RightWall} {
		center, width, height := wallRect(side, vp)
		body := w.space.AddBody(cp.NewKinematicBody())
		body.SetPosition(center)

		s := w.space.AddShape(cp.NewBox(body, width, height, 0))
		s.SetElasticity(w.cfg.Physics.Restitution)
		s.SetFriction(w.cfg.Physics.Friction)
		s.SetFilter(wallFilter)

		w.walls = append(w.walls, &Wall{Side: side, Body: body, Shape: s})
	}
}

// RepositionWalls moves and resizes the walls to bound vp and narrows
// pointer grabs to it. Dynamic bodies are not touched.
func (w *World) RepositionWalls(vp common.Viewport) {
	if w == nil || w.disposed {
		return
	}
	if w.mouse != nil {
		w.mouse.bounds = vp
	}
	for _, wl := range w.walls {
		center, width, height := wallRect(wl.Side, vp)
		wl.Body.SetPosition(center)
		if poly, ok := wl.Shape.Class.(*cp.PolyShape); ok {
			poly.SetVertsRaw(4, boxVerts(width, height))
		}
		wl.Shape.CacheBB()
	}
	if w.cfg.Debug.DevMode {
		log.Printf("World: walls moved to %.0fx%.0f", vp.Width, vp.Height)
	}
}
