package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/svgphysics/common"
)

// grabRadius is how far from a shape, in world units, a press still grabs it.
const grabRadius = 5.0

// PointerFunc reports the pointer position in device pixels and whether the
// primary button is held.
type PointerFunc func() (x, y float64, pressed bool)

// RatioFunc reports the current device pixels per world unit.
type RatioFunc func() float64

// mouseConstraint drags bodies with a pivot joint between a kinematic body
// that follows the pointer and the grabbed body. It is never drawn.
type mouseConstraint struct {
	pointer    PointerFunc
	pixelRatio RatioFunc
	bounds     common.Viewport
	stiffness  float64
	maxForce   float64

	body    *cp.Body
	joint   *cp.Constraint
	pressed bool
}

// AttachMouseConstraint binds body dragging to pointer. Pointer coordinates
// are divided by the ratio pixelRatio reports on every tick, so moving the
// window between monitors keeps pointer and drawing aligned. A nil
// pixelRatio means 1. Presses outside vp do not grab.
func (w *World) AttachMouseConstraint(vp common.Viewport, pointer PointerFunc, pixelRatio RatioFunc) {
	if w == nil || w.disposed || pointer == nil {
		return
	}
	w.mouse = &mouseConstraint{
		pointer:    pointer,
		pixelRatio: pixelRatio,
		bounds:     vp,
		stiffness:  w.cfg.MouseConstraint.Stiffness,
		maxForce:   w.cfg.MouseConstraint.MaxForce,
		body:       cp.NewKinematicBody(),
	}
}

// Dragging reports whether a body is currently held by the pointer.
func (w *World) Dragging() bool {
	return w != nil && w.mouse != nil && w.mouse.joint != nil
}

func (m *mouseConstraint) ratio() float64 {
	if m.pixelRatio == nil {
		return 1
	}
	if r := m.pixelRatio(); r > 0 {
		return r
	}
	return 1
}

func (m *mouseConstraint) position() cp.Vector {
	x, y, _ := m.pointer()
	r := m.ratio()
	return cp.Vector{X: x / r, Y: y / r}
}

func (m *mouseConstraint) inBounds(p cp.Vector) bool {
	if m.bounds.Empty() {
		return true
	}
	return p.X >= 0 && p.Y >= 0 && p.X <= m.bounds.Width && p.Y <= m.bounds.Height
}

func (m *mouseConstraint) update(space *cp.Space) {
	_, _, pressed := m.pointer()
	target := m.position()

	// Ease the mouse body towards the pointer and give it the matching
	// velocity so the joint does not see a teleport.
	current := m.body.Position()
	next := current.Lerp(target, 0.25)
	m.body.SetVelocityVector(next.Sub(current).Mult(common.TPS))
	m.body.SetPosition(next)

	switch {
	case pressed && !m.pressed:
		m.body.SetPosition(target)
		m.body.SetVelocityVector(cp.Vector{})
		m.grab(space, target)
	case !pressed && m.pressed:
		m.release(space)
	}
	m.pressed = pressed
}

func (m *mouseConstraint) grab(space *cp.Space, p cp.Vector) {
	if m.joint != nil || !m.inBounds(p) {
		return
	}
	info := space.PointQueryNearest(p, grabRadius, grabFilter)
	if info == nil || info.Shape == nil {
		return
	}
	body := info.Shape.Body()
	if body == nil || body.GetType() != cp.BODY_DYNAMIC || math.IsInf(body.Mass(), 1) {
		return
	}

	nearest := p
	if info.Distance > 0 {
		nearest = info.Point
	}
	m.joint = cp.NewPivotJoint2(m.body, body, cp.Vector{}, body.WorldToLocal(nearest))
	m.joint.SetMaxForce(m.maxForce)
	m.joint.SetErrorBias(math.Pow(1-m.stiffness, common.TPS))
	space.AddConstraint(m.joint)
}

func (m *mouseConstraint) release(space *cp.Space) {
	if m.joint == nil {
		return
	}
	if space.ContainsConstraint(m.joint) {
		space.RemoveConstraint(m.joint)
	}
	m.joint = nil
}
