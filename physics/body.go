package physics

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/svgphysics/common"
	"github.com/milk9111/svgphysics/shape"
)

const (
	wallCategory  = uint(1) << 31
	grabbableMask = ^uint(0) &^ wallCategory
)

// Walls and bodies collide with everything; pointer queries only see bodies.
var (
	bodyFilter = cp.NewShapeFilter(cp.NO_GROUP, grabbableMask, cp.ALL_CATEGORIES)
	wallFilter = cp.NewShapeFilter(cp.NO_GROUP, wallCategory, cp.ALL_CATEGORIES)
	grabFilter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, grabbableMask)
)

// Body is one simulated shape. Its local origin is the descriptor centroid,
// so Position is where the centroid sits in the world.
type Body struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Descriptor *shape.Descriptor
}

func (b *Body) Position() cp.Vector {
	if b == nil || b.Body == nil {
		return cp.Vector{}
	}
	return b.Body.Position()
}

func (b *Body) Angle() float64 {
	if b == nil || b.Body == nil {
		return 0
	}
	return b.Body.Angle()
}

func (b *Body) Velocity() cp.Vector {
	if b == nil || b.Body == nil {
		return cp.Vector{}
	}
	return b.Body.Velocity()
}

// Hull returns the collision polygon in world coordinates.
func (b *Body) Hull() []cp.Vector {
	if b == nil || b.Shape == nil {
		return nil
	}
	poly, ok := b.Shape.Class.(*cp.PolyShape)
	if !ok {
		return nil
	}
	out := make([]cp.Vector, poly.Count())
	for i := range out {
		out[i] = b.Body.LocalToWorld(poly.Vert(i))
	}
	return out
}

// GroupOffset returns the translation that centres the union bounding box of
// every descriptor hull in vp.
func GroupOffset(descs []*shape.Descriptor, vp common.Viewport) cp.Vector {
	var union cp.BB
	found := false
	for _, d := range descs {
		if d == nil {
			continue
		}
		bb, ok := shape.Bounds(d.Hull)
		if !ok {
			continue
		}
		if !found {
			union = bb
			found = true
			continue
		}
		union = union.Merge(bb)
	}
	if !found {
		return cp.Vector{}
	}
	center := union.Center()
	return cp.Vector{X: vp.Width/2 - center.X, Y: vp.Height/2 - center.Y}
}

// CreateBodies adds one dynamic body per usable descriptor, all shifted by a
// single offset that centres the group in vp. Descriptors whose hull has
// fewer than three vertices or less than the configured minimum area after
// re-hulling get no body. It returns the number of bodies created.
func (w *World) CreateBodies(descs []*shape.Descriptor, vp common.Viewport) int {
	if w == nil || w.disposed {
		return 0
	}

	w.offset = GroupOffset(descs, vp)
	p := w.cfg.Physics

	created := 0
	for _, d := range descs {
		if d == nil {
			continue
		}
		hull := shape.Hull(d.Hull, p.SimplifyTolerance)
		area := 0.0
		if len(hull) >= 3 {
			area = math.Abs(cp.AreaForPoly(len(hull), hull, 0))
		}
		if len(hull) < 3 || area < p.MinimumArea || area == 0 {
			if w.cfg.Debug.DevMode {
				log.Printf("World: skipping shape %d (%s): %d vertices, area %.2f", d.Index, d.ID, len(hull), area)
			}
			continue
		}

		local := make([]cp.Vector, len(hull))
		for i, v := range hull {
			local[i] = v.Sub(d.Centroid)
		}

		mass := p.Density * area
		moment := cp.MomentForPoly(mass, len(local), local, cp.Vector{}, 0)
		body := w.space.AddBody(cp.NewBody(mass, moment))
		body.SetPosition(d.Centroid.Add(w.offset))

		s := w.space.AddShape(cp.NewPolyShapeRaw(body, len(local), local, 0))
		s.SetElasticity(p.Restitution)
		s.SetFriction(p.Friction)
		s.SetFilter(bodyFilter)

		w.bodies = append(w.bodies, &Body{Body: body, Shape: s, Descriptor: d})
		created++
	}

	if w.cfg.Debug.DevMode {
		log.Printf("World: created %d bodies from %d shapes", created, len(descs))
	}
	return created
}
