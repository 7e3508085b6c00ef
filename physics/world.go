// Package physics owns the cp space a scene simulates in: one dynamic body per
// usable shape descriptor, three kinematic walls around the viewport and an
// optional pointer drag constraint.
package physics

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/svgphysics/common"
	"github.com/milk9111/svgphysics/config"
)

// World wraps a cp space and its runner state. It is not safe for concurrent
// use; every call is expected on the game loop goroutine.
type World struct {
	cfg   config.Config
	space *cp.Space

	bodies []*Body
	walls  []*Wall
	mouse  *mouseConstraint

	offset   cp.Vector
	running  bool
	disposed bool
}

// NewWorld creates an empty, stopped world.
func NewWorld(cfg config.Config) *World {
	cfg = cfg.Normalize()

	space := cp.NewSpace()
	space.Iterations = cfg.Physics.Iterations()
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Physics.Gravity})

	return &World{cfg: cfg, space: space}
}

// Space returns the underlying cp space, or nil once disposed.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Bodies returns the live bodies in creation order. The slice is shared and
// must not be modified.
func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	return w.bodies
}

func (w *World) Walls() []*Wall {
	if w == nil {
		return nil
	}
	return w.walls
}

// Offset is the group centring offset applied by CreateBodies.
func (w *World) Offset() cp.Vector {
	if w == nil {
		return cp.Vector{}
	}
	return w.offset
}

// Start resumes stepping. Calling it while running is a no-op.
func (w *World) Start() {
	if w == nil || w.disposed {
		return
	}
	w.running = true
}

// Stop halts stepping without touching body state. Calling it while stopped
// is a no-op.
func (w *World) Stop() {
	if w == nil {
		return
	}
	w.running = false
}

func (w *World) Running() bool {
	return w != nil && w.running && !w.disposed
}

func (w *World) Disposed() bool {
	return w == nil || w.disposed
}

// Tick advances the space by one fixed step when running. The pointer drag
// is updated first so the joint pulls with this frame's pointer.
func (w *World) Tick() {
	if !w.Running() {
		return
	}
	if w.mouse != nil {
		w.mouse.update(w.space)
	}
	w.space.Step(common.FixedStep)
}

// Dispose removes every constraint, shape and body from the space and
// releases it. The world is unusable afterwards; calling Dispose again does
// nothing.
func (w *World) Dispose() {
	if w == nil || w.disposed {
		return
	}
	w.running = false
	w.disposed = true

	if w.space != nil {
		var constraints []*cp.Constraint
		w.space.EachConstraint(func(c *cp.Constraint) {
			constraints = append(constraints, c)
		})
		for _, c := range constraints {
			w.space.RemoveConstraint(c)
		}

		var shapes []*cp.Shape
		w.space.EachShape(func(s *cp.Shape) {
			shapes = append(shapes, s)
		})
		for _, s := range shapes {
			w.space.RemoveShape(s)
		}

		var bodies []*cp.Body
		w.space.EachBody(func(b *cp.Body) {
			if b != w.space.StaticBody {
				bodies = append(bodies, b)
			}
		})
		for _, b := range bodies {
			w.space.RemoveBody(b)
		}
	}

	if w.cfg.Debug.DevMode {
		log.Printf("World: disposed %d bodies and %d walls", len(w.bodies), len(w.walls))
	}

	w.space = nil
	w.bodies = nil
	w.walls = nil
	w.mouse = nil
}
