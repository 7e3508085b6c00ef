package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/svgphysics/common"
	"github.com/milk9111/svgphysics/config"
	"github.com/milk9111/svgphysics/shape"
)

var testViewport = common.Viewport{Width: 800, Height: 600}

func descriptor(i int, d string) *shape.Descriptor {
	res := shape.Simplify(d, 1, 100)
	return &shape.Descriptor{Index: i, Hull: res.Hull, Centroid: res.Centroid}
}

func sampleDescriptors() []*shape.Descriptor {
	return []*shape.Descriptor{
		descriptor(0, "M0 0 L100 0 L100 100 L0 100 Z"),
		descriptor(1, "M0 0 L10 10"),
		descriptor(2, "M200 0 L300 0 L250 80 Z"),
		descriptor(3, "M0 0 L2 0 L2 2 L0 2 Z"),
		descriptor(4, "M400 0 L500 0 L500 50 L400 50 Z"),
	}
}

func vecNear(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestCreateBodiesSkipsDegenerate(t *testing.T) {
	w := NewWorld(config.Default())
	descs := sampleDescriptors()

	if n := w.CreateBodies(descs, testViewport); n != 3 {
		t.Fatalf("expected 3 bodies, got %d", n)
	}

	wantIdx := []int{0, 2, 4}
	for i, b := range w.Bodies() {
		if b.Descriptor.Index != wantIdx[i] {
			t.Fatalf("body %d paired with descriptor %d, want %d", i, b.Descriptor.Index, wantIdx[i])
		}
		if b.Body.GetType() != cp.BODY_DYNAMIC {
			t.Fatalf("body %d is not dynamic", i)
		}
	}
}

func TestCreateBodiesCentresGroup(t *testing.T) {
	w := NewWorld(config.Default())
	descs := sampleDescriptors()
	w.CreateBodies(descs, testViewport)

	// union of all hulls is [0,500]x[0,100]
	want := cp.Vector{X: 400 - 250, Y: 300 - 50}
	if !vecNear(w.Offset(), want) {
		t.Fatalf("expected offset %v, got %v", want, w.Offset())
	}
	for _, b := range w.Bodies() {
		wantPos := b.Descriptor.Centroid.Add(want)
		if !vecNear(b.Position(), wantPos) {
			t.Fatalf("body %d at %v, want %v", b.Descriptor.Index, b.Position(), wantPos)
		}
	}
}

func TestCreateBodiesMinimumArea(t *testing.T) {
	cases := []struct {
		name    string
		minArea float64
		want    int
	}{
		{"default", 10, 3},
		{"zero_keeps_tiny", 0, 4},
		{"large_drops_small", 4500, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Physics.MinimumArea = c.minArea
			w := NewWorld(cfg)
			if n := w.CreateBodies(sampleDescriptors(), testViewport); n != c.want {
				t.Fatalf("expected %d bodies, got %d", c.want, n)
			}
		})
	}
}

func TestBodyProperties(t *testing.T) {
	cfg := config.Default()
	cfg.Physics.Restitution = 0.7
	cfg.Physics.Friction = 0.4
	w := NewWorld(cfg)
	w.CreateBodies(sampleDescriptors()[:1], testViewport)

	b := w.Bodies()[0]
	if b.Shape.Elasticity() != 0.7 || b.Shape.Friction() != 0.4 {
		t.Fatalf("unexpected material e=%v u=%v", b.Shape.Elasticity(), b.Shape.Friction())
	}
	wantMass := cfg.Physics.Density * 100 * 100
	if math.Abs(b.Body.Mass()-wantMass) > 1e-9 {
		t.Fatalf("expected mass %v, got %v", wantMass, b.Body.Mass())
	}
	if len(b.Hull()) != 4 {
		t.Fatalf("expected 4 hull vertices, got %d", len(b.Hull()))
	}
}

func TestEmptySourceStillHasWalls(t *testing.T) {
	w := NewWorld(config.Default())
	if n := w.CreateBodies(nil, testViewport); n != 0 {
		t.Fatalf("expected no bodies, got %d", n)
	}
	w.CreateWalls(testViewport)
	if len(w.Walls()) != 3 {
		t.Fatalf("expected 3 walls, got %d", len(w.Walls()))
	}
	if w.Offset() != (cp.Vector{}) {
		t.Fatalf("expected zero offset, got %v", w.Offset())
	}
}

func TestWallsBoundViewport(t *testing.T) {
	w := NewWorld(config.Default())
	w.CreateWalls(testViewport)

	cases := []struct {
		side Side
		pos  cp.Vector
		w, h float64
	}{
		{Floor, cp.Vector{X: 400, Y: 650}, 1000, 100},
		{LeftWall, cp.Vector{X: -50, Y: 300}, 100, 800},
		{RightWall, cp.Vector{X: 850, Y: 300}, 100, 800},
	}
	for i, c := range cases {
		wl := w.Walls()[i]
		if wl.Side != c.side {
			t.Fatalf("wall %d: expected %s, got %s", i, c.side, wl.Side)
		}
		if wl.Body.GetType() != cp.BODY_KINEMATIC {
			t.Fatalf("%s wall is not kinematic", wl.Side)
		}
		if !vecNear(wl.Position(), c.pos) {
			t.Fatalf("%s wall at %v, want %v", wl.Side, wl.Position(), c.pos)
		}
		gw, gh := wl.Size()
		if math.Abs(gw-c.w) > 1e-9 || math.Abs(gh-c.h) > 1e-9 {
			t.Fatalf("%s wall size %vx%v, want %vx%v", wl.Side, gw, gh, c.w, c.h)
		}
	}
}

func TestRepositionWallsLeavesBodies(t *testing.T) {
	w := NewWorld(config.Default())
	w.CreateBodies(sampleDescriptors(), testViewport)
	w.CreateWalls(testViewport)
	w.Start()
	for i := 0; i < 10; i++ {
		w.Tick()
	}
	w.Stop()

	type state struct{ p, v cp.Vector }
	before := make([]state, len(w.Bodies()))
	for i, b := range w.Bodies() {
		before[i] = state{b.Position(), b.Velocity()}
	}
	walls := append([]*Wall(nil), w.Walls()...)

	w.RepositionWalls(common.Viewport{Width: 1200, Height: 400})

	for i, b := range w.Bodies() {
		if b.Position() != before[i].p || b.Velocity() != before[i].v {
			t.Fatalf("body %d changed on resize", i)
		}
	}
	for i, wl := range w.Walls() {
		if wl != walls[i] {
			t.Fatalf("wall %d was recreated", i)
		}
	}
	floor := w.Walls()[0]
	if !vecNear(floor.Position(), cp.Vector{X: 600, Y: 450}) {
		t.Fatalf("floor at %v after resize", floor.Position())
	}
	if fw, _ := floor.Size(); fw != 1400 {
		t.Fatalf("floor width %v after resize, want 1400", fw)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	w := NewWorld(config.Default())
	w.CreateBodies(sampleDescriptors(), testViewport)
	w.CreateWalls(testViewport)

	w.Start()
	w.Start()
	if !w.Running() {
		t.Fatalf("expected running")
	}
	start := w.Bodies()[0].Position()
	w.Tick()
	if v := w.Bodies()[0].Velocity(); v.Y <= 0 {
		t.Fatalf("expected gravity to accelerate the body, velocity %v", v)
	}
	// positions integrate before velocities, so the first step only builds speed
	w.Tick()
	if w.Bodies()[0].Position() == start {
		t.Fatalf("expected gravity to move the body")
	}

	w.Stop()
	w.Stop()
	paused := w.Bodies()[0].Position()
	w.Tick()
	w.Tick()
	if w.Bodies()[0].Position() != paused {
		t.Fatalf("body moved while stopped")
	}
	w.Start()
	if w.Bodies()[0].Position() != paused {
		t.Fatalf("body moved on resume")
	}
}

func TestBodiesSettleOnFloor(t *testing.T) {
	w := NewWorld(config.Default())
	w.CreateBodies(sampleDescriptors(), testViewport)
	w.CreateWalls(testViewport)
	w.Start()
	for i := 0; i < 600; i++ {
		w.Tick()
	}
	for _, b := range w.Bodies() {
		p := b.Position()
		if p.Y > testViewport.Height || p.X < 0 || p.X > testViewport.Width {
			t.Fatalf("body %d escaped to %v", b.Descriptor.Index, p)
		}
	}
}

func TestDisposeIdempotent(t *testing.T) {
	w := NewWorld(config.Default())
	w.CreateBodies(sampleDescriptors(), testViewport)
	w.CreateWalls(testViewport)
	w.Start()
	space := w.Space()

	w.Dispose()
	w.Dispose()

	if !w.Disposed() || w.Running() {
		t.Fatalf("expected disposed, stopped world")
	}
	if w.Space() != nil || len(w.Bodies()) != 0 || len(w.Walls()) != 0 {
		t.Fatalf("expected resources released")
	}
	count := 0
	space.EachShape(func(*cp.Shape) { count++ })
	if count != 0 {
		t.Fatalf("expected no shapes left, got %d", count)
	}

	w.Start()
	w.Tick()
	w.RepositionWalls(testViewport)
	if w.Running() {
		t.Fatalf("disposed world restarted")
	}

	var nilWorld *World
	nilWorld.Dispose()
	nilWorld.Tick()
}

func TestCollisionFilters(t *testing.T) {
	reject := func(a, b cp.ShapeFilter) bool {
		return (a.Group != 0 && a.Group == b.Group) || a.Categories&b.Mask == 0 || b.Categories&a.Mask == 0
	}
	cases := []struct {
		name   string
		a, b   cp.ShapeFilter
		reject bool
	}{
		{"body_body", bodyFilter, bodyFilter, false},
		{"body_wall", bodyFilter, wallFilter, false},
		{"grab_body", grabFilter, bodyFilter, false},
		{"grab_wall", grabFilter, wallFilter, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := reject(c.a, c.b); got != c.reject {
				t.Fatalf("reject = %v, want %v", got, c.reject)
			}
		})
	}
	if grabbableMask&wallCategory != 0 || grabbableMask|wallCategory != cp.ALL_CATEGORIES {
		t.Fatalf("grabbable mask %b does not complement wall category", grabbableMask)
	}
}

func TestMouseConstraintGrab(t *testing.T) {
	x, y, pressed := 0.0, 0.0, false
	pointer := func() (float64, float64, bool) { return x, y, pressed }

	w := NewWorld(config.Default())
	w.CreateBodies(sampleDescriptors()[:1], testViewport)
	w.CreateWalls(testViewport)
	w.AttachMouseConstraint(testViewport, pointer, func() float64 { return 2 })
	w.Start()

	// body centred at (400,300) in world units; pointer is in device pixels
	x, y, pressed = 800, 600, true
	w.Tick()
	if !w.Dragging() {
		t.Fatalf("expected body to be grabbed")
	}

	pressed = false
	w.Tick()
	if w.Dragging() {
		t.Fatalf("expected release")
	}

	// 4 units from the left wall, which is not grabbable
	x, y, pressed = 8, 600, true
	w.Tick()
	if w.Dragging() {
		t.Fatalf("wall should not be grabbed")
	}
}

func TestMouseConstraintFollowsRatioChange(t *testing.T) {
	ratio := 1.0
	pressed := false
	pointer := func() (float64, float64, bool) { return 800, 600, pressed }

	w := NewWorld(config.Default())
	w.CreateBodies(sampleDescriptors()[:1], testViewport)
	w.AttachMouseConstraint(testViewport, pointer, func() float64 { return ratio })
	w.Start()

	// at ratio 1 the pointer is at the bottom-right corner, away from the body
	pressed = true
	w.Tick()
	if w.Dragging() {
		t.Fatalf("press at (800,600) should miss the body at ratio 1")
	}
	pressed = false
	w.Tick()

	// the window moved to a 2x monitor: the same device pixel is the body centre
	ratio = 2
	pressed = true
	w.Tick()
	if !w.Dragging() {
		t.Fatalf("expected grab after the ratio changed to 2")
	}
}

func TestMouseConstraintMissesEmptySpace(t *testing.T) {
	w := NewWorld(config.Default())
	w.CreateBodies(sampleDescriptors()[:1], testViewport)
	w.AttachMouseConstraint(testViewport, func() (float64, float64, bool) { return 10, 10, true }, nil)
	w.Start()
	w.Tick()
	if w.Dragging() {
		t.Fatalf("press over empty space should not grab")
	}
}
