package viewport

import (
	"log"
	"time"

	"github.com/milk9111/svgphysics/common"
)

// Surface is the drawable the coordinator resizes.
type Surface interface {
	SetCanvasSize(width, height float64)
}

// Walls is the boundary the coordinator moves to the new edges.
type Walls interface {
	RepositionWalls(vp common.Viewport)
}

// Coordinator applies the last signalled size once resizing settles. It
// only resizes the surface and moves walls; bodies keep their state.
type Coordinator struct {
	surface  Surface
	walls    Walls
	debounce *Debouncer

	size    common.Viewport
	current common.Viewport
	stopped bool
	verbose bool
}

func NewCoordinator(surface Surface, walls Walls, initial common.Viewport, delay time.Duration, now func() time.Time) *Coordinator {
	return &Coordinator{
		surface:  surface,
		walls:    walls,
		debounce: NewDebouncer(delay, now),
		size:     initial,
		current:  initial,
	}
}

// SetVerbose enables a log line per applied resize.
func (c *Coordinator) SetVerbose(v bool) {
	if c != nil {
		c.verbose = v
	}
}

// Signal records a new container size and restarts the quiet period.
func (c *Coordinator) Signal(width, height float64) {
	if c == nil || c.stopped {
		return
	}
	c.size = common.Viewport{Width: width, Height: height}
	c.debounce.Trigger()
}

// Poll applies the pending size when the quiet period has elapsed. It
// reports whether a resize was applied.
func (c *Coordinator) Poll() bool {
	if c == nil || c.stopped || !c.debounce.Poll() {
		return false
	}
	vp := c.size
	if vp.Empty() {
		return false
	}
	if c.surface != nil {
		c.surface.SetCanvasSize(vp.Width, vp.Height)
	}
	if c.walls != nil {
		c.walls.RepositionWalls(vp)
	}
	c.current = vp
	if c.verbose {
		log.Printf("ResizeCoordinator: applied %.0fx%.0f", vp.Width, vp.Height)
	}
	return true
}

// Viewport is the last applied size.
func (c *Coordinator) Viewport() common.Viewport {
	if c == nil {
		return common.Viewport{}
	}
	return c.current
}

// Stop cancels any pending resize; later signals are ignored.
func (c *Coordinator) Stop() {
	if c == nil {
		return
	}
	c.stopped = true
	c.debounce.Cancel()
}
