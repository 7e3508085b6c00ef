// Package svgphysics turns the path elements of an SVG document into rigid
// bodies that fall and settle inside the canvas, and exposes the scene's
// lifecycle: Pause, Resume and Destroy.
package svgphysics

import (
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/svgphysics/common"
	"github.com/milk9111/svgphysics/config"
	"github.com/milk9111/svgphysics/physics"
	"github.com/milk9111/svgphysics/render"
	"github.com/milk9111/svgphysics/shape"
	"github.com/milk9111/svgphysics/stage"
	"github.com/milk9111/svgphysics/svgdoc"
	"github.com/milk9111/svgphysics/viewport"
)

// DefaultSourceSelector is used when Options.SourceSelector is empty.
const DefaultSourceSelector = "svg"

// Host is the rendering collaborator a scene attaches to. *stage.Stage
// implements it.
type Host interface {
	OnFrame(f stage.Frame) func()
	OnResize(fn stage.ResizeFunc) func()
	OnKeyDown(fn stage.KeyDownFunc) func()
	SetCanvasSize(width, height float64)
	Size() (float64, float64)
	DeviceScaleFactor() float64
	Pointer() (float64, float64, bool)
}

type Options struct {
	// ContainerSelector must match an element of the document. Its width and
	// height attributes, when present, give the initial canvas size.
	ContainerSelector string
	// SourceSelector selects the element whose path descendants become
	// shapes.
	SourceSelector string
	// Config is a complete configuration, normalized before use. Build it
	// from config.Default or config.Parse; nil means config.Default.
	Config *config.Config
	// ConfigYAML is overlaid on Config. Keys it omits keep their value, so a
	// partial overlay such as "scale: 2" leaves every other default in place.
	ConfigYAML []byte
	// Now is the clock resize debouncing reads. Nil means time.Now.
	Now func() time.Time
}

// Scene is a running simulation bound to a host.
type Scene struct {
	host   Host
	cfg    config.Config
	cache  *shape.Cache
	world  *physics.World
	loop   *render.Loop
	resize *viewport.Coordinator

	cancels   []func()
	paused    bool
	destroyed bool
}

// New builds a scene from doc and starts it. It fails with a
// *ConfigurationError, before touching host, when the container selector
// does not resolve or ConfigYAML does not parse.
func New(host Host, doc *svgdoc.Document, opts Options) (*Scene, error) {
	if host == nil {
		return nil, &ConfigurationError{Reason: "no host"}
	}
	if doc == nil {
		return nil, &ConfigurationError{Selector: opts.ContainerSelector, Reason: "no document"}
	}
	if strings.TrimSpace(opts.ContainerSelector) == "" {
		return nil, &ConfigurationError{Reason: "empty container selector"}
	}
	container := doc.Query(opts.ContainerSelector)
	if container == nil {
		return nil, &ConfigurationError{Selector: opts.ContainerSelector, Reason: "no matching element"}
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if len(opts.ConfigYAML) > 0 {
		merged, err := config.Merge(cfg, opts.ConfigYAML)
		if err != nil {
			return nil, &ConfigurationError{Reason: err.Error()}
		}
		cfg = merged
	}
	cfg = cfg.Normalize()

	source := opts.SourceSelector
	if strings.TrimSpace(source) == "" {
		source = DefaultSourceSelector
	}

	s := &Scene{host: host, cfg: cfg, cache: shape.NewCache()}
	s.cache.Populate(doc, source, cfg)

	vp := containerViewport(container, host)
	host.SetCanvasSize(vp.Width, vp.Height)

	s.world = physics.NewWorld(cfg)
	s.world.CreateBodies(s.cache.Descriptors(), vp)
	s.world.CreateWalls(vp)
	s.world.AttachMouseConstraint(vp, host.Pointer, host.DeviceScaleFactor)
	s.world.Start()

	s.loop = render.NewLoop(s.world, cfg)
	s.resize = viewport.NewCoordinator(host, s.world, vp, cfg.Resize.Debounce, opts.Now)
	s.resize.SetVerbose(cfg.Debug.DevMode)

	s.cancels = append(s.cancels,
		host.OnFrame(stage.Frame{Update: s.update, Draw: s.loop.Draw}),
		host.OnResize(s.resize.Signal),
	)
	if cfg.Debug.DevMode {
		s.cancels = append(s.cancels, host.OnKeyDown(s.onKey))
		log.Printf("Scene: %d shapes, %d bodies, canvas %.0fx%.0f", s.cache.Len(), len(s.world.Bodies()), vp.Width, vp.Height)
	}
	return s, nil
}

func containerViewport(container *svgdoc.Element, host Host) common.Viewport {
	if w, h, ok := container.Size(); ok {
		return common.Viewport{Width: w, Height: h}
	}
	w, h := host.Size()
	vp := common.Viewport{Width: w, Height: h}
	if vp.Empty() {
		vp = common.Viewport{Width: common.BaseWidth, Height: common.BaseHeight}
	}
	return vp
}

func (s *Scene) update() {
	s.world.Tick()
	s.resize.Poll()
}

func (s *Scene) onKey(k ebiten.Key) {
	if k != ebiten.KeyD {
		return
	}
	show := s.loop.ToggleBoundingBoxes()
	log.Printf("Scene: bounding boxes %v", show)
}

// Pause stops the physics runner. Bodies keep being drawn where they are.
func (s *Scene) Pause() *Scene {
	if s == nil || s.destroyed {
		return s
	}
	s.world.Stop()
	s.paused = true
	return s
}

// Resume restarts the physics runner.
func (s *Scene) Resume() *Scene {
	if s == nil || s.destroyed {
		return s
	}
	s.world.Start()
	s.paused = false
	return s
}

// Destroy detaches every listener and releases the world. It is safe to
// call more than once and on a nil scene.
func (s *Scene) Destroy() *Scene {
	if s == nil || s.destroyed {
		return s
	}
	s.destroyed = true
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	if s.resize != nil {
		s.resize.Stop()
	}
	if s.world != nil {
		s.world.Dispose()
	}
	if s.cache != nil {
		s.cache.Release()
	}
	if s.cfg.Debug.DevMode {
		log.Printf("Scene: destroyed")
	}
	return s
}

func (s *Scene) Paused() bool {
	return s != nil && s.paused
}

func (s *Scene) Destroyed() bool {
	return s == nil || s.destroyed
}

// Config is the normalized configuration the scene was built with.
func (s *Scene) Config() config.Config {
	if s == nil {
		return config.Config{}
	}
	return s.cfg
}

// World exposes the simulation for inspection.
func (s *Scene) World() *physics.World {
	if s == nil {
		return nil
	}
	return s.world
}

func (s *Scene) Loop() *render.Loop {
	if s == nil {
		return nil
	}
	return s.loop
}

// Descriptors returns the shapes extracted from the document, including those
// that produced no body.
func (s *Scene) Descriptors() []*shape.Descriptor {
	if s == nil {
		return nil
	}
	return s.cache.Descriptors()
}

// Viewport is the canvas size walls currently bound.
func (s *Scene) Viewport() common.Viewport {
	if s == nil {
		return common.Viewport{}
	}
	return s.resize.Viewport()
}
