// Package stage adapts ebiten's game loop to the listener surface a scene
// needs: per-frame callbacks, window resize notifications, key presses, the
// pointer and the device scale factor.
package stage

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/svgphysics/common"
)

// Frame is a pair of per-frame callbacks. Update runs in ebiten's Update,
// Draw in its Draw with the camera that maps canvas units to screen pixels.
// Either may be nil.
type Frame struct {
	Update func()
	Draw   func(screen *ebiten.Image, camera ebiten.GeoM)
}

type (
	ResizeFunc  func(width, height float64)
	KeyDownFunc func(key ebiten.Key)
)

// Stage implements ebiten.Game. Listeners run on the game goroutine in
// registration order.
type Stage struct {
	canvas  common.Viewport
	outside common.Viewport
	scale   float64

	nextID  int
	frames  map[int]Frame
	resizes map[int]ResizeFunc
	keys    map[int]KeyDownFunc

	resizePending bool
	quit          bool
	pressed       []ebiten.Key
}

// New returns a stage whose canvas starts at width x height units.
func New(width, height float64) *Stage {
	if width <= 0 || height <= 0 {
		width, height = common.BaseWidth, common.BaseHeight
	}
	return &Stage{
		canvas:  common.Viewport{Width: width, Height: height},
		outside: common.Viewport{Width: width, Height: height},
		frames:  make(map[int]Frame),
		resizes: make(map[int]ResizeFunc),
		keys:    make(map[int]KeyDownFunc),
	}
}

func (s *Stage) id() int {
	s.nextID++
	return s.nextID
}

// OnFrame registers f and returns a function that removes it. The returned
// function may be called more than once.
func (s *Stage) OnFrame(f Frame) func() {
	id := s.id()
	s.frames[id] = f
	return func() { delete(s.frames, id) }
}

// OnResize registers fn to receive the window's new outside size.
func (s *Stage) OnResize(fn ResizeFunc) func() {
	id := s.id()
	s.resizes[id] = fn
	return func() { delete(s.resizes, id) }
}

// OnKeyDown registers fn to receive keys pressed this tick.
func (s *Stage) OnKeyDown(fn KeyDownFunc) func() {
	id := s.id()
	s.keys[id] = fn
	return func() { delete(s.keys, id) }
}

// ListenerCount is the number of registered frame, resize and key listeners.
func (s *Stage) ListenerCount() int {
	return len(s.frames) + len(s.resizes) + len(s.keys)
}

// SetCanvasSize sets the logical size of the drawable surface.
func (s *Stage) SetCanvasSize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.canvas = common.Viewport{Width: width, Height: height}
}

func (s *Stage) CanvasSize() (float64, float64) {
	return s.canvas.Width, s.canvas.Height
}

// Size is the window's outside size in logical units.
func (s *Stage) Size() (float64, float64) {
	return s.outside.Width, s.outside.Height
}

// SetDeviceScaleFactor overrides the monitor's scale factor. A non-positive
// value restores the monitor's.
func (s *Stage) SetDeviceScaleFactor(scale float64) {
	s.scale = scale
}

func (s *Stage) DeviceScaleFactor() float64 {
	if s.scale > 0 {
		return s.scale
	}
	if m := ebiten.Monitor(); m != nil {
		if f := m.DeviceScaleFactor(); f > 0 {
			return f
		}
	}
	return 1
}

// Pointer returns the cursor in screen pixels and whether the left button is
// held.
func (s *Stage) Pointer() (float64, float64, bool) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Camera maps canvas units to screen pixels.
func (s *Stage) Camera() ebiten.GeoM {
	var geo ebiten.GeoM
	f := s.DeviceScaleFactor()
	geo.Scale(f, f)
	return geo
}

// Quit makes the next Update end the game.
func (s *Stage) Quit() {
	s.quit = true
}

func (s *Stage) Update() error {
	if s.quit {
		return ebiten.Termination
	}

	s.flushResize()

	s.pressed = inpututil.AppendJustPressedKeys(s.pressed[:0])
	for _, k := range s.pressed {
		s.dispatchKey(k)
	}

	s.runUpdates()
	return nil
}

func (s *Stage) flushResize() {
	if !s.resizePending {
		return
	}
	s.resizePending = false
	s.dispatchResize(s.outside.Width, s.outside.Height)
}

func (s *Stage) runUpdates() {
	for _, id := range sortedIDs(s.frames) {
		if f, ok := s.frames[id]; ok && f.Update != nil {
			f.Update()
		}
	}
}

func (s *Stage) Draw(screen *ebiten.Image) {
	camera := s.Camera()
	for _, id := range sortedIDs(s.frames) {
		if f, ok := s.frames[id]; ok && f.Draw != nil {
			f.Draw(screen, camera)
		}
	}
}

// LayoutF records outside size changes for the next Update and sizes the
// screen to the canvas at device resolution.
func (s *Stage) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	s.observeOutside(outsideWidth, outsideHeight)
	f := s.DeviceScaleFactor()
	return s.canvas.Width * f, s.canvas.Height * f
}

func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (s *Stage) observeOutside(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.outside.Width && height == s.outside.Height {
		return
	}
	s.outside = common.Viewport{Width: width, Height: height}
	s.resizePending = true
}

func (s *Stage) dispatchResize(width, height float64) {
	for _, id := range sortedIDs(s.resizes) {
		if fn, ok := s.resizes[id]; ok {
			fn(width, height)
		}
	}
}

func (s *Stage) dispatchKey(k ebiten.Key) {
	for _, id := range sortedIDs(s.keys) {
		if fn, ok := s.keys[id]; ok {
			fn(k)
		}
	}
}

// sortedIDs snapshots the ids of m so listeners may cancel themselves, or
// others, while being dispatched.
func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
