package stage

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestListenersCancel(t *testing.T) {
	s := New(800, 600)
	cancelFrame := s.OnFrame(Frame{})
	cancelResize := s.OnResize(func(w, h float64) {})
	cancelKey := s.OnKeyDown(func(ebiten.Key) {})

	if got := s.ListenerCount(); got != 3 {
		t.Fatalf("expected 3 listeners, got %d", got)
	}

	cancelFrame()
	cancelFrame()
	if got := s.ListenerCount(); got != 2 {
		t.Fatalf("expected 2 listeners, got %d", got)
	}
	cancelResize()
	cancelKey()
	if got := s.ListenerCount(); got != 0 {
		t.Fatalf("expected no listeners, got %d", got)
	}
}

func TestResizeDispatchedOnce(t *testing.T) {
	s := New(800, 600)
	s.SetDeviceScaleFactor(1)

	var got [][2]float64
	s.OnResize(func(w, h float64) { got = append(got, [2]float64{w, h}) })

	s.LayoutF(800, 600)
	s.flushResize()
	if len(got) != 0 {
		t.Fatalf("unchanged size should not dispatch, got %v", got)
	}

	s.LayoutF(1024, 700)
	s.LayoutF(1024, 700)
	s.flushResize()
	s.flushResize()
	if len(got) != 1 || got[0] != [2]float64{1024, 700} {
		t.Fatalf("expected one resize to 1024x700, got %v", got)
	}
	if w, h := s.Size(); w != 1024 || h != 700 {
		t.Fatalf("expected outside size 1024x700, got %vx%v", w, h)
	}
}

func TestLayoutUsesCanvasAtDeviceScale(t *testing.T) {
	s := New(800, 600)
	s.SetDeviceScaleFactor(2)

	w, h := s.LayoutF(1000, 1000)
	if w != 1600 || h != 1200 {
		t.Fatalf("expected 1600x1200 screen, got %vx%v", w, h)
	}

	s.SetCanvasSize(1000, 500)
	s.SetCanvasSize(0, 100)
	if cw, ch := s.CanvasSize(); cw != 1000 || ch != 500 {
		t.Fatalf("expected canvas 1000x500, got %vx%v", cw, ch)
	}

	cam := s.Camera()
	x, y := cam.Apply(10, 20)
	if x != 20 || y != 40 {
		t.Fatalf("camera should scale by device factor, got (%v,%v)", x, y)
	}
}

func TestListenersMayCancelDuringDispatch(t *testing.T) {
	s := New(800, 600)
	calls := 0
	var cancelSecond func()
	s.OnFrame(Frame{Update: func() {
		calls++
		cancelSecond()
	}})
	cancelSecond = s.OnFrame(Frame{Update: func() { calls += 10 }})

	s.runUpdates()
	if calls != 1 {
		t.Fatalf("cancelled listener still ran, calls=%d", calls)
	}
	s.runUpdates()
	if calls != 2 || s.ListenerCount() != 1 {
		t.Fatalf("unexpected state calls=%d listeners=%d", calls, s.ListenerCount())
	}
}

func TestKeyDispatchOrder(t *testing.T) {
	s := New(800, 600)
	var order []int
	s.OnKeyDown(func(k ebiten.Key) { order = append(order, 1) })
	s.OnKeyDown(func(k ebiten.Key) { order = append(order, 2) })
	s.dispatchKey(ebiten.KeyD)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected registration order, got %v", order)
	}
}
