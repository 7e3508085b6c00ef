package common

import "time"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed update rate ebiten drives the simulation at.
	TPS       = 60
	FixedStep = 1.0 / TPS

	WallThickness = 100.0
	WallMargin    = 100.0

	ResizeDebounce = 100 * time.Millisecond
)

// Viewport is the logical size of the drawable surface in world units.
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}
