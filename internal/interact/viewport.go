// Package interact turns pointer, wheel and keyboard input into editor
// commands. It owns the viewport transform and the in-flight drag and pan
// state; it never mutates a layout except through editor.Dispatch.
package interact

import (
	"math"

	"fyne.io/fyne/v2"

	"github.com/piwi3910/StandPlan/internal/engine"
)

// Zoom limits and the factor applied per wheel notch or key press.
const (
	MinScale  = 0.2
	MaxScale  = 5.0
	ZoomStep  = 1.1
	baseScale = 1.0
)

// Viewport maps canvas meters to screen pixels: screen = world * ppm *
// Scale + Pan.
type Viewport struct {
	PanX  float64 // pixels
	PanY  float64 // pixels
	Scale float64
}

// NewViewport returns the identity transform.
func NewViewport() Viewport {
	return Viewport{Scale: baseScale}
}

// ZoomAt multiplies the scale by factor, clamped to [MinScale, MaxScale],
// keeping the world point under the cursor fixed.
func (v *Viewport) ZoomAt(cursor fyne.Position, factor float64) {
	if factor <= 0 {
		return
	}
	wx, wy := v.ScreenToWorld(cursor)
	v.Scale = clampScale(v.Scale * factor)
	v.PanX = float64(cursor.X) - engine.MetersToPixels(wx)*v.Scale
	v.PanY = float64(cursor.Y) - engine.MetersToPixels(wy)*v.Scale
}

// Pan shifts the view by a pixel delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	*v = NewViewport()
}

// ScreenToWorld converts a screen position to canvas meters.
func (v Viewport) ScreenToWorld(p fyne.Position) (float64, float64) {
	scale := v.scale()
	x := engine.PixelsToMeters((float64(p.X) - v.PanX) / scale)
	y := engine.PixelsToMeters((float64(p.Y) - v.PanY) / scale)
	return x, y
}

// WorldToScreen converts canvas meters to a screen position.
func (v Viewport) WorldToScreen(x, y float64) fyne.Position {
	scale := v.scale()
	return fyne.NewPos(
		float32(engine.MetersToPixels(x)*scale+v.PanX),
		float32(engine.MetersToPixels(y)*scale+v.PanY),
	)
}

// Length converts a meter distance to on-screen pixels.
func (v Viewport) Length(meters float64) float32 {
	return float32(engine.MetersToPixels(meters) * v.scale())
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return baseScale
	}
	return v.Scale
}

func clampScale(s float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, s))
}
