package engine

import (
	"math"

	"github.com/piwi3910/StandPlan/internal/model"
)

// Box is an axis-aligned bounding box in meters, relative to the
// container's top-left corner.
type Box struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
	Width  float64
	Height float64
}

func newBox(left, top, w, h float64) Box {
	return Box{
		Left:   left,
		Top:    top,
		Right:  left + w,
		Bottom: top + h,
		Width:  w,
		Height: h,
	}
}

// Overlaps returns true if two boxes overlap by more than tol on both axes.
// Boxes that merely touch do not overlap.
func (b Box) Overlaps(o Box, tol float64) bool {
	return b.Left < o.Right-tol && b.Right > o.Left+tol &&
		b.Top < o.Bottom-tol && b.Bottom > o.Top+tol
}

// Within returns true if the box lies inside [0,w] x [0,d] within tol.
func (b Box) Within(w, d, tol float64) bool {
	return b.Left >= -tol && b.Top >= -tol &&
		b.Right <= w+tol && b.Bottom <= d+tol
}

// overlapsVertically reports whether the vertical extents intersect.
func (b Box) overlapsVertically(o Box, tol float64) bool {
	return b.Top < o.Bottom-tol && b.Bottom > o.Top+tol
}

// overlapsHorizontally reports whether the horizontal extents intersect.
func (b Box) overlapsHorizontally(o Box, tol float64) bool {
	return b.Left < o.Right-tol && b.Right > o.Left+tol
}

// NormalizeRotation folds any integer rotation into [0, 360).
func NormalizeRotation(rotation int) int {
	r := rotation % 360
	if r < 0 {
		r += 360
	}
	return r
}

// isQuarterTurn reports whether the rotation lands in a band that swaps
// width and depth.
func isQuarterTurn(rotation int) bool {
	r := NormalizeRotation(rotation)
	return (r >= 45 && r < 135) || (r >= 225 && r < 315)
}

// EffectiveDimensions returns the occupied width and depth under rotation.
// Only coarse 90-degree classes are modelled.
func EffectiveDimensions(width, depth float64, rotation int) (float64, float64) {
	if isQuarterTurn(rotation) {
		return depth, width
	}
	return width, depth
}

// boxAt computes the meter box for a footprint-like shape at x, y percent.
func boxAt(x, y, width, depth float64, rotation int, containerW, containerD float64) Box {
	ew, ed := EffectiveDimensions(width, depth, rotation)
	return newBox(ToMeters(x, containerW), ToMeters(y, containerD), ew, ed)
}

// BoundingBoxInMeters returns the rotated AABB of a placed footprint. The
// second result is false for unplaced footprints.
func BoundingBoxInMeters(fp model.Footprint, containerW, containerD float64) (Box, bool) {
	if !fp.IsPlaced() {
		return Box{}, false
	}
	return boxAt(fp.Position.X, fp.Position.Y, fp.Width, fp.Depth, fp.Rotation, containerW, containerD), true
}

// LShapeClipMask returns the six-point outline of an L-shaped stand as
// percentages of the stand's own width and depth, with the cutout taken
// from the top-right corner. It returns nil for rectangles and for L
// stands without positive cutout dimensions. The mask is used for
// rendering only; collision always uses the full rectangle.
func LShapeClipMask(s model.Stand) []model.Point {
	if !s.HasCutout() || s.Width <= 0 || s.Depth <= 0 {
		return nil
	}
	cx := clampPercent(100 - s.CutoutWidth/s.Width*100)
	cy := clampPercent(s.CutoutDepth / s.Depth * 100)
	return []model.Point{
		{X: 0, Y: 0},
		{X: cx, Y: 0},
		{X: cx, Y: cy},
		{X: 100, Y: cy},
		{X: 100, Y: 100},
		{X: 0, Y: 100},
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Vec is a point in meters relative to the container's top-left corner.
type Vec struct {
	X, Y float64
}

// quarterTurns snaps a rotation to the number of clockwise quarter turns
// used by EffectiveDimensions.
func quarterTurns(rotation int) int {
	r := NormalizeRotation(rotation)
	switch {
	case r >= 45 && r < 135:
		return 1
	case r >= 135 && r < 225:
		return 2
	case r >= 225 && r < 315:
		return 3
	}
	return 0
}

// StandOutline returns the drawn outline of a placed stand in container
// meters. Mirroring flips the shape inside its own frame before the
// rotation is applied. Rectangles yield four corners, L stands the six
// points of their clip mask. The second result is false for unplaced
// stands.
func StandOutline(s model.Stand, containerW, containerD float64) ([]Vec, bool) {
	box, ok := BoundingBoxInMeters(s.Footprint, containerW, containerD)
	if !ok {
		return nil, false
	}
	mask := LShapeClipMask(s)
	if mask == nil {
		mask = []model.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	}

	turns := quarterTurns(s.Rotation)
	out := make([]Vec, len(mask))
	for i, p := range mask {
		x, y := p.X, p.Y
		if s.MirrorH {
			x = 100 - x
		}
		if s.MirrorV {
			y = 100 - y
		}
		x = x / 100 * s.Width
		y = y / 100 * s.Depth
		switch turns {
		case 1:
			x, y = s.Depth-y, x
		case 2:
			x, y = s.Width-x, s.Depth-y
		case 3:
			x, y = y, s.Width-x
		}
		out[i] = Vec{X: box.Left + x, Y: box.Top + y}
	}
	return out, true
}

// CutoutBox returns the cutout rectangle of a placed L stand in container
// meters with mirroring and rotation applied. The second result is false
// for rectangles, L stands without a cutout and unplaced stands.
func CutoutBox(s model.Stand, containerW, containerD float64) (Box, bool) {
	if !s.HasCutout() {
		return Box{}, false
	}
	outline, ok := StandOutline(s, containerW, containerD)
	if !ok || len(outline) != 6 {
		return Box{}, false
	}
	a, b := outline[1], outline[3]
	left, top := math.Min(a.X, b.X), math.Min(a.Y, b.Y)
	return newBox(left, top, math.Abs(a.X-b.X), math.Abs(a.Y-b.Y)), true
}
