package engine

import (
	"math"

	"github.com/piwi3910/StandPlan/internal/model"
)

// FindFreePosition scans the container row by row on a 0.5 m grid and
// returns the first percentage position where an object of the given size
// and rotation does not collide. When the whole grid is exhausted it
// returns (0, 0) and false; the caller decides how to surface a full
// container.
func FindFreePosition(width, depth float64, rotation int, container model.Container, stands []model.Stand, utilities []model.UtilitySpace) (model.Point, bool) {
	if container.Width <= 0 || container.Depth <= 0 {
		return model.Point{}, false
	}
	stepX := ToPercent(GridStep, container.Width)
	stepY := ToPercent(GridStep, container.Depth)
	cols := int(math.Floor(100/stepX + 1e-9))
	rows := int(math.Floor(100/stepY + 1e-9))

	// Integer indices keep grid points exact instead of accumulating steps.
	for j := 0; j <= rows; j++ {
		y := float64(j) * stepY
		for i := 0; i <= cols; i++ {
			x := float64(i) * stepX
			c := Candidate{X: x, Y: y, Width: width, Depth: depth, Rotation: rotation}
			if !IsColliding(c, container, stands, utilities) {
				return model.Point{X: x, Y: y}, true
			}
		}
	}
	return model.Point{}, false
}

// SnapToGrid rounds a meter coordinate to the nearest grid line.
func SnapToGrid(meters float64) float64 {
	return math.Round(meters/GridStep) * GridStep
}
