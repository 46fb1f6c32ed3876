// Package engine implements the spatial layout core: coordinate
// conversion, footprint geometry, collision detection, free-position
// search, magnetic alignment and layout validation.
//
// Every function in this package is pure. Positions are persisted as
// percentages of the container so that resizing a pavilion never requires
// rewriting the objects inside it; all geometry is evaluated in meters.
package engine

// Tolerance absorbs floating-point drift in every boundary and overlap
// comparison, in meters.
const Tolerance = 0.01

// PixelsPerMeter is the on-screen rendering scale at zoom 1.
const PixelsPerMeter = 20.0

// GridStep is the placement grid spacing in meters.
const GridStep = 0.5

// ToMeters converts a container-relative percentage into meters.
func ToMeters(percent, dimension float64) float64 {
	return percent / 100 * dimension
}

// ToPercent converts meters into a container-relative percentage.
func ToPercent(meters, dimension float64) float64 {
	if dimension <= 0 {
		return 0
	}
	return meters / dimension * 100
}

// MetersToPixels converts meters to unzoomed screen pixels.
func MetersToPixels(m float64) float64 {
	return m * PixelsPerMeter
}

// PixelsToMeters converts unzoomed screen pixels to meters.
func PixelsToMeters(px float64) float64 {
	return px / PixelsPerMeter
}
