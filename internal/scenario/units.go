// Package scenario builds initial body sets: the fixed solar-system preset,
// interactively entered bodies, and YAML scenario files.
//
// Scenario inputs are given in display units (pixels, 100 px = 1 AU) the way
// a user would place bodies on screen; everything handed to the physics
// package is converted to meters first.
package scenario

import "github.com/litescript/ls-gravity/internal/physics"

// PixelsToMeters converts a display distance to meters.
func PixelsToMeters(px float64) float64 {
	return px / physics.Scale
}

// MetersToPixels converts meters to a display distance.
func MetersToPixels(m float64) float64 {
	return m * physics.Scale
}

// AUToMeters converts astronomical units to meters.
func AUToMeters(au float64) float64 {
	return au * physics.AU
}
