// Package physics implements the gravity simulation core: bodies, pairwise
// Newtonian forces, inelastic merging, and the fixed-timestep step engine.
//
// All quantities are SI: meters, seconds, kilograms. The display length
// scale only appears when converting a body's render radius into its
// physical radius.
package physics

import "gonum.org/v1/gonum/spatial/r2"

// Vec is a 2D vector: position in meters or velocity in m/s.
type Vec = r2.Vec

// Physical constants and defaults.
const (
	// G is the gravitational constant in m³/(kg·s²).
	G = 6.67430e-11

	// AU is one astronomical unit in meters.
	AU = 1.496e11

	// Scale is the display length scale in pixels per meter (100 px = 1 AU).
	Scale = 100 / AU

	// DefaultTimestep is one simulated day in seconds.
	DefaultTimestep = 3600 * 24

	// DefaultTrailLimit is the number of trail points kept per body.
	DefaultTrailLimit = 200
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vec) Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}
