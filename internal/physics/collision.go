package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MergeSeparator joins the names of two merged bodies.
const MergeSeparator = "+"

// Overlaps reports whether the physical radii of a and b touch or overlap.
func Overlaps(a, b *Body) bool {
	return Distance(a.Pos, b.Pos) <= a.PhysicalRadius+b.PhysicalRadius
}

// Merge returns the body produced by a perfectly inelastic collision of
// a and b. Mass and momentum are conserved, volumes add (equal density),
// and the result sits at the unweighted midpoint. Category comes from the
// heavier body, with a winning ties; color comes from a. The inputs are
// not modified and the result has no ID and an empty trail.
func Merge(a, b *Body) *Body {
	total := a.Mass + b.Mass
	vel := r2.Scale(1/total, r2.Add(a.Momentum(), b.Momentum()))

	radius := math.Cbrt(cube(a.PhysicalRadius) + cube(b.PhysicalRadius))

	category := a.Category
	if b.Mass > a.Mass {
		category = b.Category
	}

	return &Body{
		Name:           a.Name + MergeSeparator + b.Name,
		Category:       category,
		Color:          a.Color,
		Pos:            Midpoint(a.Pos, b.Pos),
		Vel:            vel,
		Mass:           total,
		PhysicalRadius: radius,
		RenderRadius:   radius * Scale,
		Trail:          NewTrail(a.Trail.Limit()),
	}
}

func cube(x float64) float64 {
	return x * x * x
}
