package physics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidBody is returned by Validate for bodies that violate the
// construction preconditions (positive mass and radius, finite state).
var ErrInvalidBody = errors.New("invalid body")

// BodyID identifies a body within a System. Zero means "no body".
type BodyID uint64

// Body is one simulated mass.
type Body struct {
	ID       BodyID
	Name     string
	Category Category
	Color    string // lipgloss color spec, rendering only

	Pos  Vec     // m
	Vel  Vec     // m/s
	Mass float64 // kg

	PhysicalRadius float64 // m, used for collisions
	RenderRadius   float64 // px, used for drawing

	Trail Trail
}

// NewBody creates a body from a render radius in pixels. The physical
// radius is derived through the display length scale.
func NewBody(name string, category Category, pos, vel Vec, mass, renderRadius float64) *Body {
	return &Body{
		Name:           name,
		Category:       category,
		Pos:            pos,
		Vel:            vel,
		Mass:           mass,
		PhysicalRadius: renderRadius / Scale,
		RenderRadius:   renderRadius,
		Trail:          NewTrail(DefaultTrailLimit),
	}
}

// NewBodyWithRadius creates a body from a physical radius in meters.
func NewBodyWithRadius(name string, category Category, pos, vel Vec, mass, physicalRadius float64) *Body {
	b := NewBody(name, category, pos, vel, mass, 0)
	b.PhysicalRadius = physicalRadius
	b.RenderRadius = physicalRadius * Scale
	return b
}

// Validate checks the construction preconditions. The step engine never
// calls it; scenario construction does.
func (b *Body) Validate() error {
	switch {
	case !(b.Mass > 0) || math.IsInf(b.Mass, 0):
		return fmt.Errorf("%w: %q mass must be positive, got %g", ErrInvalidBody, b.Name, b.Mass)
	case !(b.PhysicalRadius > 0) || math.IsInf(b.PhysicalRadius, 0):
		return fmt.Errorf("%w: %q radius must be positive, got %g", ErrInvalidBody, b.Name, b.PhysicalRadius)
	case !finite(b.Pos) || !finite(b.Vel):
		return fmt.Errorf("%w: %q has non-finite position or velocity", ErrInvalidBody, b.Name)
	}
	return nil
}

// Momentum returns m·v.
func (b *Body) Momentum() Vec {
	return r2.Scale(b.Mass, b.Vel)
}

// Speed returns |v|.
func (b *Body) Speed() float64 {
	return r2.Norm(b.Vel)
}

// KineticEnergy returns ½·m·|v|².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r2.Norm2(b.Vel)
}

// Clone returns a deep copy, including the trail.
func (b *Body) Clone() *Body {
	c := *b
	c.Trail = b.Trail.clone()
	return &c
}

func finite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
