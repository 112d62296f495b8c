package physics

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b, relTol float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= relTol*scale
}

func TestForceNewtonian(t *testing.T) {
	a := NewBodyWithRadius("a", CategoryPlanet, Vec{}, Vec{}, 2e24, 1e6)
	b := NewBodyWithRadius("b", CategoryPlanet, Vec{X: 3e8, Y: 4e8}, Vec{}, 5e22, 1e6)

	f := Force(a, b)
	want := G * 2e24 * 5e22 / (5e8 * 5e8)

	if got := math.Hypot(f.X, f.Y); !approxEqual(got, want, 1e-12) {
		t.Errorf("|F| = %v, want %v", got, want)
	}
	// Direction is from a toward b: (0.6, 0.8)
	if !approxEqual(f.X, want*0.6, 1e-12) || !approxEqual(f.Y, want*0.8, 1e-12) {
		t.Errorf("F = %+v, want along (0.6, 0.8)", f)
	}
}

func TestForceCoincidentIsZero(t *testing.T) {
	a := NewBodyWithRadius("a", CategoryStar, Vec{X: 1, Y: 1}, Vec{}, 1e30, 1)
	b := NewBodyWithRadius("b", CategoryStar, Vec{X: 1, Y: 1}, Vec{}, 1e30, 1)

	if f := Force(a, b); f.X != 0 || f.Y != 0 {
		t.Errorf("Force at d=0 = %+v, want zero", f)
	}
}

func TestForceAntisymmetric(t *testing.T) {
	tests := []struct {
		name   string
		pa, pb Vec
		ma, mb float64
	}{
		{"axis", Vec{}, Vec{X: 1e9}, 1e24, 1e20},
		{"diagonal", Vec{X: -3e10, Y: 2e10}, Vec{X: 5e10, Y: -7e10}, 1.989e30, 5.972e24},
		{"close", Vec{X: 1}, Vec{X: 2, Y: 1}, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewBodyWithRadius("a", CategoryPlanet, tt.pa, Vec{}, tt.ma, 1)
			b := NewBodyWithRadius("b", CategoryPlanet, tt.pb, Vec{}, tt.mb, 1)
			fab := Force(a, b)
			fba := Force(b, a)
			if !approxEqual(fab.X, -fba.X, 1e-12) || !approxEqual(fab.Y, -fba.Y, 1e-12) {
				t.Errorf("F(a,b) = %+v, F(b,a) = %+v, want opposite", fab, fba)
			}
		})
	}
}

func TestNetForceSkipsSelf(t *testing.T) {
	a := NewBodyWithRadius("a", CategoryPlanet, Vec{}, Vec{}, 1e24, 1)
	b := NewBodyWithRadius("b", CategoryPlanet, Vec{X: 1e9}, Vec{}, 1e24, 1)
	c := NewBodyWithRadius("c", CategoryPlanet, Vec{X: -1e9}, Vec{}, 1e24, 1)

	f := NetForce(a, []*Body{a, b, c})
	if math.Abs(f.X) > 1e-6*math.Abs(Force(a, b).X) || f.Y != 0 {
		t.Errorf("NetForce = %+v, want ~zero from symmetric pair", f)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		dist float64
		want bool
	}{
		{"apart", 2.5e6, false},
		{"touching", 2e6, true},
		{"overlapping", 1.5e6, true},
		{"coincident", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewBodyWithRadius("a", CategoryPlanet, Vec{}, Vec{}, 1, 1e6)
			b := NewBodyWithRadius("b", CategoryPlanet, Vec{X: tt.dist}, Vec{}, 1, 1e6)
			if got := Overlaps(a, b); got != tt.want {
				t.Errorf("Overlaps at %v m = %v, want %v", tt.dist, got, tt.want)
			}
		})
	}
}

func TestMergeConservation(t *testing.T) {
	a := NewBodyWithRadius("Earth", CategoryPlanet, Vec{X: 1e7, Y: 2e7}, Vec{X: 100, Y: -30}, 5.972e24, 6.371e6)
	b := NewBodyWithRadius("Moon", CategoryMoon, Vec{X: 1.5e7, Y: 2.2e7}, Vec{X: -1000, Y: 400}, 7.342e22, 1.737e6)
	a.Color = "#6495ED"
	b.Color = "#A9A9A9"
	a.Trail.Push(a.Pos)

	m := Merge(a, b)

	if m.Mass != a.Mass+b.Mass {
		t.Errorf("mass = %v, want exactly %v", m.Mass, a.Mass+b.Mass)
	}

	px := a.Mass*a.Vel.X + b.Mass*b.Vel.X
	py := a.Mass*a.Vel.Y + b.Mass*b.Vel.Y
	if !approxEqual(m.Mass*m.Vel.X, px, 1e-12) || !approxEqual(m.Mass*m.Vel.Y, py, 1e-12) {
		t.Errorf("momentum = (%v, %v), want (%v, %v)", m.Mass*m.Vel.X, m.Mass*m.Vel.Y, px, py)
	}

	vol := cube(a.PhysicalRadius) + cube(b.PhysicalRadius)
	if !approxEqual(cube(m.PhysicalRadius), vol, 1e-12) {
		t.Errorf("r³ = %v, want %v", cube(m.PhysicalRadius), vol)
	}
	if !approxEqual(m.RenderRadius, m.PhysicalRadius*Scale, 1e-12) {
		t.Errorf("RenderRadius = %v, want %v", m.RenderRadius, m.PhysicalRadius*Scale)
	}

	if m.Pos.X != 1.25e7 || m.Pos.Y != 2.1e7 {
		t.Errorf("Pos = %+v, want midpoint", m.Pos)
	}
	if m.Name != "Earth+Moon" {
		t.Errorf("Name = %q, want %q", m.Name, "Earth+Moon")
	}
	if m.Category != CategoryPlanet {
		t.Errorf("Category = %v, want Planet (heavier)", m.Category)
	}
	if m.Color != a.Color {
		t.Errorf("Color = %q, want left operand %q", m.Color, a.Color)
	}
	if m.Trail.Len() != 0 {
		t.Errorf("merged trail len = %d, want 0", m.Trail.Len())
	}
	if m.ID != 0 {
		t.Errorf("merged ID = %d, want unassigned", m.ID)
	}
}

func TestMergeCategoryTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		ma, mb float64
		want   Category
	}{
		{"left heavier", 2, 1, CategoryComet},
		{"right heavier", 1, 2, CategoryAsteroid},
		{"tie keeps left", 1, 1, CategoryComet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewBodyWithRadius("a", CategoryComet, Vec{}, Vec{}, tt.ma, 1)
			b := NewBodyWithRadius("b", CategoryAsteroid, Vec{}, Vec{}, tt.mb, 1)
			if got := Merge(a, b).Category; got != tt.want {
				t.Errorf("Category = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	a := NewBodyWithRadius("a", CategoryPlanet, Vec{X: 1}, Vec{X: 2}, 3, 4)
	b := NewBodyWithRadius("b", CategoryPlanet, Vec{X: 5}, Vec{X: 6}, 7, 8)
	beforeA, beforeB := *a, *b

	_ = Merge(a, b)

	if a.Pos != beforeA.Pos || a.Vel != beforeA.Vel || a.Mass != beforeA.Mass || a.PhysicalRadius != beforeA.PhysicalRadius {
		t.Errorf("left operand modified: %+v", a)
	}
	if b.Pos != beforeB.Pos || b.Vel != beforeB.Vel || b.Mass != beforeB.Mass || b.PhysicalRadius != beforeB.PhysicalRadius {
		t.Errorf("right operand modified: %+v", b)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mass    float64
		radius  float64
		wantErr bool
	}{
		{"valid", 1e24, 1e6, false},
		{"zero mass", 0, 1e6, true},
		{"negative mass", -5, 1e6, true},
		{"NaN mass", math.NaN(), 1e6, true},
		{"zero radius", 1e24, 0, true},
		{"negative radius", 1e24, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBodyWithRadius("x", CategoryAsteroid, Vec{}, Vec{}, tt.mass, tt.radius)
			err := b.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBody) {
				t.Errorf("Validate() error = %v, want ErrInvalidBody", err)
			}
		})
	}
}

func TestNewBodyDerivesPhysicalRadius(t *testing.T) {
	b := NewBody("Earth", CategoryPlanet, Vec{X: AU}, Vec{Y: 29780}, 5.972e24, 10)
	if want := 10 / Scale; !approxEqual(b.PhysicalRadius, want, 1e-12) {
		t.Errorf("PhysicalRadius = %v, want %v", b.PhysicalRadius, want)
	}
	if !approxEqual(b.PhysicalRadius, 0.1*AU, 1e-12) {
		t.Errorf("10 px should be 0.1 AU, got %v m", b.PhysicalRadius)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"1", CategoryStar, true},
		{"6", CategoryBlackHole, true},
		{"planet", CategoryPlanet, true},
		{"Black Hole", CategoryBlackHole, true},
		{"black_hole", CategoryBlackHole, true},
		{" moon ", CategoryMoon, true},
		{"0", CategoryUnknown, false},
		{"7", Category(7), false},
		{"nebula", CategoryUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseCategory(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if CategoryBlackHole.String() != "Black Hole" {
		t.Errorf("BlackHole.String() = %q", CategoryBlackHole.String())
	}
	if Category(42).String() != "Unknown" {
		t.Errorf("Category(42).String() = %q, want Unknown", Category(42).String())
	}
}
