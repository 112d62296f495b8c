package physics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Diagnostics holds conserved quantities of the system. With merges the
// kinetic energy drops (inelastic); momentum and mass are preserved.
type Diagnostics struct {
	Bodies          int
	TotalMass       float64 // kg
	Kinetic         float64 // J
	Potential       float64 // J
	Total           float64 // J
	Momentum        Vec     // kg·m/s
	AngularMomentum float64 // kg·m²/s, z component about the origin
	CenterOfMass    Vec     // m
}

// Diagnostics computes energy, momentum and center of mass.
func (s *System) Diagnostics() Diagnostics {
	bodies := s.Bodies()
	d := Diagnostics{Bodies: len(bodies)}
	if len(bodies) == 0 {
		return d
	}

	masses := make([]float64, len(bodies))
	kinetic := make([]float64, len(bodies))
	angular := make([]float64, len(bodies))
	var weighted Vec
	for i, b := range bodies {
		masses[i] = b.Mass
		kinetic[i] = b.KineticEnergy()
		angular[i] = b.Mass * r2.Cross(b.Pos, b.Vel)
		d.Momentum = r2.Add(d.Momentum, b.Momentum())
		weighted = r2.Add(weighted, r2.Scale(b.Mass, b.Pos))
	}

	potential := make([]float64, 0, len(bodies)*(len(bodies)-1)/2)
	for i := 0; i < len(bodies)-1; i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := Distance(bodies[i].Pos, bodies[j].Pos)
			if r == 0 {
				continue
			}
			potential = append(potential, -G*bodies[i].Mass*bodies[j].Mass/r)
		}
	}

	d.TotalMass = floats.Sum(masses)
	d.Kinetic = floats.Sum(kinetic)
	d.Potential = floats.Sum(potential)
	d.Total = d.Kinetic + d.Potential
	d.AngularMomentum = floats.Sum(angular)
	d.CenterOfMass = r2.Scale(1/d.TotalMass, weighted)
	return d
}
