package physics

import "gonum.org/v1/gonum/spatial/r2"

// Force returns the gravitational force a experiences due to b, in newtons.
// Coincident bodies exert no force on each other.
func Force(a, b *Body) Vec {
	dir := r2.Sub(b.Pos, a.Pos)
	d := r2.Norm(dir)
	if d == 0 {
		return Vec{}
	}
	f := G * a.Mass * b.Mass / (d * d)
	return r2.Scale(f/d, dir)
}

// NetForce sums Force(b, other) over every other body in sources.
// b itself is skipped by identity.
func NetForce(b *Body, sources []*Body) Vec {
	var total Vec
	for _, other := range sources {
		if other == b {
			continue
		}
		total = r2.Add(total, Force(b, other))
	}
	return total
}
