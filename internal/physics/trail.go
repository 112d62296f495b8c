package physics

// Trail is a bounded, chronologically ordered history of positions.
// When full, pushing a new point evicts the oldest one.
type Trail struct {
	points  []Vec
	writeAt int
	limit   int
}

// NewTrail creates an empty trail holding at most limit points.
// A non-positive limit selects DefaultTrailLimit.
func NewTrail(limit int) Trail {
	if limit <= 0 {
		limit = DefaultTrailLimit
	}
	return Trail{limit: limit}
}

// Limit returns the maximum number of points kept.
func (t *Trail) Limit() int {
	if t.limit <= 0 {
		return DefaultTrailLimit
	}
	return t.limit
}

// SetLimit changes the bound, dropping the oldest points if the trail
// currently holds more than the new limit.
func (t *Trail) SetLimit(limit int) {
	if limit <= 0 {
		limit = DefaultTrailLimit
	}
	pts := t.Points()
	if len(pts) > limit {
		pts = pts[len(pts)-limit:]
	}
	t.points = pts
	t.writeAt = 0
	t.limit = limit
}

// Push appends p as the newest point.
func (t *Trail) Push(p Vec) {
	limit := t.Limit()
	if len(t.points) < limit {
		t.points = append(t.points, p)
		return
	}
	t.points[t.writeAt] = p
	t.writeAt = (t.writeAt + 1) % limit
}

// Len returns the number of stored points.
func (t *Trail) Len() int {
	return len(t.points)
}

// Points returns a copy of the trail, oldest first.
func (t *Trail) Points() []Vec {
	if len(t.points) == 0 {
		return nil
	}
	result := make([]Vec, len(t.points))
	if len(t.points) < t.Limit() {
		copy(result, t.points)
		return result
	}
	n := copy(result, t.points[t.writeAt:])
	copy(result[n:], t.points[:t.writeAt])
	return result
}

// Last returns the newest point.
func (t *Trail) Last() (Vec, bool) {
	if len(t.points) == 0 {
		return Vec{}, false
	}
	if len(t.points) < t.Limit() || t.writeAt == 0 {
		return t.points[len(t.points)-1], true
	}
	return t.points[t.writeAt-1], true
}

// Reset removes all points, keeping the limit.
func (t *Trail) Reset() {
	t.points = nil
	t.writeAt = 0
}

func (t Trail) clone() Trail {
	c := Trail{limit: t.limit}
	if len(t.points) > 0 {
		c.points = make([]Vec, len(t.points), cap(t.points))
		copy(c.points, t.points)
		c.writeAt = t.writeAt
	}
	return c
}
