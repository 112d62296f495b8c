package physics

import "gonum.org/v1/gonum/spatial/r2"

// PausedFunc reports whether a body should skip integration this step.
// A paused body still attracts others and can still be merged.
type PausedFunc func(*Body) bool

// MergeEvent records one merge performed during a step.
type MergeEvent struct {
	Time      float64 // simulated seconds at the end of the step
	Left      BodyID
	Right     BodyID
	LeftName  string
	RightName string
	Merged    BodyID
	Name      string
	Mass      float64
	Pos       Vec
}

// StepResult summarizes one call to Step.
type StepResult struct {
	Merges     []MergeEvent
	Integrated int     // bodies whose velocity and position advanced
	Paused     int     // bodies skipped by the paused predicate
	Time       float64 // simulated seconds after the step
}

// System is the body collection plus the integration parameters. Bodies
// live in an arena keyed by stable IDs; iteration follows insertion order.
type System struct {
	Timestep   float64 // seconds per step
	TrailLimit int     // points kept per body trail
	Time       float64 // elapsed simulated seconds
	Steps      int     // steps taken

	bodies map[BodyID]*Body
	order  []BodyID
	nextID BodyID
}

// NewSystem creates an empty system. Non-positive arguments select the
// defaults (one day, 200 trail points).
func NewSystem(timestep float64, trailLimit int) *System {
	if timestep <= 0 {
		timestep = DefaultTimestep
	}
	if trailLimit <= 0 {
		trailLimit = DefaultTrailLimit
	}
	return &System{
		Timestep:   timestep,
		TrailLimit: trailLimit,
		bodies:     make(map[BodyID]*Body),
	}
}

// Add inserts b, assigns it a fresh ID and applies the system trail limit.
func (s *System) Add(b *Body) BodyID {
	s.nextID++
	b.ID = s.nextID
	b.Trail.SetLimit(s.TrailLimit)
	s.bodies[b.ID] = b
	s.order = append(s.order, b.ID)
	return b.ID
}

// Get returns the body with the given ID.
func (s *System) Get(id BodyID) (*Body, bool) {
	b, ok := s.bodies[id]
	return b, ok
}

// Len returns the number of bodies.
func (s *System) Len() int {
	return len(s.order)
}

// Bodies returns the live bodies in insertion order. The slice is fresh
// but the bodies are shared with the system.
func (s *System) Bodies() []*Body {
	result := make([]*Body, len(s.order))
	for i, id := range s.order {
		result[i] = s.bodies[id]
	}
	return result
}

type pendingMerge struct {
	left, right *Body
	merged      *Body
}

// Step advances every body by one Timestep.
//
// Overlaps and forces are evaluated against the collection as it was when
// the step started: each body takes part in at most one merge, merging
// bodies are not integrated, and merged results are inserted after all
// other bodies have moved. Bodies for which paused returns true skip force
// accumulation, integration and the trail update.
func (s *System) Step(paused PausedFunc) StepResult {
	snapshot := s.Bodies()
	n := len(snapshot)
	consumed := make([]bool, n)

	var merges []pendingMerge
	for i, b := range snapshot {
		if consumed[i] {
			continue
		}
		for j, other := range snapshot {
			if j == i || consumed[j] {
				continue
			}
			if Overlaps(b, other) {
				consumed[i], consumed[j] = true, true
				merges = append(merges, pendingMerge{left: b, right: other, merged: Merge(b, other)})
				break
			}
		}
	}

	var result StepResult

	// Accumulate every force before moving anything so all bodies see
	// the same pre-step positions.
	forces := make([]Vec, n)
	active := make([]bool, n)
	for i, b := range snapshot {
		if consumed[i] {
			continue
		}
		if paused != nil && paused(b) {
			result.Paused++
			continue
		}
		active[i] = true
		forces[i] = NetForce(b, snapshot)
	}

	dt := s.Timestep
	for i, b := range snapshot {
		if !active[i] {
			continue
		}
		b.Vel = r2.Add(b.Vel, r2.Scale(dt/b.Mass, forces[i]))
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
		b.Trail.Push(b.Pos)
		result.Integrated++
	}

	s.Time += dt
	s.Steps++
	result.Time = s.Time

	if len(merges) > 0 {
		s.applyMerges(merges, &result)
	}
	return result
}

func (s *System) applyMerges(merges []pendingMerge, result *StepResult) {
	gone := make(map[BodyID]bool, 2*len(merges))
	for _, m := range merges {
		gone[m.left.ID] = true
		gone[m.right.ID] = true
		delete(s.bodies, m.left.ID)
		delete(s.bodies, m.right.ID)
	}

	kept := s.order[:0]
	for _, id := range s.order {
		if !gone[id] {
			kept = append(kept, id)
		}
	}
	s.order = kept

	for _, m := range merges {
		id := s.Add(m.merged)
		result.Merges = append(result.Merges, MergeEvent{
			Time:      s.Time,
			Left:      m.left.ID,
			Right:     m.right.ID,
			LeftName:  m.left.Name,
			RightName: m.right.Name,
			Merged:    id,
			Name:      m.merged.Name,
			Mass:      m.merged.Mass,
			Pos:       m.merged.Pos,
		})
	}
}
