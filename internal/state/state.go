// Package state owns the running simulation for the front ends: the body
// system, the interactive context, a merge event log and energy history.
package state

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/litescript/ls-gravity/internal/logging"
	"github.com/litescript/ls-gravity/internal/physics"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventMerge   EventType = "MERGE"
	EventPaused  EventType = "PAUSED"
	EventResumed EventType = "RESUMED"
)

// Event represents a notable change in the simulation.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SimTime   float64   `json:"sim_time"` // simulated seconds
	Body      string    `json:"body,omitempty"`
	Parts     []string  `json:"parts,omitempty"`
	Mass      float64   `json:"mass,omitempty"`
}

// TimeSeries is a single data point keyed by simulated time.
type TimeSeries struct {
	SimTime float64 `json:"sim_time"`
	Value   float64 `json:"value"`
}

// Manager handles the simulation state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	system *physics.System
	ctx    SimulationContext
	runID  uuid.UUID
	log    *logging.Logger

	initial  physics.Diagnostics
	lastStep physics.StepResult

	// Total energy per recorded step
	energy        []TimeSeries
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents     int
	MaxHistoryLen int
	StepsPerFrame int
	Logger        *logging.Logger
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:     50,
		MaxHistoryLen: 240,
		StepsPerFrame: 1,
	}
}

// NewManager wraps sys. The manager takes ownership; callers must not step
// sys directly afterwards.
func NewManager(sys *physics.System, cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxHistory := cfg.MaxHistoryLen
	if maxHistory <= 0 {
		maxHistory = 240
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	ctx := DefaultContext()
	if cfg.StepsPerFrame > 0 {
		ctx.StepsPerFrame = min(cfg.StepsPerFrame, MaxStepsPerFrame)
	}

	m := &Manager{
		system:        sys,
		ctx:           ctx,
		runID:         uuid.New(),
		log:           log.With("state"),
		maxHistoryLen: maxHistory,
		energy:        make([]TimeSeries, 0, maxHistory),
		maxEvents:     maxEvents,
		events:        make([]Event, 0, maxEvents),
	}
	m.initial = sys.Diagnostics()
	m.recordEnergy(m.initial.Total)
	m.log.Info("run %s: %d bodies, timestep %.0fs", m.runID, sys.Len(), sys.Timestep)
	return m
}

// RunID identifies this simulation run in logs and exports.
func (m *Manager) RunID() uuid.UUID {
	return m.runID
}

// Context returns a copy of the interactive context.
func (m *Manager) Context() SimulationContext {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ctx
}

// UpdateContext applies fn to the context under the lock.
func (m *Manager) UpdateContext(fn func(*SimulationContext)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.ctx
	fn(&m.ctx)

	if before.Paused != m.ctx.Paused {
		typ := EventResumed
		if m.ctx.Paused {
			typ = EventPaused
		}
		m.addEvent(Event{Type: typ, Timestamp: time.Now(), SimTime: m.system.Time})
		m.log.Debug("%s at step %d", typ, m.system.Steps)
	}
	if before.StepsPerFrame != m.ctx.StepsPerFrame {
		m.log.Debug("speed %dx", m.ctx.StepsPerFrame)
	}
}

// Advance runs one frame: StepsPerFrame steps, or nothing while paused.
// It returns the merges of all steps and the counts of the last one.
func (m *Manager) Advance() physics.StepResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Paused {
		return physics.StepResult{Time: m.system.Time}
	}

	var result physics.StepResult
	for i := 0; i < m.ctx.StepsPerFrame; i++ {
		r := m.step()
		result.Merges = append(result.Merges, r.Merges...)
		result.Integrated = r.Integrated
		result.Paused = r.Paused
		result.Time = r.Time
	}
	return result
}

// StepOnce runs exactly one step, even while paused.
func (m *Manager) StepOnce() physics.StepResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step()
}

func (m *Manager) step() physics.StepResult {
	r := m.system.Step(m.ctx.PausedFunc())
	m.lastStep = r

	now := time.Now()
	for _, ev := range r.Merges {
		m.addEvent(Event{
			Type:      EventMerge,
			Timestamp: now,
			SimTime:   ev.Time,
			Body:      ev.Name,
			Parts:     []string{ev.LeftName, ev.RightName},
			Mass:      ev.Mass,
		})
		m.log.Info("merge %s + %s -> %s (%.3e kg) at day %.1f",
			ev.LeftName, ev.RightName, ev.Name, ev.Mass, ev.Time/86400)

		// Interaction targets that were merged away no longer exist.
		for _, id := range []physics.BodyID{ev.Left, ev.Right} {
			if m.ctx.Hovered == id {
				m.ctx.Hovered = 0
			}
			if m.ctx.Dragged == id {
				m.ctx.Dragged = 0
			}
		}
	}

	m.recordEnergy(m.system.Diagnostics().Total)
	return r
}

// MoveBody displaces a body by delta meters. It reports whether the body
// exists.
func (m *Manager) MoveBody(id physics.BodyID, delta physics.Vec) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.system.Get(id)
	if !ok {
		return false
	}
	b.Pos = r2.Add(b.Pos, delta)
	return true
}

// Bodies returns copies of the current bodies in insertion order.
func (m *Manager) Bodies() []*physics.Body {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cloneBodies()
}

func (m *Manager) cloneBodies() []*physics.Body {
	live := m.system.Bodies()
	bodies := make([]*physics.Body, len(live))
	for i, b := range live {
		bodies[i] = b.Clone()
	}
	return bodies
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) recordEnergy(total float64) {
	m.energy = append(m.energy, TimeSeries{SimTime: m.system.Time, Value: total})
	if len(m.energy) > m.maxHistoryLen {
		m.energy = m.energy[1:]
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	RunID       string
	Time        float64 // simulated seconds
	Steps       int
	Timestep    float64
	TrailLimit  int
	Bodies      []*physics.Body
	Context     SimulationContext
	Diagnostics physics.Diagnostics
	Initial     physics.Diagnostics
	LastStep    physics.StepResult
	Energy      []TimeSeries
	Events      []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	energy := make([]TimeSeries, len(m.energy))
	copy(energy, m.energy)

	return Snapshot{
		RunID:       m.runID.String(),
		Time:        m.system.Time,
		Steps:       m.system.Steps,
		Timestep:    m.system.Timestep,
		TrailLimit:  m.system.TrailLimit,
		Bodies:      m.cloneBodies(),
		Context:     m.ctx,
		Diagnostics: m.system.Diagnostics(),
		Initial:     m.initial,
		LastStep:    m.lastStep,
		Energy:      energy,
		Events:      m.getEventsOrdered(),
	}
}

// Days returns the simulated time in days.
func (s Snapshot) Days() float64 {
	return s.Time / 86400
}

// EnergyDrift returns the relative change of total energy since the run
// started. Merges are inelastic, so drift after a merge is expected.
func (s Snapshot) EnergyDrift() float64 {
	if s.Initial.Total == 0 {
		return 0
	}
	return (s.Diagnostics.Total - s.Initial.Total) / math.Abs(s.Initial.Total)
}

// Body finds a body in the snapshot by ID.
func (s Snapshot) Body(id physics.BodyID) (*physics.Body, bool) {
	if id == 0 {
		return nil, false
	}
	for _, b := range s.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
