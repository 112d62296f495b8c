// Package report renders simulation state for headless runs: a JSON
// snapshot export, a text summary table and one-line progress output.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-gravity/internal/physics"
	"github.com/litescript/ls-gravity/internal/state"
)

// SnapshotExport is the JSON-serializable representation of a run.
type SnapshotExport struct {
	RunID       string            `json:"run_id"`
	ExportedAt  time.Time         `json:"exported_at"`
	SimTime     float64           `json:"sim_time_seconds"`
	Days        float64           `json:"sim_days"`
	Steps       int               `json:"steps"`
	Timestep    float64           `json:"timestep_seconds"`
	Bodies      []BodyExport      `json:"bodies"`
	Merges      []state.Event     `json:"merges"`
	Diagnostics DiagnosticsExport `json:"diagnostics"`
}

// BodyExport is a JSON-friendly body in SI units.
type BodyExport struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Color        string  `json:"color,omitempty"`
	X            float64 `json:"x_m"`
	Y            float64 `json:"y_m"`
	VX           float64 `json:"vx_mps"`
	VY           float64 `json:"vy_mps"`
	Speed        float64 `json:"speed_mps"`
	Mass         float64 `json:"mass_kg"`
	Radius       float64 `json:"radius_m"`
	RenderRadius float64 `json:"render_radius_px"`
	TrailPoints  int     `json:"trail_points"`
}

// DiagnosticsExport holds the conserved quantities and energy drift.
type DiagnosticsExport struct {
	TotalMass       float64 `json:"total_mass_kg"`
	Kinetic         float64 `json:"kinetic_j"`
	Potential       float64 `json:"potential_j"`
	Total           float64 `json:"total_j"`
	InitialTotal    float64 `json:"initial_total_j"`
	EnergyDrift     float64 `json:"energy_drift"`
	MomentumX       float64 `json:"momentum_x"`
	MomentumY       float64 `json:"momentum_y"`
	AngularMomentum float64 `json:"angular_momentum"`
	EnergyMean      float64 `json:"energy_mean_j"`
	EnergyStdDev    float64 `json:"energy_stddev_j"`
}

// ExportSnapshot converts a state snapshot to an exportable format.
func ExportSnapshot(snap state.Snapshot, exportedAt time.Time) *SnapshotExport {
	export := &SnapshotExport{
		RunID:      snap.RunID,
		ExportedAt: exportedAt,
		SimTime:    snap.Time,
		Days:       snap.Days(),
		Steps:      snap.Steps,
		Timestep:   snap.Timestep,
		Bodies:     make([]BodyExport, 0, len(snap.Bodies)),
		Merges:     []state.Event{},
	}

	for _, b := range snap.Bodies {
		export.Bodies = append(export.Bodies, exportBody(b))
	}

	for _, e := range snap.Events {
		if e.Type == state.EventMerge {
			export.Merges = append(export.Merges, e)
		}
	}

	d := snap.Diagnostics
	mean, std := EnergyStats(snap.Energy)
	export.Diagnostics = DiagnosticsExport{
		TotalMass:       d.TotalMass,
		Kinetic:         d.Kinetic,
		Potential:       d.Potential,
		Total:           d.Total,
		InitialTotal:    snap.Initial.Total,
		EnergyDrift:     snap.EnergyDrift(),
		MomentumX:       d.Momentum.X,
		MomentumY:       d.Momentum.Y,
		AngularMomentum: d.AngularMomentum,
		EnergyMean:      mean,
		EnergyStdDev:    std,
	}

	return export
}

func exportBody(b *physics.Body) BodyExport {
	return BodyExport{
		ID:           uint64(b.ID),
		Name:         b.Name,
		Type:         b.Category.String(),
		Color:        b.Color,
		X:            b.Pos.X,
		Y:            b.Pos.Y,
		VX:           b.Vel.X,
		VY:           b.Vel.Y,
		Speed:        b.Speed(),
		Mass:         b.Mass,
		Radius:       b.PhysicalRadius,
		RenderRadius: b.RenderRadius,
		TrailPoints:  b.Trail.Len(),
	}
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
