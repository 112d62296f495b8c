package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/litescript/ls-gravity/internal/physics"
	"github.com/litescript/ls-gravity/internal/state"
)

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Name     string
	Type     string
	Distance string // from the center of mass
	Speed    string
	Mass     string
	Trail    int
}

// GenerateSummaryRows creates summary rows, one per body.
func GenerateSummaryRows(snap state.Snapshot) []SummaryRow {
	com := snap.Diagnostics.CenterOfMass
	rows := make([]SummaryRow, 0, len(snap.Bodies))
	for _, b := range snap.Bodies {
		rows = append(rows, SummaryRow{
			Name:     b.Name,
			Type:     b.Category.String(),
			Distance: FormatDistance(physics.Distance(b.Pos, com)),
			Speed:    FormatSpeed(b.Speed()),
			Mass:     FormatMass(b.Mass),
			Trail:    b.Trail.Len(),
		})
	}
	return rows
}

// EnergyStats returns the mean and standard deviation of the recorded
// total energy. Fewer than two points give a zero deviation.
func EnergyStats(series []state.TimeSeries) (mean, std float64) {
	if len(series) == 0 {
		return 0, 0
	}
	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}
	if len(values) < 2 {
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, snap state.Snapshot) {
	rows := GenerateSummaryRows(snap)

	fmt.Fprintf(w, "Run %s @ %s (%d steps of %.0fs)\n", snap.RunID, FormatDays(snap.Time), snap.Steps, snap.Timestep)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-18s %-10s %-12s %-12s %-14s %5s\n",
		"Name", "Type", "From COM", "Speed", "Mass", "Trail")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, r := range rows {
		fmt.Fprintf(w, "%-18s %-10s %-12s %-12s %-14s %5d\n",
			truncateStr(r.Name, 18),
			r.Type,
			r.Distance,
			r.Speed,
			r.Mass,
			r.Trail,
		)
	}

	d := snap.Diagnostics
	mean, std := EnergyStats(snap.Energy)
	fmt.Fprintln(w, strings.Repeat("─", 78))
	fmt.Fprintf(w, "Total mass:  %s\n", FormatMass(d.TotalMass))
	fmt.Fprintf(w, "Energy:      %.6e J (drift %+.4f%%)\n", d.Total, snap.EnergyDrift()*100)
	if mean != 0 {
		fmt.Fprintf(w, "Energy mean: %.6e J, stddev %.3e J (%.4f%%)\n", mean, std, 100*std/math.Abs(mean))
	}
	fmt.Fprintf(w, "Momentum:    (%.3e, %.3e) kg·m/s\n", d.Momentum.X, d.Momentum.Y)
	fmt.Fprintf(w, "Ang. mom.:   %.3e kg·m²/s\n", d.AngularMomentum)

	var merges []state.Event
	for _, e := range snap.Events {
		if e.Type == state.EventMerge {
			merges = append(merges, e)
		}
	}
	if len(merges) > 0 {
		fmt.Fprintf(w, "\nMerges:\n")
		for _, e := range merges {
			fmt.Fprintf(w, "  %-10s %s = %s (%s)\n", FormatDays(e.SimTime), e.Body, strings.Join(e.Parts, " + "), FormatMass(e.Mass))
		}
	}

	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(rows))
}

// WriteProgress writes a one-line status for periodic headless output.
func WriteProgress(w io.Writer, snap state.Snapshot) {
	fmt.Fprintf(w, "%-10s steps=%-7d bodies=%-3d E=%.6e J drift=%+.4f%%\n",
		FormatDays(snap.Time), snap.Steps, len(snap.Bodies), snap.Diagnostics.Total, snap.EnergyDrift()*100)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
