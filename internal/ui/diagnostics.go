package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-gravity/internal/report"
	"github.com/litescript/ls-gravity/internal/state"
)

// DiagnosticsModel shows the body table, conserved quantities, the energy
// drift plot and the merge log.
type DiagnosticsModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	scroll   int
}

// NewDiagnosticsModel creates a new diagnostics view.
func NewDiagnosticsModel() DiagnosticsModel {
	return DiagnosticsModel{}
}

// SetSize updates the viewport size.
func (m DiagnosticsModel) SetSize(width, height int) DiagnosticsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot.
func (m DiagnosticsModel) UpdateData(snapshot state.Snapshot) DiagnosticsModel {
	m.snapshot = snapshot
	if m.scroll > len(snapshot.Bodies)-1 {
		m.scroll = max(len(snapshot.Bodies)-1, 0)
	}
	return m
}

// Update handles input messages.
func (m DiagnosticsModel) Update(msg tea.Msg) (DiagnosticsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			if m.scroll < len(m.snapshot.Bodies)-1 {
				m.scroll++
			}
		}
	}
	return m, nil
}

// View renders the diagnostics screen.
func (m DiagnosticsModel) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	colStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	snap := m.snapshot
	var b strings.Builder

	b.WriteString(headerStyle.Render("Bodies"))
	b.WriteString("\n")
	b.WriteString(colStyle.Render(fmt.Sprintf("  %-18s %-10s %-12s %-12s %-14s", "Name", "Type", "From COM", "Speed", "Mass")))
	b.WriteString("\n")

	rows := report.GenerateSummaryRows(snap)
	tableRows := max(m.height/2-3, 3)
	end := min(m.scroll+tableRows, len(rows))
	for _, r := range rows[min(m.scroll, len(rows)):end] {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %-18s %-10s %-12s %-12s %-14s",
			truncate(r.Name, 18), r.Type, r.Distance, r.Speed, r.Mass)))
		b.WriteString("\n")
	}
	if len(rows) > tableRows {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d-%d of %d (↑↓ to scroll)", m.scroll+1, end, len(rows))))
		b.WriteString("\n")
	}

	d := snap.Diagnostics
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Conservation"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(fmt.Sprintf("  Mass %s   Energy %.4e J (drift %+.4f%%)",
		report.FormatMass(d.TotalMass), d.Total, snap.EnergyDrift()*100)))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(fmt.Sprintf("  Momentum (%.3e, %.3e) kg·m/s   L %.3e kg·m²/s",
		d.Momentum.X, d.Momentum.Y, d.AngularMomentum)))
	b.WriteString("\n\n")

	if graph := energyGraph(snap, max(m.width-16, 10), max(m.height/4, 3)); graph != "" {
		b.WriteString(graph)
		b.WriteString("\n\n")
	}

	b.WriteString(headerStyle.Render("Merge log"))
	b.WriteString("\n")
	merges := mergeEvents(snap.Events, 8)
	if len(merges) == 0 {
		b.WriteString(dimStyle.Render("  no merges yet"))
		b.WriteString("\n")
	}
	for _, e := range merges {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %-10s ", report.FormatDays(e.SimTime))))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s = %s (%s)", e.Body, strings.Join(e.Parts, " + "), report.FormatMass(e.Mass))))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
