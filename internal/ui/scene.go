package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/litescript/ls-gravity/internal/physics"
	"github.com/litescript/ls-gravity/internal/state"
)

const (
	panelWidth    = 42
	minPanelWidth = 80   // narrower terminals get the canvas only
	panStep       = 40.0 // px per arrow key press
	trailColor    = "240"
	labelColor    = "249"
)

// SceneModel renders the bodies on a pannable, zoomable canvas and handles
// pointer interaction: hover, dragging bodies and dragging the view.
type SceneModel struct {
	state    *state.Manager
	width    int
	height   int
	snapshot state.Snapshot

	// Pointer state, in canvas cells
	mouseX  int
	mouseY  int
	panning bool
}

// NewSceneModel creates a scene bound to the state manager.
func NewSceneModel(mgr *state.Manager) SceneModel {
	return SceneModel{state: mgr}
}

// SetSize updates the viewport size.
func (m SceneModel) SetSize(width, height int) SceneModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot.
func (m SceneModel) UpdateData(snapshot state.Snapshot) SceneModel {
	m.snapshot = snapshot
	return m
}

func (m SceneModel) canvasSize() (int, int) {
	w := m.width
	if m.width >= minPanelWidth {
		w -= panelWidth
	}
	return max(w, 1), max(m.height, 1)
}

func (m SceneModel) camera() camera {
	w, h := m.canvasSize()
	return newCamera(w, h, m.snapshot.Context)
}

// Update handles input messages. Mouse coordinates are relative to the
// top-left corner of the scene.
func (m SceneModel) Update(msg tea.Msg) (SceneModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			m.state.UpdateContext(func(c *state.SimulationContext) { c.Pan(0, panStep) })
		case "down":
			m.state.UpdateContext(func(c *state.SimulationContext) { c.Pan(0, -panStep) })
		case "left":
			m.state.UpdateContext(func(c *state.SimulationContext) { c.Pan(panStep, 0) })
		case "right":
			m.state.UpdateContext(func(c *state.SimulationContext) { c.Pan(-panStep, 0) })
		case "+", "=":
			m.state.UpdateContext((*state.SimulationContext).ZoomIn)
		case "-":
			m.state.UpdateContext((*state.SimulationContext).ZoomOut)
		case "c":
			m.state.UpdateContext((*state.SimulationContext).Recenter)
		case "l":
			m.state.UpdateContext(func(c *state.SimulationContext) { c.ShowLabels = !c.ShowLabels })
		case "t":
			m.state.UpdateContext(func(c *state.SimulationContext) { c.ShowTrails = !c.ShowTrails })
		default:
			return m, nil
		}
		m.snapshot = m.state.Snapshot()

	case tea.MouseMsg:
		m = m.handleMouse(msg)
		m.snapshot = m.state.Snapshot()
	}
	return m, nil
}

func (m SceneModel) handleMouse(msg tea.MouseMsg) SceneModel {
	cam := m.camera()
	ctx := m.snapshot.Context
	dx, dy := msg.X-m.mouseX, msg.Y-m.mouseY
	m.mouseX, m.mouseY = msg.X, msg.Y

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.state.UpdateContext((*state.SimulationContext).ZoomIn)
		case tea.MouseButtonWheelDown:
			m.state.UpdateContext((*state.SimulationContext).ZoomOut)
		case tea.MouseButtonLeft:
			if !cam.inside(msg.X, msg.Y) {
				break
			}
			if id := cam.bodyAt(m.snapshot.Bodies, msg.X, msg.Y); id != 0 {
				m.state.UpdateContext(func(c *state.SimulationContext) {
					c.Dragged = id
					c.Hovered = id
				})
			} else {
				m.panning = true
			}
		}

	case tea.MouseActionMotion:
		switch {
		case ctx.Dragged != 0:
			if dx != 0 || dy != 0 {
				m.state.MoveBody(ctx.Dragged, cam.cellDelta(dx, dy))
			}
		case m.panning:
			m.state.UpdateContext(func(c *state.SimulationContext) {
				c.Pan(float64(dx)*cellW, float64(dy)*cellH)
			})
		default:
			var hovered physics.BodyID
			if cam.inside(msg.X, msg.Y) {
				hovered = cam.bodyAt(m.snapshot.Bodies, msg.X, msg.Y)
			}
			if hovered != ctx.Hovered {
				m.state.UpdateContext(func(c *state.SimulationContext) { c.Hovered = hovered })
			}
		}

	case tea.MouseActionRelease:
		m.panning = false
		if ctx.Dragged != 0 {
			m.state.UpdateContext(func(c *state.SimulationContext) { c.Dragged = 0 })
		}
	}
	return m
}

// View renders the canvas and, on wide terminals, the side panel.
func (m SceneModel) View() string {
	if m.width < 20 || m.height < 5 {
		return "Terminal too small for the scene"
	}

	scene := m.buildCanvas().render()
	if m.width < minPanelWidth {
		return scene
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, scene, m.renderPanel())
}

func (m SceneModel) buildCanvas() *canvas {
	cam := m.camera()
	cv := newCanvas(cam.width, cam.height)
	ctx := m.snapshot.Context

	if ctx.ShowTrails {
		for _, b := range m.snapshot.Bodies {
			color := b.Color
			if color == "" {
				color = trailColor
			}
			for _, p := range b.Trail.Points() {
				col, row := cam.toCell(p)
				cv.setIfEmpty(col, row, '·', color)
			}
		}
	}

	for _, b := range m.snapshot.Bodies {
		m.drawBody(cv, cam, b, b.ID == ctx.Hovered || b.ID == ctx.Dragged)
	}

	if ctx.ShowLabels {
		for _, b := range m.snapshot.Bodies {
			col, row := cam.toCell(b.Pos)
			rx, _ := cam.radiusCells(b)
			label := fmt.Sprintf("%s / %s", b.Name, b.Category)
			cv.text(col+int(math.Ceil(rx))+1, row, label, labelColor)
		}
	}

	return cv
}

func (m SceneModel) drawBody(cv *canvas, cam camera, b *physics.Body, selected bool) {
	color := b.Color
	if color == "" {
		color = "252"
	}
	col, row := cam.toCell(b.Pos)
	rx, ry := cam.radiusCells(b)

	if rx >= 1 || ry >= 1 {
		r0, r1 := max(row-int(math.Ceil(ry)), 0), min(row+int(math.Ceil(ry)), cam.height-1)
		c0, c1 := max(col-int(math.Ceil(rx)), 0), min(col+int(math.Ceil(rx)), cam.width-1)
		for y := r0; y <= r1; y++ {
			for x := c0; x <= c1; x++ {
				nx := float64(x-col) / math.Max(rx, 0.5)
				ny := float64(y-row) / math.Max(ry, 0.5)
				if nx*nx+ny*ny <= 1 {
					cv.set(x, y, '█', color)
				}
			}
		}
	}

	glyph := '●'
	if selected {
		glyph = '◉'
	}
	cv.set(col, row, glyph, color)
}

func (m SceneModel) renderPanel() string {
	snap := m.snapshot
	ctx := snap.Context

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(10)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	alertStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render("◉ Simulation"))
	if ctx.Paused {
		b.WriteString("  " + alertStyle.Render("PAUSED"))
	}
	b.WriteString("\n")
	row("Time:", fmt.Sprintf("day %.1f", snap.Days()))
	row("Steps:", fmt.Sprintf("%d", snap.Steps))
	row("Bodies:", fmt.Sprintf("%d", len(snap.Bodies)))
	row("Speed:", fmt.Sprintf("%dx", ctx.StepsPerFrame))
	row("Zoom:", fmt.Sprintf("%.1fx", ctx.Zoom))
	row("Drift:", fmt.Sprintf("%+.4f%%", snap.EnergyDrift()*100))
	if ctx.FreezeOnHover {
		b.WriteString(dimStyle.Render("freeze on hover"))
		b.WriteString("\n")
	}

	if box := m.renderInfoBox(); box != "" {
		b.WriteString(box)
		b.WriteString("\n")
	}

	if graph := energyGraph(snap, panelWidth-12, 4); graph != "" {
		b.WriteString(graph)
		b.WriteString("\n")
	}

	merges := mergeEvents(snap.Events, 4)
	if len(merges) > 0 {
		b.WriteString(headerStyle.Render("Merges"))
		b.WriteString("\n")
		for _, e := range merges {
			b.WriteString(dimStyle.Render(fmt.Sprintf("day %-7.1f", e.SimTime/86400)))
			b.WriteString(valueStyle.Render(truncate(e.Body, panelWidth-12)))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(panelWidth).PaddingLeft(1).Render(strings.TrimRight(b.String(), "\n"))
}

// renderInfoBox describes the hovered or dragged body.
func (m SceneModel) renderInfoBox() string {
	ctx := m.snapshot.Context
	id := ctx.Dragged
	if id == 0 {
		id = ctx.Hovered
	}
	body, ok := m.snapshot.Body(id)
	if !ok {
		return ""
	}
	return infoBoxStyle.Render(strings.Join(bodyInfo(body), "\n"))
}

var infoBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7B2CBF")).
	Padding(0, 1)

// bodyInfo lists a body's properties, one per line.
func bodyInfo(b *physics.Body) []string {
	return []string{
		fmt.Sprintf("Name: %s", b.Name),
		fmt.Sprintf("Type: %s", b.Category),
		fmt.Sprintf("Radius: %.2e m", b.PhysicalRadius),
		fmt.Sprintf("Mass: %.2e kg", b.Mass),
		fmt.Sprintf("Position: (%.2e, %.2e) m", b.Pos.X, b.Pos.Y),
		fmt.Sprintf("Velocity: (%.2e, %.2e) m/s", b.Vel.X, b.Vel.Y),
	}
}

// energyGraph plots the relative energy drift in percent. It needs at
// least two samples.
func energyGraph(snap state.Snapshot, width, height int) string {
	if len(snap.Energy) < 2 || snap.Initial.Total == 0 {
		return ""
	}
	e0 := math.Abs(snap.Initial.Total)
	data := make([]float64, len(snap.Energy))
	for i, p := range snap.Energy {
		data[i] = (p.Value - snap.Initial.Total) / e0 * 100
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Cyan),
		asciigraph.Caption("energy drift %"))
}

// mergeEvents returns the last n merge events, newest first.
func mergeEvents(events []state.Event, n int) []state.Event {
	var out []state.Event
	for i := len(events) - 1; i >= 0 && len(out) < n; i-- {
		if events[i].Type == state.EventMerge {
			out = append(out, events[i])
		}
	}
	return out
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}
