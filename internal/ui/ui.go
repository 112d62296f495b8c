// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-gravity/internal/logging"
	"github.com/litescript/ls-gravity/internal/state"
	"github.com/litescript/ls-gravity/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewScene ViewMode = iota
	ViewDiagnostics
)

// Header is a title line plus the tab line; the footer is one line.
const (
	headerLines = 2
	footerLines = 1
)

// FrameMsg advances the simulation by one frame.
type FrameMsg time.Time

// Options configures the root model.
type Options struct {
	FPS    int
	Logger *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager
	log   *logging.Logger
	fps   int

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool

	// Sub-models
	scene       SceneModel
	diagnostics DiagnosticsModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	m := Model{
		state:       stateMgr,
		log:         log.With("ui"),
		fps:         fps,
		viewMode:    ViewScene,
		scene:       NewSceneModel(stateMgr),
		diagnostics: NewDiagnosticsModel(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.log.Info("quit at step %d", m.snapshot.Steps)
			return m, tea.Quit

		case "tab":
			m.viewMode = (m.viewMode + 1) % 2
		case "1":
			m.viewMode = ViewScene
		case "2":
			m.viewMode = ViewDiagnostics

		case " ":
			m.state.UpdateContext(func(c *state.SimulationContext) { c.Paused = !c.Paused })
		case "n":
			if m.state.Context().Paused {
				m.state.StepOnce()
			}
		case "[":
			m.state.UpdateContext((*state.SimulationContext).Slower)
		case "]":
			m.state.UpdateContext((*state.SimulationContext).Faster)
		case "h":
			m.state.UpdateContext(func(c *state.SimulationContext) { c.FreezeOnHover = !c.FreezeOnHover })

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}
		m.refresh()

	case tea.MouseMsg:
		if m.viewMode == ViewScene {
			msg.Y -= headerLines
			m.scene, _ = m.scene.Update(msg)
			m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - headerLines - footerLines
		m.scene = m.scene.SetSize(msg.Width, contentHeight)
		m.diagnostics = m.diagnostics.SetSize(msg.Width, contentHeight)

	case FrameMsg:
		cmds = append(cmds, tickCmd(m.fps))
		m.state.Advance()
		m.refresh()

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// refresh pulls a new snapshot and hands it to the sub-models.
func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot()
	m.scene = m.scene.UpdateData(m.snapshot)
	m.diagnostics = m.diagnostics.UpdateData(m.snapshot)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewScene:
		m.scene, cmd = m.scene.Update(msg)
	case ViewDiagnostics:
		m.diagnostics, cmd = m.diagnostics.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewScene:
		content = m.scene.View()
	case ViewDiagnostics:
		content = m.diagnostics.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

// Shared header styles.
var (
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F78C40")).Bold(true)
)

func (m Model) renderHeader() string {
	title := []rune(" ◉ LS-GRAVITY ")

	var b strings.Builder
	for col, r := range title {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, len(title)))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" n-body gravity · v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	return b.String()
}

// titleStops are the title gradient colors from left to right.
var titleStops = [][3]float64{
	{0xFF, 0xD1, 0x66},
	{0xF7, 0x8C, 0x40},
	{0xE8, 0x4A, 0x27},
	{0x9D, 0x4E, 0xDD},
}

// gradientColor returns the title color for column col of a width-wide
// title, interpolating linearly between titleStops.
func gradientColor(col, width int) string {
	if width <= 1 {
		col, width = 0, 2
	}
	pos := float64(col) / float64(width-1) * float64(len(titleStops)-1)
	i := min(max(int(pos), 0), len(titleStops)-2)
	t := min(max(pos-float64(i), 0), 1)

	from, to := titleStops[i], titleStops[i+1]
	channel := func(k int) int {
		return int(math.Round(from[k] + (to[k]-from[k])*t))
	}
	return fmt.Sprintf("#%02X%02X%02X", channel(0), channel(1), channel(2))
}

func (m Model) renderTabs() string {
	tabs := []struct {
		mode  ViewMode
		label string
	}{
		{ViewScene, "[1] Scene"},
		{ViewDiagnostics, "[2] Diagnostics"},
	}

	var b strings.Builder
	for _, tab := range tabs {
		b.WriteString("  ")
		if tab.mode == m.viewMode {
			b.WriteString(activeTabStyle.Render("▶ " + tab.label))
		} else {
			b.WriteString(mutedStyle.Render("  " + tab.label))
		}
	}
	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := mutedStyle
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	pausedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	ctx := m.snapshot.Context
	var status string
	if ctx.Paused {
		status = pausedStyle.Render("⏸ paused")
	} else {
		status = accentStyle.Render(fmt.Sprintf("▶ %dx", ctx.StepsPerFrame))
	}
	status += dimStyle.Render(fmt.Sprintf(" day %.1f", m.snapshot.Days()))

	var help string
	switch m.viewMode {
	case ViewDiagnostics:
		help = "↑↓: scroll | space: pause | tab: scene | q: quit"
	default:
		help = "space: pause | n: step | [/]: speed | +/-: zoom | arrows: pan | c: center | l: labels | t: trails | h: freeze | q: quit"
	}

	return " " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

func tickCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
