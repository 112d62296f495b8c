package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-gravity/internal/physics"
	"github.com/litescript/ls-gravity/internal/state"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func newTestModel(t *testing.T) (Model, *state.Manager) {
	t.Helper()
	mgr := newTestManager(t)
	m := New(mgr, Options{FPS: 30})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 124, Height: 40 + headerLines + footerLines})
	return m, mgr
}

func TestModelInit(t *testing.T) {
	mgr := newTestManager(t)
	m := New(mgr, Options{})

	if m.fps != 60 {
		t.Errorf("fps = %d, want default 60", m.fps)
	}
	if m.View() != "Initializing..." {
		t.Errorf("View before size = %q", m.View())
	}
	if m.Init() == nil {
		t.Error("Init should start the frame ticker")
	}
}

func TestModelFrameAdvancesSimulation(t *testing.T) {
	m, mgr := newTestModel(t)

	m, cmd := update(t, m, FrameMsg(time.Now()))
	if cmd == nil {
		t.Error("frame should schedule the next tick")
	}
	if m.snapshot.Steps != 1 || mgr.Snapshot().Steps != 1 {
		t.Errorf("Steps = %d, want 1", m.snapshot.Steps)
	}

	m, _ = update(t, m, key(" "))
	if !mgr.Context().Paused {
		t.Fatal("space should pause")
	}
	m, _ = update(t, m, FrameMsg(time.Now()))
	if m.snapshot.Steps != 1 {
		t.Errorf("Steps while paused = %d, want 1", m.snapshot.Steps)
	}

	m, _ = update(t, m, key("n"))
	if m.snapshot.Steps != 2 {
		t.Errorf("Steps after single step = %d, want 2", m.snapshot.Steps)
	}

	m, _ = update(t, m, key(" "))
	m, _ = update(t, m, key("n"))
	if m.snapshot.Steps != 2 {
		t.Errorf("n while running stepped: Steps = %d, want 2", m.snapshot.Steps)
	}
}

func TestModelSpeedAndFreezeKeys(t *testing.T) {
	m, mgr := newTestModel(t)

	m, _ = update(t, m, key("]"))
	m, _ = update(t, m, key("]"))
	if got := mgr.Context().StepsPerFrame; got != 4 {
		t.Errorf("StepsPerFrame = %d, want 4", got)
	}
	m, _ = update(t, m, FrameMsg(time.Now()))
	if m.snapshot.Steps != 4 {
		t.Errorf("Steps = %d, want 4", m.snapshot.Steps)
	}
	m, _ = update(t, m, key("["))
	if got := mgr.Context().StepsPerFrame; got != 2 {
		t.Errorf("StepsPerFrame = %d, want 2", got)
	}

	m, _ = update(t, m, key("h"))
	if !mgr.Context().FreezeOnHover {
		t.Error("h should enable freeze on hover")
	}
	if !strings.Contains(m.View(), "freeze on hover") {
		t.Error("panel should show freeze on hover")
	}
}

func TestModelMouseOffsetByHeader(t *testing.T) {
	m, mgr := newTestModel(t)

	m, _ = update(t, m, mouse(53, 20+headerLines, tea.MouseActionMotion, tea.MouseButtonNone))
	earth := bodyNamed(t, m.snapshot, "Earth")
	if got := mgr.Context().Hovered; got != earth.ID {
		t.Errorf("Hovered = %d, want Earth (%d)", got, earth.ID)
	}
}

func TestModelSubViewsSeeInitialState(t *testing.T) {
	mgr := newTestManager(t)
	m := New(mgr, Options{})

	if got := len(m.scene.snapshot.Bodies); got != 2 {
		t.Errorf("scene bodies before first frame = %d, want 2", got)
	}
	if got := len(m.diagnostics.snapshot.Bodies); got != 2 {
		t.Errorf("diagnostics bodies before first frame = %d, want 2", got)
	}
	if m.scene.snapshot.Context.Zoom != 1 {
		t.Errorf("scene zoom = %v, want 1", m.scene.snapshot.Context.Zoom)
	}
}

func TestModelViewSwitching(t *testing.T) {
	m, _ := newTestModel(t)

	if !strings.Contains(m.View(), "▶ [1] Scene") {
		t.Error("scene tab should be active")
	}

	m, _ = update(t, m, key("tab"))
	if m.viewMode != ViewDiagnostics {
		t.Fatalf("viewMode = %d, want diagnostics", m.viewMode)
	}
	view := m.View()
	for _, want := range []string{"▶ [2] Diagnostics", "Bodies", "Conservation", "Merge log", "no merges yet", "Earth"} {
		if !strings.Contains(view, want) {
			t.Errorf("diagnostics view missing %q", want)
		}
	}

	// Mouse input only reaches the scene.
	m, _ = update(t, m, mouse(53, 20+headerLines, tea.MouseActionMotion, tea.MouseButtonNone))
	if m.snapshot.Context.Hovered != 0 {
		t.Error("mouse handled while diagnostics shown")
	}

	m, _ = update(t, m, key("1"))
	if m.viewMode != ViewScene {
		t.Errorf("viewMode = %d, want scene", m.viewMode)
	}
}

func TestModelShowsMerges(t *testing.T) {
	sys := physics.NewSystem(physics.DefaultTimestep, 0)
	sys.Add(physics.NewBodyWithRadius("A", physics.CategoryPlanet, physics.Vec{}, physics.Vec{}, 1e24, 1e6))
	sys.Add(physics.NewBodyWithRadius("B", physics.CategoryMoon, physics.Vec{X: 1.5e6}, physics.Vec{}, 1e24, 1e6))
	m := New(state.NewManager(sys, state.DefaultConfig()), Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 124, Height: 43})
	m, _ = update(t, m, FrameMsg(time.Now()))

	if !strings.Contains(m.View(), "Merges") || !strings.Contains(m.View(), "A+B") {
		t.Error("scene panel should list the merge")
	}

	m, _ = update(t, m, key("2"))
	if !strings.Contains(m.View(), "A+B = A + B") {
		t.Errorf("merge log missing entry:\n%s", m.View())
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestGradientColor(t *testing.T) {
	tests := []struct {
		col, width int
		want       string
	}{
		{0, 7, "#FFD166"},
		{2, 7, "#F78C40"},
		{4, 7, "#E84A27"},
		{6, 7, "#9D4EDD"},
		{1, 7, "#FBAF53"},
		{0, 1, "#FFD166"},
	}
	for _, tt := range tests {
		if got := gradientColor(tt.col, tt.width); got != tt.want {
			t.Errorf("gradientColor(%d, %d) = %s, want %s", tt.col, tt.width, got, tt.want)
		}
	}
}
