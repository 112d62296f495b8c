package ui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-gravity/internal/physics"
	"github.com/litescript/ls-gravity/internal/state"
)

// newTestManager returns a manager over a Sun at the origin and an Earth
// analog at 1 AU on +x.
func newTestManager(t *testing.T) *state.Manager {
	t.Helper()
	sys := physics.NewSystem(physics.DefaultTimestep, 0)
	sun := physics.NewBody("Sun", physics.CategoryStar, physics.Vec{}, physics.Vec{}, 1.989e30, 30)
	sun.Color = "#FFFF00"
	earth := physics.NewBody("Earth", physics.CategoryPlanet, physics.Vec{X: physics.AU}, physics.Vec{Y: 29780}, 5.972e24, 10)
	earth.Color = "#6495ED"
	sys.Add(sun)
	sys.Add(earth)
	return state.NewManager(sys, state.DefaultConfig())
}

// newTestScene sizes the scene so the canvas is 82x40 cells; the Sun sits
// in cell (41,20) and Earth in cell (53,20).
func newTestScene(t *testing.T) (SceneModel, *state.Manager) {
	t.Helper()
	mgr := newTestManager(t)
	m := NewSceneModel(mgr).SetSize(124, 40).UpdateData(mgr.Snapshot())
	return m, mgr
}

func bodyNamed(t *testing.T, snap state.Snapshot, name string) *physics.Body {
	t.Helper()
	for _, b := range snap.Bodies {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("no body named %q", name)
	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestCameraMapping(t *testing.T) {
	cam := newCamera(82, 40, state.DefaultContext())

	tests := []struct {
		name string
		pos  physics.Vec
		col  int
		row  int
	}{
		{"origin", physics.Vec{}, 41, 20},
		{"1 AU right", physics.Vec{X: physics.AU}, 53, 20},
		{"1 AU down", physics.Vec{Y: physics.AU}, 41, 26},
		{"1 AU up", physics.Vec{Y: -physics.AU}, 41, 13},
	}
	for _, tt := range tests {
		col, row := cam.toCell(tt.pos)
		if col != tt.col || row != tt.row {
			t.Errorf("%s: toCell = (%d, %d), want (%d, %d)", tt.name, col, row, tt.col, tt.row)
		}
	}

	zoomed := newCamera(82, 40, state.SimulationContext{Zoom: 2, OffsetX: -80})
	if col, _ := zoomed.toCell(physics.Vec{X: physics.AU}); col != 56 {
		t.Errorf("zoomed col = %d, want 56", col)
	}

	d := cam.cellDelta(1, 1)
	if math.Abs(d.X-0.08*physics.AU) > 1 || math.Abs(d.Y-0.16*physics.AU) > 1 {
		t.Errorf("cellDelta(1,1) = %+v, want (0.08 AU, 0.16 AU)", d)
	}
}

func TestCameraHitTest(t *testing.T) {
	m, _ := newTestScene(t)
	cam := m.camera()
	sun := bodyNamed(t, m.snapshot, "Sun")
	earth := bodyNamed(t, m.snapshot, "Earth")

	tests := []struct {
		col, row int
		want     physics.BodyID
	}{
		{41, 20, sun.ID},
		{44, 20, sun.ID}, // about 29 px from center, radius 30
		{46, 20, 0},
		{53, 20, earth.ID},
		{5, 5, 0},
	}
	for _, tt := range tests {
		if got := cam.bodyAt(m.snapshot.Bodies, tt.col, tt.row); got != tt.want {
			t.Errorf("bodyAt(%d, %d) = %d, want %d", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestSceneModelKeys(t *testing.T) {
	m, mgr := newTestScene(t)

	m, _ = m.Update(key("+"))
	if got := mgr.Context().Zoom; math.Abs(got-1.1) > 1e-9 {
		t.Errorf("Zoom = %v, want 1.1", got)
	}

	m, _ = m.Update(key("right"))
	m, _ = m.Update(key("up"))
	ctx := mgr.Context()
	if ctx.OffsetX != -panStep || ctx.OffsetY != panStep {
		t.Errorf("offset = (%v, %v), want (%v, %v)", ctx.OffsetX, ctx.OffsetY, -panStep, panStep)
	}

	m, _ = m.Update(key("c"))
	ctx = mgr.Context()
	if ctx.Zoom != 1 || ctx.OffsetX != 0 || ctx.OffsetY != 0 {
		t.Errorf("after recenter = %+v", ctx)
	}

	m, _ = m.Update(key("l"))
	m, _ = m.Update(key("t"))
	ctx = mgr.Context()
	if !ctx.ShowLabels || ctx.ShowTrails {
		t.Errorf("labels=%v trails=%v, want true/false", ctx.ShowLabels, ctx.ShowTrails)
	}
	if m.snapshot.Context != ctx {
		t.Error("scene snapshot not refreshed after key")
	}
}

func TestSceneModelHover(t *testing.T) {
	m, mgr := newTestScene(t)
	earth := bodyNamed(t, m.snapshot, "Earth")

	m, _ = m.Update(mouse(53, 20, tea.MouseActionMotion, tea.MouseButtonNone))
	if got := mgr.Context().Hovered; got != earth.ID {
		t.Fatalf("Hovered = %d, want %d", got, earth.ID)
	}

	view := m.View()
	for _, want := range []string{"Name: Earth", "Type: Planet", "Mass: 5.97e+24 kg", "Velocity: (0.00e+00, 2.98e+04) m/s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = m.Update(mouse(5, 5, tea.MouseActionMotion, tea.MouseButtonNone))
	if got := mgr.Context().Hovered; got != 0 {
		t.Errorf("Hovered = %d, want 0 over empty space", got)
	}
	if strings.Contains(m.View(), "Name: Earth") {
		t.Error("info box still shown after leaving the body")
	}
}

func TestSceneModelDragBody(t *testing.T) {
	m, mgr := newTestScene(t)
	earth := bodyNamed(t, m.snapshot, "Earth")

	m, _ = m.Update(mouse(53, 20, tea.MouseActionPress, tea.MouseButtonLeft))
	if got := mgr.Context().Dragged; got != earth.ID {
		t.Fatalf("Dragged = %d, want %d", got, earth.ID)
	}

	// A dragged body is held by the pause predicate.
	mgr.StepOnce()
	m = m.UpdateData(mgr.Snapshot())
	if got := bodyNamed(t, m.snapshot, "Earth").Pos; got != earth.Pos {
		t.Errorf("dragged Earth integrated: %+v -> %+v", earth.Pos, got)
	}

	m, _ = m.Update(mouse(54, 20, tea.MouseActionMotion, tea.MouseButtonLeft))
	moved := bodyNamed(t, m.snapshot, "Earth")
	if want := earth.Pos.X + 0.08*physics.AU; math.Abs(moved.Pos.X-want) > 1 {
		t.Errorf("Earth x = %v, want %v", moved.Pos.X, want)
	}

	m, _ = m.Update(mouse(54, 20, tea.MouseActionRelease, tea.MouseButtonLeft))
	if got := mgr.Context().Dragged; got != 0 {
		t.Errorf("Dragged = %d after release, want 0", got)
	}
}

func TestSceneModelDragView(t *testing.T) {
	m, mgr := newTestScene(t)

	m, _ = m.Update(mouse(5, 5, tea.MouseActionPress, tea.MouseButtonLeft))
	m, _ = m.Update(mouse(7, 6, tea.MouseActionMotion, tea.MouseButtonLeft))
	ctx := mgr.Context()
	if ctx.OffsetX != 2*cellW || ctx.OffsetY != cellH {
		t.Errorf("offset = (%v, %v), want (%v, %v)", ctx.OffsetX, ctx.OffsetY, 2*cellW, cellH)
	}

	m, _ = m.Update(mouse(7, 6, tea.MouseActionRelease, tea.MouseButtonLeft))
	m, _ = m.Update(mouse(9, 6, tea.MouseActionMotion, tea.MouseButtonNone))
	if got := mgr.Context().OffsetX; got != 2*cellW {
		t.Errorf("OffsetX = %v, view kept panning after release", got)
	}
}

func TestSceneModelWheelZoom(t *testing.T) {
	m, mgr := newTestScene(t)

	m, _ = m.Update(mouse(10, 10, tea.MouseActionPress, tea.MouseButtonWheelUp))
	if got := mgr.Context().Zoom; math.Abs(got-1.1) > 1e-9 {
		t.Errorf("Zoom = %v, want 1.1", got)
	}
	for i := 0; i < 20; i++ {
		m, _ = m.Update(mouse(10, 10, tea.MouseActionPress, tea.MouseButtonWheelDown))
	}
	if got := mgr.Context().Zoom; got != state.MinZoom {
		t.Errorf("Zoom = %v, want %v", got, state.MinZoom)
	}
}

func TestSceneModelView(t *testing.T) {
	m, mgr := newTestScene(t)
	for i := 0; i < 5; i++ {
		mgr.StepOnce()
	}
	m, _ = m.Update(key("l"))

	view := m.View()
	if !strings.Contains(view, "Earth / Planet") {
		t.Error("label missing from view")
	}
	if !strings.Contains(view, "◉ Simulation") || !strings.Contains(view, "day 5.0") {
		t.Error("side panel missing")
	}
	if !strings.Contains(view, "energy drift %") {
		t.Error("energy graph missing")
	}

	small := m.SetSize(10, 3)
	if !strings.Contains(small.View(), "too small") {
		t.Error("small terminal should be reported")
	}
}

func TestCanvas(t *testing.T) {
	cv := newCanvas(6, 2)
	cv.set(0, 0, 'a', "")
	cv.setIfEmpty(0, 0, 'b', "")
	cv.text(2, 1, "xyz!!", "")
	cv.set(-1, 0, 'q', "")
	cv.set(9, 9, 'q', "")

	if got := cv.render(); got != "a     \n  xyz!" {
		t.Errorf("render = %q", got)
	}
}

func TestMergeEvents(t *testing.T) {
	events := []state.Event{
		{Type: state.EventMerge, Body: "A+B"},
		{Type: state.EventPaused},
		{Type: state.EventMerge, Body: "C+D"},
		{Type: state.EventMerge, Body: "A+B+C+D"},
	}
	got := mergeEvents(events, 2)
	if len(got) != 2 || got[0].Body != "A+B+C+D" || got[1].Body != "C+D" {
		t.Errorf("mergeEvents = %+v", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"Earth+Moon+Mars", 8, "Earth+M…"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
