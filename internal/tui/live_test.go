package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/unitrack/internal/integrators"
	"github.com/san-kum/unitrack/internal/lyapunov"
	"github.com/san-kum/unitrack/internal/rover"
	"github.com/san-kum/unitrack/internal/unicycle"
)

func testModel(t *testing.T) Model {
	t.Helper()
	plant, err := unicycle.NewModel(0.01, integrators.NewEuler())
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	ctrl, err := lyapunov.New(10, 1, 0.01)
	if err != nil {
		t.Fatalf("lyapunov.New: %v", err)
	}
	cmds := make([]rover.Command, 100)
	for i := range cmds {
		cmds[i] = rover.Command{V: 0.2}
	}
	m, err := NewModel(plant, ctrl, cmds, rover.Pose{}, rover.Pose{Y: 0.05})
	if err != nil {
		t.Fatalf("tui.NewModel: %v", err)
	}
	return m
}

func TestNewModelLoadsTrajectory(t *testing.T) {
	m := testModel(t)
	if len(m.refPath) != 100 {
		t.Fatalf("reference path has %d poses, want 100", len(m.refPath))
	}
	if m.ctrl.Finished() {
		t.Fatal("controller should be armed after load")
	}
	if m.stepsPerTick < 1 {
		t.Fatalf("stepsPerTick = %d, want >= 1", m.stepsPerTick)
	}
}

func TestTickAdvancesLoop(t *testing.T) {
	m := testModel(t)
	next, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	m = next.(Model)
	if m.t <= 0 {
		t.Fatalf("time did not advance, t = %g", m.t)
	}
	if len(m.trail) == 0 || len(m.errHist) == 0 {
		t.Fatal("tick should record trail and error history")
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(Model)
	if m.running {
		t.Fatal("space should pause the run")
	}

	before := m.t
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.t != before {
		t.Fatal("paused run should not advance")
	}
}

func TestResetRearms(t *testing.T) {
	m := testModel(t)
	for i := 0; i < 5; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	if m.t == 0 {
		t.Fatal("expected the run to have advanced before reset")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.t != 0 || len(m.trail) != 0 || len(m.errHist) != 0 {
		t.Fatal("reset should clear time and history")
	}
	if m.ctrl.Finished() {
		t.Fatal("reset should re-arm the controller")
	}
}

func TestQuitKey(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
}

func TestViewRendersPanels(t *testing.T) {
	m := testModel(t)
	view := m.View()
	if !strings.Contains(view, "TRAJECTORY TRACKING") {
		t.Fatal("view missing header")
	}
	if !strings.Contains(view, "RUNNING") {
		t.Fatal("view missing status")
	}
}
