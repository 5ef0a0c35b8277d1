// Package tui provides the live terminal view of a tracking run.
package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/unitrack/internal/export"
	"github.com/san-kum/unitrack/internal/lyapunov"
	"github.com/san-kum/unitrack/internal/rover"
	"github.com/san-kum/unitrack/internal/viz"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	historyCap   = 600
	frameRate    = 60
	snapshotFile = "tracking_snapshot.svg"
)

type TickMsg time.Time

// Model drives the live view. It owns the plant and the controller and
// advances both between frames, so closing the view simply stops the run.
type Model struct {
	plant  rover.Model
	ctrl   *lyapunov.Controller
	cmds   []rover.Command
	offset rover.Pose
	start  rover.Pose

	canvas  *viz.Canvas
	vp      *viz.Viewport
	refPath []rover.Pose
	trail   []rover.Pose
	errHist []float64

	t            float64
	stepsPerTick int
	lastCmd      rover.Command
	running      bool
	err          error
}

// NewModel loads the command plan into the controller, resets the plant
// to the start pose and fits the view to the reference path.
func NewModel(plant rover.Model, ctrl *lyapunov.Controller, cmds []rover.Command, offset, start rover.Pose) (Model, error) {
	if err := ctrl.LoadSimulated(cmds, offset); err != nil {
		return Model{}, err
	}
	plant.Reset(start)

	canvas := viz.NewCanvas(canvasWidth, canvasHeight)
	refPath := ctrl.Trajectory().Poses()

	steps := 1
	if dt := plant.StepTime(); dt > 0 {
		steps = int(math.Round(1 / (frameRate * dt)))
		if steps < 1 {
			steps = 1
		}
	}

	return Model{
		plant:        plant,
		ctrl:         ctrl,
		cmds:         cmds,
		offset:       offset,
		start:        start,
		canvas:       canvas,
		vp:           viz.FitViewport(canvas, refPath, 0.1),
		refPath:      refPath,
		trail:        make([]rover.Pose, 0, historyCap),
		errHist:      make([]float64, 0, historyCap),
		stepsPerTick: steps,
		running:      true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "s":
			m.snapshot()
		}
	case TickMsg:
		if m.running && m.err == nil && !m.ctrl.Finished() {
			m.step()
		}
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the closed loop by one frame worth of control steps.
func (m *Model) step() {
	for i := 0; i < m.stepsPerTick && !m.ctrl.Finished(); i++ {
		cmd, err := m.ctrl.Step(m.plant.Pose(), m.t)
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.lastCmd = cmd
		m.plant.SetCommand(cmd)
		m.plant.StepOnce()
		m.t += m.plant.StepTime()

		m.errHist = append(m.errHist, m.ctrl.Errors().Distance())
		if len(m.errHist) > historyCap {
			m.errHist = m.errHist[1:]
		}
		m.trail = append(m.trail, m.plant.Pose())
		if len(m.trail) > historyCap {
			m.trail = m.trail[1:]
		}
	}
}

// reset reloads the trajectory and puts the plant back on the start pose.
func (m *Model) reset() {
	if err := m.ctrl.LoadSimulated(m.cmds, m.offset); err != nil {
		m.err = err
		return
	}
	m.plant.Reset(m.start)
	m.t = 0
	m.err = nil
	m.lastCmd = rover.Command{}
	m.trail = m.trail[:0]
	m.errHist = m.errHist[:0]
	m.running = true
}

func (m *Model) snapshot() {
	m.draw()
	svg := export.CanvasToSVG(m.canvas, 4.0)
	os.WriteFile(snapshotFile, []byte(svg), 0644)
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.vp.DrawPath(m.canvas, m.refPath)
	if len(m.trail) > 1 {
		m.vp.DrawPath(m.canvas, m.trail)
	}
	m.vp.DrawRobot(m.canvas, m.plant.Pose())
}

func (m Model) View() string {
	m.draw()
	canvasView := viz.CanvasPanel.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(viz.Header.Render("TRAJECTORY TRACKING") + "\n")

	status := viz.StatusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = viz.StatusPaused.Render("ERROR: " + m.err.Error())
	case m.ctrl.Finished():
		status = viz.StatusDone.Render("DONE")
	case !m.running:
		status = viz.StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if end := m.ctrl.EndTime(); end > 0 {
		s.WriteString(viz.ProgressBar(m.t/end, 30) + "\n\n")
	}

	if chart := viz.ErrorChart(viz.Tail(m.errHist, 300), 30, 4, "e_xy [m]"); chart != "" {
		s.WriteString(viz.Graph.Render(chart) + "\n\n")
	}

	pose := m.plant.Pose()
	e := m.ctrl.Errors()
	kp, ktheta := m.ctrl.Gains()

	s.WriteString(viz.Label.Render("Time") + viz.Value.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(viz.Label.Render("Pose") + viz.Value.Render(fmt.Sprintf("(%.2f, %.2f) θ=%.2f", pose.X, pose.Y, pose.Theta)) + "\n")
	s.WriteString(viz.Label.Render("Command") + viz.Value.Render(fmt.Sprintf("v=%.3f ω=%.3f", m.lastCmd.V, m.lastCmd.Omega)) + "\n")
	s.WriteString(viz.Label.Render("Error") + viz.Value.Render(fmt.Sprintf("e_xy=%.4f e_θ=%.4f", e.Distance(), e.Heading)) + "\n")
	s.WriteString(viz.Label.Render("Gains") + viz.Value.Render(fmt.Sprintf("Kp=%.1f Kθ=%.1f", kp, ktheta)) + "\n")

	if len(m.errHist) > 0 {
		s.WriteString("\n" + viz.SparklineChart(viz.Tail(m.errHist, 40), 40) + "\n")
	}

	s.WriteString(viz.Help.Render("\n─────────────────────\nSP:Pause R:Restart S:Snapshot Q:Quit"))

	statsView := viz.StatsPanel.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live view and blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
