package unicycle

import (
	"github.com/san-kum/unitrack/internal/rover"
)

// Model is a stateful fixed-step unicycle integrator. It holds a pose and
// the current velocity command and advances one step at a time, which is
// the shape both trajectory generation and closed-loop simulation need.
type Model struct {
	kin   *Kinematics
	integ rover.Integrator
	dt    float64

	state rover.State
	cmd   rover.Command
	t     float64
}

// NewModel builds a model that advances by dt per step using the given
// integrator.
func NewModel(dt float64, integ rover.Integrator) (*Model, error) {
	if dt <= 0 {
		return nil, rover.ErrNonPositiveStep
	}
	return &Model{
		kin:   NewKinematics(),
		integ: integ,
		dt:    dt,
		state: rover.State{0, 0, 0},
	}, nil
}

// Reset places the model at a pose, zeroes the command and restarts the
// internal clock.
func (m *Model) Reset(p rover.Pose) {
	m.state = rover.State{p.X, p.Y, p.Theta}
	m.cmd = rover.Command{}
	m.t = 0
}

// SetCommand fixes the velocity command applied on subsequent steps.
func (m *Model) SetCommand(c rover.Command) {
	m.cmd = c
}

// StepOnce advances the pose by one time step under the current command.
func (m *Model) StepOnce() {
	u := rover.Control{m.cmd.V, m.cmd.Omega}
	m.state = m.integ.Step(m.kin, m.state, u, m.t, m.dt)
	m.t += m.dt
}

// Pose returns the current pose. Heading is not wrapped.
func (m *Model) Pose() rover.Pose {
	return rover.Pose{X: m.state[0], Y: m.state[1], Theta: m.state[2]}
}

// StepTime returns the fixed step duration.
func (m *Model) StepTime() float64 {
	return m.dt
}

// Elapsed returns the time advanced since the last Reset.
func (m *Model) Elapsed() float64 {
	return m.t
}
