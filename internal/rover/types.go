package rover

import "math"

// Pose is a planar position and heading in the world frame.
type Pose struct {
	X     float64
	Y     float64
	Theta float64
}

// Command is a unicycle velocity command: linear speed and turn rate.
type Command struct {
	V     float64
	Omega float64
}

// TrackingError holds world-frame tracking errors from the last control
// evaluation: position error components and the wrapped heading error.
type TrackingError struct {
	X       float64
	Y       float64
	Heading float64
}

// Distance returns the Euclidean position error magnitude.
func (e TrackingError) Distance() float64 {
	return math.Hypot(e.X, e.Y)
}

// State is a raw state vector consumed by the integrator layer.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Control is a raw control vector consumed by the integrator layer.
type Control []float64

// System is a controlled ODE in state-vector form.
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Integrator advances a System state by one fixed time step.
type Integrator interface {
	Step(sys System, x State, u Control, t, dt float64) State
}

// Model is a stateful fixed-step kinematic integrator. Trajectory
// generation and closed-loop simulation both drive one: reset it to a pose,
// set a command, advance one step, read the pose back.
type Model interface {
	Reset(p Pose)
	SetCommand(c Command)
	StepOnce()
	Pose() Pose
	StepTime() float64
}

// Tracker computes a velocity command that drives the current pose toward
// a loaded reference trajectory. Elapsed time is supplied explicitly by the
// caller; the tracker keeps no clock of its own.
type Tracker interface {
	Step(pose Pose, t float64) (Command, error)
	Finished() bool
}

// Metric accumulates a scalar statistic over a tracking session.
type Metric interface {
	Name() string
	Observe(pose Pose, cmd Command, e TrackingError, t float64)
	Value() float64
	Reset()
}

// Observer is notified of every tracking step.
type Observer interface {
	OnStep(pose Pose, cmd Command, e TrackingError, t float64)
}
