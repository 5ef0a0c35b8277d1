// Package lyapunov implements a nonlinear trajectory-tracking control law
// for unicycle robots. The controller holds a time-indexed reference
// trajectory and, given the measured pose and elapsed time, returns the
// velocity command
//
//	v     = v_ref     - Kp*e_xy*cos(theta - psi)
//	omega = omega_ref - Ktheta*e_theta - v_ref*sinc(e_theta/2)*sin(psi - alpha/2)
//
// where e_xy is the position error magnitude, psi the line-of-sight bearing
// of the error, e_theta the wrapped heading error and alpha the sum of the
// measured and reference headings. The feedback terms keep a tracking-error
// Lyapunov function non-increasing, so the error converges to zero for any
// feasible reference.
//
// Trajectories are loaded either from recorded samples (LoadReplay) or by
// forward-simulating a command sequence on an internal kinematic model
// (LoadSimulated). The caller owns the clock: it passes elapsed time into
// Step, and the controller reports completion once that time passes the
// trajectory horizon.
package lyapunov

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/unitrack/internal/integrators"
	"github.com/san-kum/unitrack/internal/rover"
	"github.com/san-kum/unitrack/internal/trajectory"
	"github.com/san-kum/unitrack/internal/unicycle"
)

// Decimation applied by DescribeSetup to keep trajectory dumps readable.
const (
	describeStride     = 100
	describeMaxSamples = 1000
)

// Controller tracks a loaded reference trajectory. Not safe for concurrent
// use.
type Controller struct {
	kp     float64
	ktheta float64
	dt     float64

	// gen integrates command sequences during trajectory construction.
	// It is dedicated to generation so loads never disturb the plant the
	// caller is stepping.
	gen rover.Model

	traj     *trajectory.Store
	finished bool
	errs     rover.TrackingError
}

// New builds a controller with proportional gains kp (longitudinal) and
// ktheta (heading) whose trajectories live on a dt-spaced sample grid.
// Generation integrates with the explicit Euler scheme; use
// NewWithGenerator to supply a different model.
//
// A fresh controller reports Finished until a trajectory is loaded.
func New(kp, ktheta, dt float64) (*Controller, error) {
	gen, err := unicycle.NewModel(dt, integrators.NewEuler())
	if err != nil {
		return nil, err
	}
	return NewWithGenerator(kp, ktheta, gen)
}

// NewWithGenerator builds a controller that integrates simulated
// trajectories on the supplied model. The sample grid step is the model's
// step time.
func NewWithGenerator(kp, ktheta float64, gen rover.Model) (*Controller, error) {
	if gen.StepTime() <= 0 {
		return nil, rover.ErrNonPositiveStep
	}
	return &Controller{
		kp:       kp,
		ktheta:   ktheta,
		dt:       gen.StepTime(),
		gen:      gen,
		finished: true,
	}, nil
}

// LoadReplay replaces the reference trajectory with recorded samples,
// roto-translated by offset. On error the previous trajectory is kept.
func (c *Controller) LoadReplay(samples trajectory.ReplaySamples, offset rover.Pose) error {
	traj, err := trajectory.Replay(samples, offset, c.dt)
	if err != nil {
		return err
	}
	c.traj = traj
	c.finished = false
	return nil
}

// LoadSimulated replaces the reference trajectory by integrating cmds
// forward from offset on the generation model. On error the previous
// trajectory is kept.
func (c *Controller) LoadSimulated(cmds []rover.Command, offset rover.Pose) error {
	traj, err := trajectory.Simulate(cmds, offset, c.gen)
	if err != nil {
		return err
	}
	c.traj = traj
	c.finished = false
	return nil
}

// Step evaluates the control law for the measured pose at elapsed time t.
//
// Without a usable trajectory it returns a zero command and
// ErrTrajectoryIncomplete. Once the trajectory has completed it returns a
// zero command and no error, leaving the cached errors untouched. After
// evaluating the law it marks the trajectory finished when t has reached
// the end time, so the crossing step still gets a real command.
func (c *Controller) Step(pose rover.Pose, t float64) (rover.Command, error) {
	if c.traj == nil || c.traj.Empty() {
		return rover.Command{}, rover.ErrTrajectoryIncomplete
	}
	if c.finished {
		return rover.Command{}, nil
	}

	cmd := c.computeLaw(pose, t)
	if t >= c.traj.EndTime() {
		c.finished = true
	}
	return cmd, nil
}

func (c *Controller) computeLaw(pose rover.Pose, t float64) rover.Command {
	// Lookups cannot fail here: Step rejects empty trajectories.
	poseRef, _ := c.traj.PoseAt(t)
	uRef, _ := c.traj.CommandAt(t)

	c.errs = rover.TrackingError{
		X:       pose.X - poseRef.X,
		Y:       pose.Y - poseRef.Y,
		Heading: rover.WrapToPi(pose.Theta - poseRef.Theta),
	}

	alpha := pose.Theta + poseRef.Theta
	psi := math.Atan2(c.errs.Y, c.errs.X)
	exy := c.errs.Distance()

	dv := -c.kp * exy * math.Cos(pose.Theta-psi)
	domega := -c.ktheta*c.errs.Heading -
		uRef.V*rover.Sinc(c.errs.Heading*0.5)*math.Sin(psi-alpha*0.5)

	return rover.Command{V: uRef.V + dv, Omega: uRef.Omega + domega}
}

// Finished reports whether the loaded trajectory has been tracked to its
// end. It stays true until a new trajectory is loaded.
func (c *Controller) Finished() bool {
	return c.finished
}

// Errors returns the tracking errors cached by the last law evaluation.
func (c *Controller) Errors() rover.TrackingError {
	return c.errs
}

// Gains returns the proportional gains (kp, ktheta).
func (c *Controller) Gains() (float64, float64) {
	return c.kp, c.ktheta
}

// StepTime returns the sample grid step.
func (c *Controller) StepTime() float64 {
	return c.dt
}

// EndTime returns the loaded trajectory's horizon, or zero when none is
// loaded.
func (c *Controller) EndTime() float64 {
	if c.traj == nil {
		return 0
	}
	return c.traj.EndTime()
}

// Trajectory returns the loaded reference trajectory, nil before any load.
func (c *Controller) Trajectory() *trajectory.Store {
	return c.traj
}

// DescribeSetup renders the gains and a decimated dump of the loaded
// trajectory. Informational only.
func (c *Controller) DescribeSetup() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Kp: %g K_theta: %g dt: %g\n", c.kp, c.ktheta, c.dt)
	if c.traj == nil {
		b.WriteString("no trajectory loaded\n")
		return b.String()
	}
	b.WriteString(c.traj.Describe(describeStride, describeMaxSamples))
	return b.String()
}
