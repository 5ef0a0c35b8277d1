package trajectory

import (
	"fmt"
	"math"

	"github.com/san-kum/unitrack/internal/rover"
)

// ReplaySamples carries a recorded trajectory as parallel scalar sequences.
// V and Omega must have equal length, as must X, Y and Theta; the command
// group and the pose group may differ in length.
type ReplaySamples struct {
	V     []float64
	Omega []float64
	X     []float64
	Y     []float64
	Theta []float64
}

// Replay builds a store from recorded samples. Commands are stored
// unchanged. Each pose sample, expressed in the trajectory's own frame, is
// roto-translated by offset into the world frame:
//
//	x' = x0 + x*cos(th0) - y*sin(th0)
//	y' = y0 + x*sin(th0) + y*cos(th0)
//	th' = th0 + th
//
// Headings are not wrapped, so a continuous heading profile stays
// continuous after the transform.
func Replay(samples ReplaySamples, offset rover.Pose, dt float64) (*Store, error) {
	if dt <= 0 {
		return nil, rover.ErrNonPositiveStep
	}
	if len(samples.V) != len(samples.Omega) {
		return nil, fmt.Errorf("replay command samples: %w (v %d, omega %d)",
			rover.ErrSampleLengths, len(samples.V), len(samples.Omega))
	}
	if len(samples.X) != len(samples.Y) || len(samples.X) != len(samples.Theta) {
		return nil, fmt.Errorf("replay pose samples: %w (x %d, y %d, theta %d)",
			rover.ErrSampleLengths, len(samples.X), len(samples.Y), len(samples.Theta))
	}

	cmds := make([]rover.Command, len(samples.V))
	for i := range samples.V {
		cmds[i] = rover.Command{V: samples.V[i], Omega: samples.Omega[i]}
	}

	poses := make([]rover.Pose, len(samples.X))
	for i := range samples.X {
		poses[i] = offsetPose(offset, samples.X[i], samples.Y[i], samples.Theta[i])
	}

	return newStore(dt, poses, cmds), nil
}

func offsetPose(offset rover.Pose, x, y, theta float64) rover.Pose {
	sin, cos := math.Sincos(offset.Theta)
	return rover.Pose{
		X:     offset.X + x*cos - y*sin,
		Y:     offset.Y + x*sin + y*cos,
		Theta: offset.Theta + theta,
	}
}

// Simulate builds a store by integrating a command sequence forward from
// offset on the given kinematic model. Sample i holds the pose reached
// after applying cmds[i] for one step, paired with cmds[i] itself; the
// offset pose is not stored.
func Simulate(cmds []rover.Command, offset rover.Pose, model rover.Model) (*Store, error) {
	dt := model.StepTime()
	if dt <= 0 {
		return nil, rover.ErrNonPositiveStep
	}

	model.Reset(offset)
	poses := make([]rover.Pose, 0, len(cmds))
	stored := make([]rover.Command, 0, len(cmds))
	for _, c := range cmds {
		model.SetCommand(c)
		model.StepOnce()
		poses = append(poses, model.Pose())
		stored = append(stored, c)
	}

	return newStore(dt, poses, stored), nil
}
