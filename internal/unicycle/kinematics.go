// Package unicycle implements the planar unicycle kinematic model used for
// trajectory generation and closed-loop simulation. State is [x y theta],
// control is [v omega]. Heading is left unwrapped so generated trajectories
// keep a continuous heading profile.
package unicycle

import (
	"math"

	"github.com/san-kum/unitrack/internal/rover"
)

type Kinematics struct{}

func NewKinematics() *Kinematics {
	return &Kinematics{}
}

func (k *Kinematics) StateDim() int {
	return 3
}

func (k *Kinematics) ControlDim() int {
	return 2
}

func (k *Kinematics) Derive(x rover.State, u rover.Control, t float64) rover.State {
	v := u[0]
	omega := u[1]
	theta := x[2]

	return rover.State{
		v * math.Cos(theta),
		v * math.Sin(theta),
		omega,
	}
}
