package integrators

import "github.com/san-kum/unitrack/internal/rover"

// Euler is the explicit first-order method. It matches the forward
// difference update used on the rover itself, so generated trajectories
// stay comparable with onboard dead reckoning.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys rover.System, x rover.State, u rover.Control, t, dt float64) rover.State {
	dx := sys.Derive(x, u, t)
	result := make(rover.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
