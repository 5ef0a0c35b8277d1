package plan

import (
	"fmt"

	"github.com/san-kum/unitrack/internal/rover"
)

// Straight drives forward at a constant speed.
func Straight(v, duration, dt float64) ([]rover.Command, error) {
	n, err := sampleCount(duration, dt)
	if err != nil {
		return nil, err
	}

	cmds := make([]rover.Command, n)
	for i := range cmds {
		cmds[i] = rover.Command{V: v}
	}
	return cmds, nil
}

// Arc drives a constant-curvature turn at speed v and turn rate omega.
func Arc(v, omega, duration, dt float64) ([]rover.Command, error) {
	n, err := sampleCount(duration, dt)
	if err != nil {
		return nil, err
	}

	cmds := make([]rover.Command, n)
	for i := range cmds {
		cmds[i] = rover.Command{V: v, Omega: omega}
	}
	return cmds, nil
}

// Chicane reproduces the bench S-curve: speed ramps from zero to vMax over
// the first tenth of the duration, then the robot turns at omegaMax until
// 60% of the duration and at -omegaMax for the rest. The ramp is
// normalized so the speed tops out exactly at vMax.
func Chicane(vMax, omegaMax, duration, dt float64) ([]rover.Command, error) {
	n, err := sampleCount(duration, dt)
	if err != nil {
		return nil, err
	}

	t1 := 0.1 * duration
	t2 := 0.6 * duration

	cmds := make([]rover.Command, n)
	for i := range cmds {
		t := float64(i) * dt
		switch {
		case t < t1:
			cmds[i] = rover.Command{V: vMax * t / t1}
		case t < t2:
			cmds[i] = rover.Command{V: vMax, Omega: omegaMax}
		default:
			cmds[i] = rover.Command{V: vMax, Omega: -omegaMax}
		}
	}
	return cmds, nil
}

// Piecewise expands a compact turn-rate profile into per-step commands.
// omegas[i] holds between edges[i] and edges[i+1] while the speed stays
// constant at v. Dubins paths arrive in exactly this shape: up to three
// segments, with one more interval edge than there are turn rates.
func Piecewise(v float64, omegas, edges []float64, dt float64) ([]rover.Command, error) {
	if dt <= 0 {
		return nil, rover.ErrNonPositiveStep
	}
	if len(edges) != len(omegas)+1 {
		return nil, fmt.Errorf("plan needs %d interval edges for %d turn rates, got %d",
			len(omegas)+1, len(omegas), len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("interval edges must increase, got %g after %g",
				edges[i], edges[i-1])
		}
	}

	var cmds []rover.Command
	for i, omega := range omegas {
		n := int((edges[i+1] - edges[i]) / dt)
		for j := 0; j < n; j++ {
			cmds = append(cmds, rover.Command{V: v, Omega: omega})
		}
	}
	return cmds, nil
}

func sampleCount(duration, dt float64) (int, error) {
	if dt <= 0 {
		return 0, rover.ErrNonPositiveStep
	}
	if duration <= 0 {
		return 0, fmt.Errorf("plan duration must be positive, got %g", duration)
	}
	return int(duration / dt), nil
}
