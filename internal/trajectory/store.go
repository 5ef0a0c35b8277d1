// Package trajectory stores time-indexed reference trajectories and builds
// them from recorded samples or forward-simulated command sequences.
//
// A trajectory is two parallel sequences sampled on a fixed dt grid: poses
// and velocity commands. Sample i corresponds to time i*dt. Lookups resolve
// a continuous time to the nearest sample; there is no interpolation
// between samples.
package trajectory

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/unitrack/internal/rover"
)

// Store is an immutable sampled trajectory. Build one with Replay or
// Simulate.
type Store struct {
	poses []rover.Pose
	cmds  []rover.Command
	dt    float64
}

func newStore(dt float64, poses []rover.Pose, cmds []rover.Command) *Store {
	return &Store{poses: poses, cmds: cmds, dt: dt}
}

// Dt returns the sample step time.
func (s *Store) Dt() float64 {
	return s.dt
}

// Len returns the number of pose samples.
func (s *Store) Len() int {
	return len(s.poses)
}

// Empty reports whether either sequence has no samples. A trajectory with
// only poses or only commands cannot drive the control law.
func (s *Store) Empty() bool {
	return len(s.poses) == 0 || len(s.cmds) == 0
}

// EndTime returns the time horizon covered by the pose sequence.
func (s *Store) EndTime() float64 {
	return s.dt * float64(len(s.poses))
}

// index maps a time to the nearest sample index, clamped to [0, n-1].
// Times before the first sample resolve to it, times past the last sample
// resolve to the last one and hold there.
func (s *Store) index(t float64, n int) int {
	i := int(math.Round(t / s.dt))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}

// PoseAt returns the reference pose nearest to time t.
func (s *Store) PoseAt(t float64) (rover.Pose, error) {
	if len(s.poses) == 0 {
		return rover.Pose{}, rover.ErrEmptyTrajectory
	}
	return s.poses[s.index(t, len(s.poses))], nil
}

// CommandAt returns the reference command nearest to time t.
func (s *Store) CommandAt(t float64) (rover.Command, error) {
	if len(s.cmds) == 0 {
		return rover.Command{}, rover.ErrEmptyTrajectory
	}
	return s.cmds[s.index(t, len(s.cmds))], nil
}

// Poses exposes the pose sequence for plotting and persistence. Callers
// must not mutate it.
func (s *Store) Poses() []rover.Pose {
	return s.poses
}

// Commands exposes the command sequence. Callers must not mutate it.
func (s *Store) Commands() []rover.Command {
	return s.cmds
}

// Describe renders a decimated table of the trajectory: every stride-th
// sample up to maxSamples rows, then a separator and the final sample.
func (s *Store) Describe(stride, maxSamples int) string {
	var b strings.Builder
	b.WriteString("x \t| y \t| theta \t| v \t| omega\n")

	if len(s.poses) == 0 {
		b.WriteString("(empty)\n")
		return b.String()
	}
	if stride < 1 {
		stride = 1
	}

	for i, printed := 0, 0; i < len(s.poses) && printed < maxSamples; i, printed = i+stride, printed+1 {
		b.WriteString(s.describeRow(i))
	}
	b.WriteString("------------------------------------------------------\n")
	b.WriteString(s.describeRow(len(s.poses) - 1))
	return b.String()
}

func (s *Store) describeRow(i int) string {
	p := s.poses[i]
	if i < len(s.cmds) {
		c := s.cmds[i]
		return fmt.Sprintf("%.3g\t | %.3g\t | %.3g\t | %.3g\t | %.3g\n", p.X, p.Y, p.Theta, c.V, c.Omega)
	}
	return fmt.Sprintf("%.3g\t | %.3g\t | %.3g\t | -\t | -\n", p.X, p.Y, p.Theta)
}
