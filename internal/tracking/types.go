package tracking

import "github.com/san-kum/unitrack/internal/rover"

// Config controls a tracking session run.
type Config struct {
	// Start is the plant's initial pose.
	Start rover.Pose

	// MaxTime bounds the session; steps run while t <= MaxTime. Zero
	// means run until the tracker reports finished, which requires a
	// Bounded tracker.
	MaxTime float64

	// ValidatePose aborts the run when the plant pose goes NaN or Inf.
	ValidatePose bool
}

// Result holds one aligned record per executed step: the pose the command
// was computed from, the command applied, and the tracking errors cached
// by that evaluation.
type Result struct {
	Times    []float64
	Poses    []rover.Pose
	Commands []rover.Command
	Errors   []rover.TrackingError
	Metrics  map[string]float64

	StepsTaken int
	Completed  bool
}

// Bounded is implemented by trackers that know their trajectory horizon.
// Sessions with MaxTime zero use it to cap the run.
type Bounded interface {
	EndTime() float64
}

// errorReporter is implemented by trackers that cache tracking errors per
// evaluation.
type errorReporter interface {
	Errors() rover.TrackingError
}
