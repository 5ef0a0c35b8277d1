package rover

import (
	"errors"
	"fmt"
)

// Domain errors for trajectory and tracking operations.
var (
	// ErrTrajectoryIncomplete indicates control evaluation was attempted
	// before a trajectory was loaded.
	ErrTrajectoryIncomplete = errors.New("rover: desired trajectory incomplete")

	// ErrEmptyTrajectory indicates a time-indexed lookup on an empty sample
	// sequence.
	ErrEmptyTrajectory = errors.New("rover: empty trajectory")

	// ErrSampleLengths indicates parallel sample sequences with mismatched
	// lengths.
	ErrSampleLengths = errors.New("rover: sample sequences have mismatched lengths")

	// ErrNonPositiveStep indicates a zero or negative integration step time.
	ErrNonPositiveStep = errors.New("rover: step time must be positive")
)

// StepError wraps a failure at a specific step of a tracking session.
type StepError struct {
	Step    int
	Time    float64
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
