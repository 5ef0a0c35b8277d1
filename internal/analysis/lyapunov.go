package analysis

import (
	"math"

	"github.com/san-kum/unitrack/internal/rover"
)

// CandidateTrace evaluates the Lyapunov candidate
//
//	V = 0.5*(e_x^2 + e_y^2) + (1 - cos(e_theta))
//
// for every recorded tracking error. V is zero exactly when the robot sits
// on the reference with the reference heading, and positive everywhere
// else, so a trace that keeps falling means the controller is pulling the
// robot onto the trajectory.
func CandidateTrace(errs []rover.TrackingError) []float64 {
	trace := make([]float64, len(errs))
	for i, e := range errs {
		trace[i] = 0.5*(e.X*e.X+e.Y*e.Y) + (1 - math.Cos(e.Heading))
	}
	return trace
}

// NonIncreasing reports whether values never rise by more than tol between
// consecutive samples. On the first violation it returns false and the
// index of the sample that rose; otherwise it returns true and -1.
func NonIncreasing(values []float64, tol float64) (bool, int) {
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1]+tol {
			return false, i
		}
	}
	return true, -1
}
