// Package analysis provides post-run analysis tools for tracking sessions.
//
// The package includes tools for characterizing how a tracking run behaved:
//
//   - [CandidateTrace]: Lyapunov candidate values along the error history
//   - [NonIncreasing]: monotonicity check for a candidate trace
//   - [ConvergenceRate]: exponential decay rate of the position error
//   - [PowerSpectrum]: magnitude spectrum of a recorded signal
//   - [DominantPeriod]: strongest oscillation period in a recorded signal
//
// # Stability Checks
//
// A tracking run has converged when the candidate stays non-increasing:
//
//	v := analysis.CandidateTrace(result.Errors)
//	if ok, at := analysis.NonIncreasing(v, 1e-9); !ok {
//	    // Candidate rose at step `at`
//	}
package analysis
