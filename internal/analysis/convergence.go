package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ConvergenceRate fits log(dist) against time and returns the exponential
// decay rate in 1/s. A positive rate means the position error shrinks like
// exp(-rate*t); a run that drifts away comes back negative. Samples with a
// non-positive distance are skipped because their log is undefined. Returns
// 0 when fewer than two usable samples remain.
func ConvergenceRate(times, dists []float64) float64 {
	if len(times) != len(dists) {
		return 0
	}

	ts := make([]float64, 0, len(times))
	logs := make([]float64, 0, len(dists))
	for i, d := range dists {
		if d <= 0 {
			continue
		}
		ts = append(ts, times[i])
		logs = append(logs, math.Log(d))
	}
	if len(ts) < 2 {
		return 0
	}

	_, slope := stat.LinearRegression(ts, logs, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0
	}
	return -slope
}
