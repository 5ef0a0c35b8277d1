package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/unitrack/internal/rover"
)

// CrossTrack accumulates the position error magnitude and reports its RMS.
type CrossTrack struct {
	name    string
	samples []float64
}

func NewCrossTrack() *CrossTrack {
	return &CrossTrack{
		name: "cross_track_rms",
	}
}

func (c *CrossTrack) Name() string {
	return c.name
}

func (c *CrossTrack) Observe(pose rover.Pose, cmd rover.Command, e rover.TrackingError, t float64) {
	c.samples = append(c.samples, e.Distance())
}

func (c *CrossTrack) Value() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(c.samples, c.samples) / float64(len(c.samples)))
}

func (c *CrossTrack) Reset() {
	c.samples = c.samples[:0]
}

// CrossTrackP95 reports the 95th percentile of the position error
// magnitude, which ignores brief transients that dominate a peak metric.
type CrossTrackP95 struct {
	name    string
	samples []float64
}

func NewCrossTrackP95() *CrossTrackP95 {
	return &CrossTrackP95{
		name: "cross_track_p95",
	}
}

func (c *CrossTrackP95) Name() string {
	return c.name
}

func (c *CrossTrackP95) Observe(pose rover.Pose, cmd rover.Command, e rover.TrackingError, t float64) {
	c.samples = append(c.samples, e.Distance())
}

func (c *CrossTrackP95) Value() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	sorted := make([]float64, len(c.samples))
	copy(sorted, c.samples)
	sort.Float64s(sorted)
	return stat.Quantile(0.95, stat.Empirical, sorted, nil)
}

func (c *CrossTrackP95) Reset() {
	c.samples = c.samples[:0]
}
