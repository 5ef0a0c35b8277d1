package metrics

import (
	"math"

	"github.com/san-kum/unitrack/internal/rover"
)

// HeadingPeak tracks the largest absolute heading error seen.
type HeadingPeak struct {
	name string
	peak float64
}

func NewHeadingPeak() *HeadingPeak {
	return &HeadingPeak{
		name: "heading_peak",
	}
}

func (h *HeadingPeak) Name() string {
	return h.name
}

func (h *HeadingPeak) Observe(pose rover.Pose, cmd rover.Command, e rover.TrackingError, t float64) {
	if a := math.Abs(e.Heading); a > h.peak {
		h.peak = a
	}
}

func (h *HeadingPeak) Value() float64 {
	return h.peak
}

func (h *HeadingPeak) Reset() {
	h.peak = 0
}
