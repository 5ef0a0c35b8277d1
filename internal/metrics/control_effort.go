package metrics

import (
	"math"

	"github.com/san-kum/unitrack/internal/rover"
)

// ControlEffort reports the mean absolute command magnitude per step.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(pose rover.Pose, cmd rover.Command, e rover.TrackingError, t float64) {
	c.sum += math.Abs(cmd.V) + math.Abs(cmd.Omega)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
