package metrics

import "github.com/san-kum/unitrack/internal/rover"

// SettlingTime reports the first time after which the position error stays
// under a threshold for the rest of the run. Value is -1 when the error
// never settles.
type SettlingTime struct {
	name      string
	threshold float64
	settledAt float64
	settled   bool
}

func NewSettlingTime(threshold float64) *SettlingTime {
	return &SettlingTime{
		name:      "settling_time",
		threshold: threshold,
	}
}

func (s *SettlingTime) Name() string {
	return s.name
}

func (s *SettlingTime) Observe(pose rover.Pose, cmd rover.Command, e rover.TrackingError, t float64) {
	if e.Distance() < s.threshold {
		if !s.settled {
			s.settled = true
			s.settledAt = t
		}
		return
	}
	s.settled = false
}

func (s *SettlingTime) Value() float64 {
	if !s.settled {
		return -1
	}
	return s.settledAt
}

func (s *SettlingTime) Reset() {
	s.settled = false
	s.settledAt = 0
}
