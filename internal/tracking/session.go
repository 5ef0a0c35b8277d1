// Package tracking runs closed-loop tracking sessions: a tracker computes
// velocity commands against its reference trajectory and a plant model
// integrates them, step by step, until the trajectory completes or a time
// cap is hit.
package tracking

import (
	"context"
	"fmt"
	"math"

	"github.com/edaniels/golog"

	"github.com/san-kum/unitrack/internal/rover"
)

// Session wires a plant model to a tracker. Metrics and observers are
// notified once per step.
type Session struct {
	plant     rover.Model
	tracker   rover.Tracker
	metrics   []rover.Metric
	observers []rover.Observer
	logger    golog.Logger
}

func New(plant rover.Model, tracker rover.Tracker, logger golog.Logger) *Session {
	return &Session{
		plant:   plant,
		tracker: tracker,
		logger:  logger,
	}
}

func (s *Session) AddMetric(m rover.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o rover.Observer) { s.observers = append(s.observers, o) }

// Run executes the session loop. Each iteration reads the plant pose,
// evaluates the tracker at the current elapsed time, records the step,
// applies the command and advances the plant one step. The loop ends when
// the tracker reports finished (Completed true) or the time cap runs out
// (Completed false).
//
// Cancelling ctx stops the loop between steps and returns ctx.Err()
// alongside the partial result.
func (s *Session) Run(ctx context.Context, cfg Config) (*Result, error) {
	dt := s.plant.StepTime()
	if dt <= 0 {
		return nil, rover.ErrNonPositiveStep
	}

	maxSteps, err := s.stepBudget(cfg, dt)
	if err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.plant.Reset(cfg.Start)

	result := &Result{
		Times:    make([]float64, 0, maxSteps),
		Poses:    make([]rover.Pose, 0, maxSteps),
		Commands: make([]rover.Command, 0, maxSteps),
		Errors:   make([]rover.TrackingError, 0, maxSteps),
		Metrics:  make(map[string]float64),
	}

	s.logger.Debugf("tracking session: start=(%.3f, %.3f, %.3f) dt=%g budget=%d steps",
		cfg.Start.X, cfg.Start.Y, cfg.Start.Theta, dt, maxSteps)

	t := 0.0
	for i := 0; i < maxSteps; i++ {
		select {
		case <-ctx.Done():
			s.logger.Infof("tracking session cancelled at step %d (t=%.3f)", i, t)
			return result, ctx.Err()
		default:
		}

		pose := s.plant.Pose()
		cmd, err := s.tracker.Step(pose, t)
		if err != nil {
			s.logger.Errorf("tracking session aborted at step %d (t=%.3f): %v", i, t, err)
			return result, fmt.Errorf("step %d (t=%.4f): %w", i, t, err)
		}

		var e rover.TrackingError
		if r, ok := s.tracker.(errorReporter); ok {
			e = r.Errors()
		}

		for _, m := range s.metrics {
			m.Observe(pose, cmd, e, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(pose, cmd, e, t)
		}

		result.Times = append(result.Times, t)
		result.Poses = append(result.Poses, pose)
		result.Commands = append(result.Commands, cmd)
		result.Errors = append(result.Errors, e)

		s.plant.SetCommand(cmd)
		s.plant.StepOnce()
		t += dt
		result.StepsTaken++

		if cfg.ValidatePose {
			p := s.plant.Pose()
			if !(rover.State{p.X, p.Y, p.Theta}).IsValid() {
				stepErr := rover.StepError{Step: i, Time: t, Message: "invalid pose (NaN/Inf)"}
				s.logger.Errorf("tracking session aborted: %v", stepErr)
				return result, stepErr
			}
		}

		if s.tracker.Finished() {
			result.Completed = true
			break
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Infof("tracking session done: steps=%d t=%.3f completed=%v",
		result.StepsTaken, t, result.Completed)
	return result, nil
}

// stepBudget resolves the iteration cap. An explicit MaxTime covers
// t in [0, MaxTime]; otherwise the tracker's horizon plus one step leaves
// room for the crossing evaluation.
func (s *Session) stepBudget(cfg Config, dt float64) (int, error) {
	if cfg.MaxTime < 0 {
		return 0, fmt.Errorf("max time must not be negative, got %g", cfg.MaxTime)
	}
	if cfg.MaxTime > 0 {
		return int(math.Round(cfg.MaxTime/dt)) + 1, nil
	}
	b, ok := s.tracker.(Bounded)
	if !ok {
		return 0, fmt.Errorf("max time required for a tracker without a horizon")
	}
	return int(math.Round(b.EndTime()/dt)) + 2, nil
}
