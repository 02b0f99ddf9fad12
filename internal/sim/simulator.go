package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/logging"
)

var log = logging.For("sim")

type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	cfg        dynamo.Config
	metrics    []dynamo.Metric
}

func New(dyn dynamo.System, integrator dynamo.Integrator, cfg dynamo.Config) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		cfg:        cfg,
		metrics:    make([]dynamo.Metric, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }

// Run integrates from x0 at grid.At(0) and samples the state at every grid
// point. The first sample is x0 itself. Adaptive integrators are used with
// error control when cfg.Adaptive is set; steps are clipped so that every
// grid time is hit exactly.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, grid Grid) (*Trajectory, error) {
	if err := s.validate(x0, grid); err != nil {
		return nil, err
	}

	n := grid.Len()
	traj := &Trajectory{
		Times:   make([]float64, 0, n),
		States:  make([]dynamo.State, 0, n),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := grid.At(0)
	dt := s.cfg.Dt

	s.record(traj, x, t)

	adaptive, isAdaptive := s.integrator.(dynamo.AdaptiveIntegrator)
	useAdaptive := s.cfg.Adaptive && isAdaptive

	for j := 1; j < n; j++ {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		target := grid.At(j)
		for t < target {
			if traj.Steps >= s.cfg.MaxSteps {
				return nil, &dynamo.SimulationError{Step: traj.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrMaxSteps}
			}

			h := dt
			last := false
			if t+h >= target {
				h = target - t
				last = true
			}

			var newX dynamo.State
			if useAdaptive {
				var dtNext float64
				var err error
				newX, dtNext, err = adaptive.StepAdaptive(s.dyn, x, t, h, s.cfg.Tolerance)
				if errors.Is(err, dynamo.ErrStepRejected) {
					traj.Rejected++
					dt = dtNext
					if dt < s.cfg.MinDt {
						return nil, &dynamo.SimulationError{Step: traj.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrStepTooSmall}
					}
					continue
				}
				if err != nil {
					return nil, &dynamo.SimulationError{Step: traj.Steps, Time: t, State: x.Clone(), Wrapped: err}
				}
				// A step clipped to the grid must not shrink the working step.
				if !last || dtNext > dt {
					dt = dtNext
				}
				if s.cfg.MaxDt > 0 {
					dt = math.Min(dt, s.cfg.MaxDt)
				}
			} else {
				newX = s.integrator.Step(s.dyn, x, t, h)
			}

			if s.cfg.ValidateState && !newX.IsValid() {
				return nil, &dynamo.SimulationError{Step: traj.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrInvalidState}
			}

			x = newX
			if last {
				t = target
			} else {
				t += h
			}
			traj.Steps++
		}

		s.record(traj, x, t)
	}

	for _, m := range s.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}

	log.WithFields(logrus.Fields{
		"points":   traj.Len(),
		"steps":    traj.Steps,
		"rejected": traj.Rejected,
	}).Debug("integration finished")

	return traj, nil
}

func (s *Simulator) record(traj *Trajectory, x dynamo.State, t float64) {
	traj.Times = append(traj.Times, t)
	traj.States = append(traj.States, x.Clone())
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
}

func (s *Simulator) validate(x0 dynamo.State, grid Grid) error {
	if grid.Len() < 1 {
		return dynamo.ErrEmptyGrid
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("initial state has %d components, system wants %d: %w", len(x0), s.dyn.StateDim(), dynamo.ErrDimensionMismatch)
	}
	if !x0.IsValid() {
		return fmt.Errorf("initial state: %w", dynamo.ErrInvalidState)
	}
	if s.cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", s.cfg.Dt)
	}
	if s.cfg.Adaptive && s.cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	if s.cfg.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", s.cfg.MaxSteps)
	}
	return nil
}
