package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the sum of all components.
func (s State) Sum() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Conserved is implemented by systems with a quantity that is invariant in
// continuous time, such as the total population of a closed compartment model.
type Conserved interface {
	Total(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator attempts a step of size dt and reports the suggested
// size of the next one. A step whose error estimate exceeds tol is not
// applied; the call returns ErrStepRejected and the shrunk step size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Dt            float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	MaxSteps      int
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.1,
		Tolerance:     1e-8,
		MaxDt:         10.0,
		MinDt:         1e-10,
		MaxSteps:      1_000_000,
		Adaptive:      true,
		ValidateState: true,
	}
}
