package models

import (
	"fmt"
	"math"

	"github.com/san-kum/sirsim/internal/dynamo"
)

// Compartment indices. The state vector is ordered (s, r, i).
const (
	Susceptible = 0
	Recovered   = 1
	Infected    = 2
)

// Params holds the rate parameters of the SIR system. N scales the
// population fraction and is fixed at 1 for normalized runs.
type Params struct {
	N float64
	B float64
	K float64
}

// Validate reports whether the rates lie in [0, 1] and N is positive.
func (p Params) Validate() error {
	if math.IsNaN(p.B) || p.B < 0 || p.B > 1 {
		return fmt.Errorf("infection rate b=%v: %w", p.B, dynamo.ErrParameterBounds)
	}
	if math.IsNaN(p.K) || p.K < 0 || p.K > 1 {
		return fmt.Errorf("recovery rate k=%v: %w", p.K, dynamo.ErrParameterBounds)
	}
	if !(p.N > 0) || math.IsInf(p.N, 0) {
		return fmt.Errorf("population scale N=%v: %w", p.N, dynamo.ErrParameterBounds)
	}
	return nil
}

// R0 is the basic reproduction number b/k. It is +Inf when k is zero.
func (p Params) R0() float64 {
	if p.K == 0 {
		return math.Inf(1)
	}
	return p.B / p.K
}

// Rates evaluates the SIR right-hand side. t is accepted for signature
// compatibility with ODE solvers and does not appear in the equations.
func Rates(s, r, i, t, n, b, k float64) (dsdt, drdt, didt float64) {
	dsdt = -b * s * i / n
	drdt = k * i
	didt = b*s*i/n - k*i
	return dsdt, drdt, didt
}

// SIR is the fully mixed susceptible-infected-recovered model.
type SIR struct {
	params Params
}

func NewSIR(p Params) *SIR {
	return &SIR{params: p}
}

func (m *SIR) Params() Params { return m.params }

func (m *SIR) StateDim() int { return 3 }

// Derive returns (ds/dt, dr/dt, di/dt) for the state (s, r, i).
func (m *SIR) Derive(x dynamo.State, t float64) dynamo.State {
	ds, dr, di := Rates(x[Susceptible], x[Recovered], x[Infected], t, m.params.N, m.params.B, m.params.K)
	return dynamo.State{ds, dr, di}
}

// Total is the conserved population s + r + i.
func (m *SIR) Total(x dynamo.State) float64 {
	return x[Susceptible] + x[Recovered] + x[Infected]
}

// InitialCondition seeds a fully susceptible population with a single
// infected individual out of pop.
func InitialCondition(pop float64) dynamo.State {
	return dynamo.State{1, 0, 1 / pop}
}
