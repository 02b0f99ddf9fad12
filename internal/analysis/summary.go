package analysis

import (
	"encoding/json"
	"math"

	"github.com/san-kum/sirsim/internal/models"
	"github.com/san-kum/sirsim/internal/sim"
)

// Summary condenses a trajectory into a handful of epidemic indicators.
type Summary struct {
	B                float64 `json:"b"`
	K                float64 `json:"k"`
	R0               float64 `json:"r0"`
	HerdThreshold    float64 `json:"herd_threshold"`
	PeakInfected     float64 `json:"peak_infected"`
	PeakDay          float64 `json:"peak_day"`
	FinalSusceptible float64 `json:"final_susceptible"`
	FinalRecovered   float64 `json:"final_recovered"`
	FinalInfected    float64 `json:"final_infected"`
	AttackRate       float64 `json:"attack_rate"`
	MassDrift        float64 `json:"mass_drift"`
	Samples          int     `json:"samples"`
}

// Summarize computes indicators for traj. The herd immunity threshold is
// 1 - 1/R0 and is zero when R0 <= 1.
func Summarize(traj *sim.Trajectory, p models.Params) Summary {
	sum := Summary{
		B:       p.B,
		K:       p.K,
		R0:      p.R0(),
		Samples: traj.Len(),
	}
	if traj.Len() == 0 {
		return sum
	}

	if sum.R0 > 1 {
		sum.HerdThreshold = 1 - 1/sum.R0
	}

	first := traj.States[0]
	total0 := first.Sum()
	for i, x := range traj.States {
		if i == 0 || x[models.Infected] > sum.PeakInfected {
			sum.PeakInfected = x[models.Infected]
			sum.PeakDay = traj.Times[i]
		}
		if total0 != 0 {
			sum.MassDrift = math.Max(sum.MassDrift, math.Abs(x.Sum()-total0)/math.Abs(total0))
		}
	}

	last := traj.Final()
	sum.FinalSusceptible = last[models.Susceptible]
	sum.FinalRecovered = last[models.Recovered]
	sum.FinalInfected = last[models.Infected]
	sum.AttackRate = first[models.Susceptible] - last[models.Susceptible]

	return sum
}

// MarshalJSON encodes an unbounded R0 (k = 0) as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	type alias Summary
	var r0 *float64
	if !math.IsInf(s.R0, 0) {
		r0 = &s.R0
	}
	return json.Marshal(struct {
		alias
		R0 *float64 `json:"r0"`
	}{alias(s), r0})
}
