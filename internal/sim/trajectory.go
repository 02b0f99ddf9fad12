package sim

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/san-kum/sirsim/internal/dynamo"
)

// Trajectory is the solution sampled on a grid. States[i] is the state at
// Times[i]. A trajectory is not modified after Run returns it.
type Trajectory struct {
	Times    []float64
	States   []dynamo.State
	Metrics  map[string]float64
	Steps    int
	Rejected int
}

func (tr *Trajectory) Len() int { return len(tr.States) }

// At returns the time and state at index i.
func (tr *Trajectory) At(i int) (float64, dynamo.State) {
	return tr.Times[i], tr.States[i]
}

// Column extracts component idx across all samples.
func (tr *Trajectory) Column(idx int) []float64 {
	return lo.Map(tr.States, func(x dynamo.State, _ int) float64 {
		return x[idx]
	})
}

// Prefix returns a view of the first n samples. The view shares storage
// with the receiver.
func (tr *Trajectory) Prefix(n int) (*Trajectory, error) {
	if n < 1 || n > tr.Len() {
		return nil, fmt.Errorf("prefix length %d outside [1, %d]", n, tr.Len())
	}
	return &Trajectory{
		Times:  tr.Times[:n:n],
		States: tr.States[:n:n],
	}, nil
}

// Final returns the last sampled state.
func (tr *Trajectory) Final() dynamo.State {
	return tr.States[len(tr.States)-1]
}
