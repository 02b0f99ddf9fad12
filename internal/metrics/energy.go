package metrics

import (
	"math"

	"github.com/san-kum/sirsim/internal/dynamo"
)

// MassDrift tracks the largest relative deviation of a conserved total from
// its value at the first observation.
type MassDrift struct {
	name     string
	initial  float64
	current  float64
	maxDrift float64
	samples  int
	dyn      dynamo.System
}

func NewMassDrift(dyn dynamo.System) *MassDrift {
	return &MassDrift{
		name: "mass_drift",
		dyn:  dyn,
	}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(x dynamo.State, t float64) {
	c, ok := m.dyn.(dynamo.Conserved)
	if !ok {
		return
	}

	total := c.Total(x)

	if m.samples == 0 {
		m.initial = total
	}

	m.current = total
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(total-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MassDrift) Value() float64 {
	return m.maxDrift
}

func (m *MassDrift) Reset() {
	m.initial = 0
	m.current = 0
	m.maxDrift = 0
	m.samples = 0
}
