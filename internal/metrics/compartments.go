package metrics

import (
	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/models"
)

func NewPeakInfected() *Peak { return NewPeak("peak_infected", models.Infected) }

func NewFinalSusceptible() *Last { return NewLast("final_susceptible", models.Susceptible) }

// Peak records the largest value of one compartment and when it occurred.
type Peak struct {
	name  string
	index int
	value float64
	time  float64
	seen  bool
}

func NewPeak(name string, index int) *Peak {
	return &Peak{name: name, index: index}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if !p.seen || x[p.index] > p.value {
		p.value = x[p.index]
		p.time = t
		p.seen = true
	}
}

func (p *Peak) Value() float64 { return p.value }

// Time is the first time the peak value was observed.
func (p *Peak) Time() float64 { return p.time }

func (p *Peak) Reset() {
	p.value, p.time, p.seen = 0, 0, false
}

// Last keeps the most recently observed value of one compartment.
type Last struct {
	name  string
	index int
	value float64
}

func NewLast(name string, index int) *Last {
	return &Last{name: name, index: index}
}

func (l *Last) Name() string                       { return l.name }
func (l *Last) Observe(x dynamo.State, t float64) { l.value = x[l.index] }
func (l *Last) Value() float64                     { return l.value }
func (l *Last) Reset()                             { l.value = 0 }
