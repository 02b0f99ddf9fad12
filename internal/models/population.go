package models

import "math"

// Reference figures used to project the regional population.
const (
	BasePopulation      = 712127.0   // regional census
	ReferenceTotal      = 14483499.0 // national census
	ReferenceProjection = 17268000.0 // national projection
)

// InterpolatePopulation scales base by the growth of the reference total up
// to its projection and rounds to two decimals.
func InterpolatePopulation(base, total, projected float64) float64 {
	p := base + (base/total)*(projected-total)
	return math.Round(p*100) / 100
}

// DefaultPopulation is the projected regional population, 849035.79.
func DefaultPopulation() float64 {
	return InterpolatePopulation(BasePopulation, ReferenceTotal, ReferenceProjection)
}
