package sim

import (
	"fmt"

	"github.com/san-kum/sirsim/internal/dynamo"
)

// Grid is an evenly spaced sequence of output times. With Endpoint set the
// last point equals End, otherwise the grid covers [Start, End).
type Grid struct {
	Start    float64
	End      float64
	Points   int
	Endpoint bool
}

// NewGrid validates and returns a grid of n points between start and end.
func NewGrid(start, end float64, n int, endpoint bool) (Grid, error) {
	if n < 1 {
		return Grid{}, dynamo.ErrEmptyGrid
	}
	if end <= start {
		return Grid{}, fmt.Errorf("grid end %v must exceed start %v", end, start)
	}
	return Grid{Start: start, End: end, Points: n, Endpoint: endpoint}, nil
}

func (g Grid) Len() int { return g.Points }

// Spacing is the distance between consecutive points.
func (g Grid) Spacing() float64 {
	div := g.Points
	if g.Endpoint {
		div--
	}
	if div <= 0 {
		return 0
	}
	return (g.End - g.Start) / float64(div)
}

// At returns the i-th grid time.
func (g Grid) At(i int) float64 {
	if g.Endpoint && i == g.Points-1 && g.Points > 1 {
		return g.End
	}
	return g.Start + float64(i)*g.Spacing()
}

// Times materializes the grid.
func (g Grid) Times() []float64 {
	times := make([]float64, g.Points)
	for i := range times {
		times[i] = g.At(i)
	}
	return times
}
