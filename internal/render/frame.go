package render

import (
	"errors"
	"fmt"

	"github.com/san-kum/sirsim/internal/models"
	"github.com/san-kum/sirsim/internal/sim"
)

var ErrFrameRange = errors.New("frame index out of range")

// Frame is the data behind one animation step: the first Index samples of
// each compartment.
type Frame struct {
	Index  int
	Day    float64
	Params models.Params

	Times       []float64
	Susceptible []float64
	Recovered   []float64
	Infected    []float64
}

// BuildFrame slices the first f samples out of traj. f must lie in
// [1, traj.Len()]. The trajectory is not modified.
func BuildFrame(traj *sim.Trajectory, p models.Params, f int) (Frame, error) {
	prefix, err := traj.Prefix(f)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrFrameRange, err)
	}

	return Frame{
		Index:       f,
		Day:         prefix.Times[f-1],
		Params:      p,
		Times:       prefix.Times,
		Susceptible: prefix.Column(models.Susceptible),
		Recovered:   prefix.Column(models.Recovered),
		Infected:    prefix.Column(models.Infected),
	}, nil
}
