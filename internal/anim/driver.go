package anim

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/san-kum/sirsim/internal/logging"
	"github.com/san-kum/sirsim/internal/models"
	"github.com/san-kum/sirsim/internal/render"
	"github.com/san-kum/sirsim/internal/sim"
)

var ErrFinalized = errors.New("animation already finalized")

var log = logging.For("anim")

type State int

const (
	Running State = iota
	Done
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Driver replays a trajectory onto a surface, one prefix length per frame.
// The surface is owned by the driver and released once the artifact is
// finalized.
type Driver struct {
	surface *render.Surface
	traj    *sim.Trajectory
	params  models.Params
	state   State
	frames  int
}

func NewDriver(surface *render.Surface, traj *sim.Trajectory, params models.Params) *Driver {
	return &Driver{surface: surface, traj: traj, params: params, state: Running}
}

func (d *Driver) State() State { return d.state }

// Frames is the number of frames handed to the encoder so far.
func (d *Driver) Frames() int { return d.frames }

// Sequence returns the frame numbers of this trajectory.
func (d *Driver) Sequence(repeat bool) *Sequence {
	return NewSequence(d.traj.Len(), repeat)
}

// Render draws the prefix of length f.
func (d *Driver) Render(f int) (image.Image, error) {
	if d.state == Done {
		return nil, ErrFinalized
	}
	frame, err := render.BuildFrame(d.traj, d.params, f)
	if err != nil {
		return nil, err
	}
	return d.surface.Draw(frame)
}

// Save renders every frame once, in order, into enc and closes it. The
// driver moves to Done only after the encoder has been closed
// successfully.
func (d *Driver) Save(ctx context.Context, enc Encoder) error {
	if d.state == Done {
		return ErrFinalized
	}

	seq := d.Sequence(false)
	for f, ok := seq.Next(); ok; f, ok = seq.Next() {
		if err := ctx.Err(); err != nil {
			return d.abort(enc, err)
		}

		img, err := d.Render(f)
		if err != nil {
			return d.abort(enc, fmt.Errorf("frame %d: %w", f, err))
		}
		if err := enc.Add(img); err != nil {
			return d.abort(enc, fmt.Errorf("frame %d: %w", f, err))
		}
		d.frames++
	}

	if err := enc.Close(); err != nil {
		return err
	}

	d.state = Done
	d.surface.Close()
	log.WithField("frames", d.frames).Info("animation finalized")
	return nil
}

// abort discards the partial artifact. The driver stays Running.
func (d *Driver) abort(enc Encoder, cause error) error {
	if err := enc.Abort(); err != nil {
		log.WithError(err).Warn("discarding partial animation")
		return errors.Join(cause, err)
	}
	log.WithField("frames", d.frames).Debug("animation discarded")
	return cause
}
