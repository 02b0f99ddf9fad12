package anim

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/icza/mjpeg"
)

// AVIEncoder streams frames as JPEGs into a Motion JPEG AVI file.
type AVIEncoder struct {
	path   string
	w      mjpeg.AviWriter
	opts   *jpeg.Options
	buf    bytes.Buffer
	frames int
}

func NewAVIEncoder(path string, opts Options) (*AVIEncoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("avi frame size %dx%d must be positive", opts.Width, opts.Height)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultOptions().FPS
	}
	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultOptions().Quality
	}

	w, err := mjpeg.New(path, int32(opts.Width), int32(opts.Height), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating avi: %w", err)
	}
	return &AVIEncoder{path: path, w: w, opts: &jpeg.Options{Quality: quality}}, nil
}

func (e *AVIEncoder) Add(img image.Image) error {
	if e.w == nil {
		return ErrEncoderClosed
	}
	e.buf.Reset()
	if err := jpeg.Encode(&e.buf, img, e.opts); err != nil {
		return fmt.Errorf("encoding frame %d: %w", e.frames+1, err)
	}
	if err := e.w.AddFrame(e.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame %d: %w", e.frames+1, err)
	}
	e.frames++
	return nil
}

func (e *AVIEncoder) Frames() int { return e.frames }

func (e *AVIEncoder) Close() error {
	if e.w == nil {
		return ErrEncoderClosed
	}
	w := e.w
	e.w = nil
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing avi: %w", err)
	}
	return nil
}

// Abort finishes the writer so its file handle is released, then removes
// the partial file.
func (e *AVIEncoder) Abort() error {
	if e.w == nil {
		return ErrEncoderClosed
	}
	w := e.w
	e.w = nil
	var errs []error
	if err := w.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
