package anim

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported animation format")
	ErrEncoderClosed     = errors.New("encoder closed")
)

// Encoder accumulates frames and writes them out on Close. Abort discards
// the artifact instead, leaving nothing at the output path.
type Encoder interface {
	Add(img image.Image) error
	Close() error
	Abort() error
}

type Options struct {
	// Delay between GIF frames in 100ths of a second.
	Delay int
	// FPS of AVI output.
	FPS int
	// Repeat sets the GIF loop flag so viewers replay it forever.
	Repeat bool
	// Quality of AVI JPEG frames, 1-100.
	Quality int
	// Frame size, required for AVI.
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{
		Delay:   1,
		FPS:     24,
		Repeat:  true,
		Quality: 90,
	}
}

// Formats lists the supported file extensions.
func Formats() []string { return []string{".gif", ".avi"} }

// Open creates the artifact at path. The encoder is picked from the file
// extension.
func Open(path string, opts Options) (Encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gif":
		return NewGIFEncoder(path, opts)
	case ".avi":
		return NewAVIEncoder(path, opts)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}
