package anim

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
)

// GIFEncoder collects paletted frames in memory and encodes them on Close.
type GIFEncoder struct {
	path    string
	file    *os.File
	anim    gif.GIF
	delay   int
	palette color.Palette
	index   map[color.RGBA]uint8
}

// NewGIFEncoder creates the output file immediately so that an unwritable
// path fails before any frame is rendered.
func NewGIFEncoder(path string, opts Options) (*GIFEncoder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating gif: %w", err)
	}

	loop := -1
	if opts.Repeat {
		loop = 0
	}

	return &GIFEncoder{
		path:    path,
		file:    f,
		anim:    gif.GIF{LoopCount: loop},
		delay:   opts.Delay,
		palette: framePalette(),
		index:   make(map[color.RGBA]uint8),
	}, nil
}

func (e *GIFEncoder) Add(img image.Image) error {
	if e.file == nil {
		return ErrEncoderClosed
	}
	e.anim.Image = append(e.anim.Image, e.quantize(img))
	e.anim.Delay = append(e.anim.Delay, e.delay)
	return nil
}

func (e *GIFEncoder) Frames() int { return len(e.anim.Image) }

func (e *GIFEncoder) Close() error {
	if e.file == nil {
		return ErrEncoderClosed
	}
	f := e.file
	e.file = nil

	if len(e.anim.Image) == 0 {
		return e.discard(f, errors.New("encoding gif: no frames"))
	}
	if err := gif.EncodeAll(f, &e.anim); err != nil {
		return e.discard(f, fmt.Errorf("encoding gif: %w", err))
	}
	if err := f.Close(); err != nil {
		return e.discard(nil, fmt.Errorf("closing gif: %w", err))
	}
	return nil
}

// Abort drops the buffered frames and removes the output file.
func (e *GIFEncoder) Abort() error {
	if e.file == nil {
		return ErrEncoderClosed
	}
	f := e.file
	e.file = nil
	return e.discard(f, nil)
}

func (e *GIFEncoder) discard(f *os.File, cause error) error {
	e.anim.Image, e.anim.Delay = nil, nil
	var errs []error
	if cause != nil {
		errs = append(errs, cause)
	}
	if f != nil {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// quantize maps every pixel to its nearest palette entry. Chart frames use
// few distinct colors, so lookups are cached per color.
func (e *GIFEncoder) quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), e.palette)

	lookup := func(c color.RGBA) uint8 {
		idx, ok := e.index[c]
		if !ok {
			idx = uint8(e.palette.Index(c))
			e.index[c] = idx
		}
		return idx
	}

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			src := rgba.Pix[(y+b.Min.Y-rgba.Rect.Min.Y)*rgba.Stride+(b.Min.X-rgba.Rect.Min.X)*4:]
			row := dst.Pix[y*dst.Stride:]
			for x := 0; x < b.Dx(); x++ {
				p := src[x*4 : x*4+4 : x*4+4]
				row[x] = lookup(color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]})
			}
		}
		return dst
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			dst.SetColorIndex(x, y, lookup(c))
		}
	}
	return dst
}

// framePalette is the web-safe cube with the figure background colors and
// a gray ramp in the remaining slots.
func framePalette() color.Palette {
	p := make(color.Palette, 0, 256)
	p = append(p, palette.WebSafe...)
	p = append(p,
		color.RGBA{R: 0xff, G: 0xff, B: 0xf0, A: 0xff}, // ivory
		color.RGBA{R: 0xfa, G: 0xfa, B: 0xd2, A: 0xff}, // lightgoldenrodyellow
		color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	)
	for g := 0; len(p) < 256; g++ {
		v := uint8(g * 7)
		p = append(p, color.RGBA{R: v, G: v, B: v, A: 0xff})
	}
	return p
}
