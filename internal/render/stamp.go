package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const stampMargin = 10

// Stamp writes text in the lower right corner of dst.
func Stamp(dst draw.Image, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}

	b := dst.Bounds()
	width := d.MeasureString(text).Ceil()
	d.Dot = fixed.Point26_6{
		X: fixed.I(b.Max.X - width - stampMargin),
		Y: fixed.I(b.Max.Y - stampMargin),
	}
	d.DrawString(text)
}
