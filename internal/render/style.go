// Package render draws trajectory prefixes as chart frames.
package render

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Style fixes the look of every frame. Axis ranges never follow the data.
type Style struct {
	Width  int
	Height int
	Title  string

	XMin, XMax float64
	YMin, YMax float64
	XTickEvery float64

	Figure drawing.Color
	Axes   drawing.Color

	SusceptibleColor drawing.Color
	RecoveredColor   drawing.Color
	InfectedColor    drawing.Color
	LineWidth        float64

	// Caption stamps "day N" in the lower right corner.
	Caption bool
}

func DefaultStyle() Style {
	return Style{
		Width:      1200,
		Height:     600,
		Title:      "SIR model",
		XMin:       0,
		XMax:       140,
		YMin:       -0.01,
		YMax:       1.01,
		XTickEvery: 20,

		Figure: drawing.ColorFromHex("fffff0"), // ivory
		Axes:   drawing.ColorFromHex("fafad2"), // lightgoldenrodyellow

		SusceptibleColor: drawing.Color{R: 255, G: 0, B: 0, A: 255},
		RecoveredColor:   drawing.Color{R: 0, G: 0, B: 255, A: 255},
		InfectedColor:    drawing.Color{R: 0, G: 128, B: 0, A: 255},
		LineWidth:        4,

		Caption: true,
	}
}
