package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each holding 2x4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	mask := ^rune(pixelMap[subY][subX])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < 0x2800 {
		c.Grid[row][col] = 0x2800
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Viewport maps data coordinates onto canvas sub-pixels.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (c *Canvas) project(v Viewport, x, y float64) (int, int) {
	w := float64(c.Width*2 - 1)
	h := float64(c.Height*4 - 1)
	px := (x - v.XMin) / (v.XMax - v.XMin) * w
	py := h - (y-v.YMin)/(v.YMax-v.YMin)*h
	return int(px + 0.5), int(py + 0.5)
}

// Plot draws the polyline through (xs[i], ys[i]). A single point is drawn
// as a dot.
func (c *Canvas) Plot(v Viewport, xs, ys []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return
	}
	x0, y0 := c.project(v, xs[0], ys[0])
	c.Set(x0, y0)
	for i := 1; i < n; i++ {
		x1, y1 := c.project(v, xs[i], ys[i])
		c.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
}

// Composite overlays same-sized canvases. A cell takes the style of the
// last layer that has a dot in it.
func Composite(layers []*Canvas, styles []lipgloss.Style) string {
	if len(layers) == 0 {
		return ""
	}
	base := layers[0]

	var b strings.Builder
	for row := 0; row < base.Height; row++ {
		for col := 0; col < base.Width; col++ {
			cell := rune(0x2800)
			owner := -1
			for i, l := range layers {
				if l.Grid[row][col] != 0x2800 {
					cell |= l.Grid[row][col]
					owner = i
				}
			}
			if owner >= 0 && owner < len(styles) {
				b.WriteString(styles[owner].Render(string(cell)))
			} else {
				b.WriteRune(cell)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
