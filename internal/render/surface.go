package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/sirsim/internal/logging"
)

var ErrSurfaceClosed = errors.New("surface closed")

var log = logging.For("render")

// Surface owns the raster every frame is drawn into. Each Draw clears the
// previous content, so the image returned by Draw is only valid until the
// next call.
type Surface struct {
	style  Style
	canvas *image.RGBA
	frames int
}

func NewSurface(style Style) *Surface {
	return &Surface{
		style:  style,
		canvas: image.NewRGBA(image.Rect(0, 0, style.Width, style.Height)),
	}
}

func (s *Surface) Style() Style { return s.style }

// Bounds of the images produced by Draw.
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.style.Width, s.style.Height) }

// Draw renders f onto the surface and returns it.
func (s *Surface) Draw(f Frame) (image.Image, error) {
	if s.canvas == nil {
		return nil, ErrSurfaceClosed
	}

	graph := s.chart(f)
	iw := &chart.ImageWriter{}
	if err := graph.Render(chart.PNG, iw); err != nil {
		return nil, fmt.Errorf("rendering frame %d: %w", f.Index, err)
	}
	img, err := iw.Image()
	if err != nil {
		return nil, fmt.Errorf("rendering frame %d: %w", f.Index, err)
	}

	bounds := s.canvas.Bounds()
	draw.Draw(s.canvas, bounds, image.NewUniform(s.style.Figure), image.Point{}, draw.Src)
	draw.Draw(s.canvas, bounds, img, img.Bounds().Min, draw.Src)

	if s.style.Caption {
		Stamp(s.canvas, fmt.Sprintf("day %.0f", f.Day), drawing.ColorBlack)
	}

	s.frames++
	log.WithField("frame", f.Index).Trace("frame drawn")
	return s.canvas, nil
}

// Frames reports how many frames were drawn since creation.
func (s *Surface) Frames() int { return s.frames }

// Close releases the raster. Draw fails afterwards.
func (s *Surface) Close() error {
	s.canvas = nil
	return nil
}

func (s *Surface) chart(f Frame) chart.Chart {
	st := s.style

	susceptible := chart.ContinuousSeries{
		Name:    "susceptible",
		XValues: f.Times,
		YValues: f.Susceptible,
		Style: chart.Style{
			StrokeColor: st.SusceptibleColor,
			StrokeWidth: st.LineWidth,
		},
	}
	recovered := chart.ContinuousSeries{
		Name:    "recovered",
		XValues: f.Times,
		YValues: f.Recovered,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    st.RecoveredColor,
			DotWidth:    st.LineWidth,
		},
	}
	infected := chart.ContinuousSeries{
		Name:    "infected",
		XValues: f.Times,
		YValues: f.Infected,
		Style: chart.Style{
			StrokeColor:     st.InfectedColor,
			StrokeWidth:     st.LineWidth,
			StrokeDashArray: []float64{10, 6},
			DotColor:        st.InfectedColor,
			DotWidth:        st.LineWidth / 2,
		},
	}

	grid := chart.Style{
		StrokeColor: drawing.ColorFromHex("c8c8c8"),
		StrokeWidth: 1,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s   b=%g   k=%g", st.Title, f.Params.B, f.Params.K),
		Width:  st.Width,
		Height: st.Height,
		Background: chart.Style{
			FillColor: st.Figure,
			Padding:   chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: st.Axes,
		},
		XAxis: chart.XAxis{
			Name:           "time (days)",
			Style:          chart.Style{FontSize: 10},
			Range:          &chart.ContinuousRange{Min: st.XMin, Max: st.XMax},
			Ticks:          ticks(st.XMin, st.XMax, st.XTickEvery),
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           "population fraction",
			Style:          chart.Style{FontSize: 10},
			Range:          &chart.ContinuousRange{Min: st.YMin, Max: st.YMax},
			GridMajorStyle: grid,
		},
		Series: []chart.Series{susceptible, recovered, infected},
	}
	graph.Elements = []chart.Renderable{upperRightLegend(&graph)}

	return graph
}

func ticks(lo, hi, every float64) []chart.Tick {
	if every <= 0 || hi < lo {
		return nil
	}
	var out []chart.Tick
	for v := lo; v <= hi+every*1e-9; v += every {
		out = append(out, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", math.Round(v))})
	}
	// go-chart clamps the axis to the outermost ticks
	if last := out[len(out)-1].Value; hi-last > every*1e-9 {
		out = append(out, chart.Tick{Value: hi, Label: fmt.Sprintf("%g", hi)})
	}
	return out
}
