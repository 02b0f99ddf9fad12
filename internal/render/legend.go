package render

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	legendMargin  = 5
	legendPadding = 5
	lineTextGap   = 5
	sampleLength  = 25
)

// legendBox places a w by h box in the upper right corner of the canvas.
func legendBox(canvas chart.Box, w, h int) chart.Box {
	b := chart.Box{
		Top:   canvas.Top + legendMargin,
		Right: canvas.Right - legendMargin,
	}
	b.Left = b.Right - w
	b.Bottom = b.Top + h
	return b
}

// upperRightLegend draws one row per visible series, label first and then a
// sample of the series style. Marker-only series get a single dot.
func upperRightLegend(c *chart.Chart) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		style := defaults.InheritFrom(chart.Style{
			FillColor:   drawing.ColorWhite,
			FontColor:   chart.DefaultTextColor,
			FontSize:    8,
			StrokeColor: chart.DefaultAxisColor,
			StrokeWidth: chart.DefaultAxisLineWidth,
		})

		var labels []string
		var samples []chart.Style
		for _, s := range c.Series {
			st := s.GetStyle()
			if st.Hidden || s.GetName() == "" {
				continue
			}
			labels = append(labels, s.GetName())
			samples = append(samples, st)
		}
		if len(labels) == 0 {
			return
		}

		style.GetTextOptions().WriteToRenderer(r)
		heights := make([]int, len(labels))
		textWidth, textHeight := 0, 0
		for i, label := range labels {
			tb := r.MeasureText(label)
			textWidth = chart.MaxInt(textWidth, tb.Width())
			heights[i] = tb.Height()
			textHeight += tb.Height()
		}
		textHeight += (len(labels) - 1) * chart.DefaultMinimumTickVerticalSpacing

		box := legendBox(canvas,
			2*legendPadding+textWidth+lineTextGap+sampleLength,
			2*legendPadding+textHeight)
		chart.Draw.Box(r, box, style)

		style.GetTextOptions().WriteToRenderer(r)
		tx := box.Left + legendPadding
		lx := tx + textWidth + lineTextGap
		lx2 := box.Right - legendPadding
		y := box.Top + legendPadding
		for i, label := range labels {
			if i > 0 {
				y += chart.DefaultMinimumTickVerticalSpacing
			}
			ty := y + heights[i]
			r.Text(label, tx, ty)
			ly := ty - heights[i]/2

			s := samples[i]
			if s.ShouldDrawStroke() {
				r.SetStrokeColor(s.GetStrokeColor())
				r.SetStrokeWidth(s.GetStrokeWidth())
				r.SetStrokeDashArray(s.GetStrokeDashArray())
				r.MoveTo(lx, ly)
				r.LineTo(lx2, ly)
				r.Stroke()
			} else if s.ShouldDrawDot() {
				r.SetFillColor(s.GetDotColor())
				r.SetStrokeColor(s.GetDotColor())
				r.SetStrokeWidth(1)
				r.SetStrokeDashArray(nil)
				r.Circle(s.GetDotWidth(), (lx+lx2)/2, ly)
				r.FillStroke()
			}
			y += heights[i]
		}
		r.ResetStyle()
	}
}
