package frame_charts

import (
	"math"

	"frametimes/internal/features/frame_table"
)

const (
	XAxisLabel = "Frame"
	YAxisLabel = "Time in ms"
)

// Segment is one timing column's share of a bar.
type Segment struct {
	Column string
	Value  float64
}

// Bar is one frame. Segments are stacked bottom to top in column order.
type Bar struct {
	Frame    int
	Segments []Segment
}

func (b Bar) Total() float64 {
	var total float64
	for _, s := range b.Segments {
		total += s.Value
	}
	return total
}

// Spans returns the [low, high] extent of every segment. Positive values stack
// up from zero and negative values stack down from zero, each in column order.
func (b Bar) Spans() [][2]float64 {
	spans := make([][2]float64, len(b.Segments))
	var up, down float64
	for i, s := range b.Segments {
		if s.Value >= 0 {
			spans[i] = [2]float64{up, up + s.Value}
			up += s.Value
		} else {
			spans[i] = [2]float64{down + s.Value, down}
			down += s.Value
		}
	}
	return spans
}

// StackedChart is everything a renderer needs to draw the frame-time chart.
type StackedChart struct {
	Title       string
	XLabel      string
	YLabel      string
	XTickLabels []string // always empty: per-frame labels would overlap
	Series      []string
	Bars        []Bar
	Width       int // pixels
	Height      int // pixels
}

// MaxTotal returns the tallest stacked bar.
func (c StackedChart) MaxTotal() float64 {
	var max float64
	for _, b := range c.Bars {
		if t := b.Total(); t > max {
			max = t
		}
	}
	return max
}

// Range returns the lowest and highest stack edges over all bars, always spanning zero.
func (c StackedChart) Range() (low, high float64) {
	for _, b := range c.Bars {
		for _, span := range b.Spans() {
			low = math.Min(low, span[0])
			high = math.Max(high, span[1])
		}
	}
	return low, high
}

// SeriesValues returns one series across all bars.
func (c StackedChart) SeriesValues(series int) []float64 {
	values := make([]float64, len(c.Bars))
	for i, b := range c.Bars {
		values[i] = b.Segments[series].Value
	}
	return values
}

// Build turns a frame window into a stacked chart of width x height pixels.
// NaN and infinite cells draw as empty segments.
func Build(w *frame_table.FrameWindow, width, height int) StackedChart {
	chart := StackedChart{
		Title:       w.Source,
		XLabel:      XAxisLabel,
		YLabel:      YAxisLabel,
		XTickLabels: []string{},
		Series:      append([]string(nil), w.Columns...),
		Bars:        make([]Bar, w.Len()),
		Width:       width,
		Height:      height,
	}

	for i := range chart.Bars {
		row := w.Row(i)
		segments := make([]Segment, len(row))
		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			segments[c] = Segment{Column: w.Columns[c], Value: v}
		}
		chart.Bars[i] = Bar{Frame: i, Segments: segments}
	}

	return chart
}
