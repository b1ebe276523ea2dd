package frame_charts

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PlotRenderer draws the chart with gonum/plot, one BarChart per series stacked with StackOn.
type PlotRenderer struct {
	DPI int
}

func (r *PlotRenderer) Name() string { return "plot" }

func (r *PlotRenderer) Render(chart StackedChart) (image.Image, error) {
	if chart.Width <= 0 || chart.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", chart.Width, chart.Height)
	}
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 100
	}

	p, err := r.buildPlot(chart, dpi)
	if err != nil {
		return nil, err
	}

	width := vg.Length(float64(chart.Width)/float64(dpi)) * vg.Inch
	height := vg.Length(float64(chart.Height)/float64(dpi)) * vg.Inch
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))

	return c.Image(), nil
}

func (r *PlotRenderer) buildPlot(chart StackedChart, dpi int) (*plot.Plot, error) {
	p := plot.New()

	p.X.Label.Text = chart.XLabel
	p.Y.Label.Text = chart.YLabel
	p.X.Tick.Marker = plot.ConstantTicks(xTicks(chart.XTickLabels))
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	n := len(chart.Bars)
	if n == 0 {
		return p, nil
	}

	// Bars sit at x = 0..n-1; half of each unit slot is filled.
	plotWidth := vg.Length(float64(chart.Width)/float64(dpi)) * vg.Inch * (1 - marginLeft - marginRight)
	barWidth := plotWidth / vg.Length(n) * barFill
	if barWidth < vg.Points(0.5) {
		barWidth = vg.Points(0.5)
	}

	// positive parts stack upward, negative parts downward
	low, _ := chart.Range()
	colors := SeriesColors(len(chart.Series))
	var up, down *plotter.BarChart
	for s, name := range chart.Series {
		pos, neg := splitSigns(chart.SeriesValues(s))

		bc, err := seriesBars(pos, barWidth, colors[s], up)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", name, err)
		}
		p.Add(bc)
		p.Legend.Add(name, bc)
		up = bc

		if low < 0 {
			nc, err := seriesBars(neg, barWidth, colors[s], down)
			if err != nil {
				return nil, fmt.Errorf("series %s: %w", name, err)
			}
			p.Add(nc)
			down = nc
		}
	}

	p.X.Min = -0.5
	p.X.Max = float64(n) - 0.5

	return p, nil
}

func seriesBars(values []float64, width vg.Length, c color.Color, below *plotter.BarChart) (*plotter.BarChart, error) {
	bc, err := plotter.NewBarChart(plotter.Values(values), width)
	if err != nil {
		return nil, err
	}
	bc.Color = c
	bc.LineStyle.Width = 0
	if below != nil {
		bc.StackOn(below)
	}
	return bc, nil
}

func splitSigns(values []float64) (pos, neg []float64) {
	pos = make([]float64, len(values))
	neg = make([]float64, len(values))
	for i, v := range values {
		if v >= 0 {
			pos[i] = v
		} else {
			neg[i] = v
		}
	}
	return pos, neg
}

func xTicks(labels []string) []plot.Tick {
	ticks := make([]plot.Tick, 0, len(labels))
	for i, label := range labels {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: label})
	}
	return ticks
}
