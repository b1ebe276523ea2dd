package frame_charts

import (
	"image/color"
	"math"
	"testing"
)

func sameColor(a, b color.Color) bool {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	return ar>>8 == br>>8 && ag>>8 == bg>>8 && ab>>8 == bb>>8
}

func TestNewRenderer(t *testing.T) {
	for _, name := range []string{"gg", "plot"} {
		r, err := NewRenderer(name, RendererOptions{})
		if err != nil {
			t.Fatalf("NewRenderer(%s): %v", name, err)
		}
		if r.Name() != name {
			t.Errorf("Name() = %s, want %s", r.Name(), name)
		}
	}
	if _, err := NewRenderer("svg", RendererOptions{}); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestRenderersProduceConfiguredSize(t *testing.T) {
	chart := Build(twoFrameWindow(), 400, 200)
	for _, name := range []string{"gg", "plot"} {
		t.Run(name, func(t *testing.T) {
			r, err := NewRenderer(name, RendererOptions{DPI: 100})
			if err != nil {
				t.Fatal(err)
			}
			img, err := r.Render(chart)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
				t.Fatalf("bounds = %v, want 400x200", b)
			}
		})
	}
}

func TestRenderersRejectEmptySize(t *testing.T) {
	chart := Build(twoFrameWindow(), 0, 0)
	for _, r := range []Renderer{&GGRenderer{}, &PlotRenderer{}} {
		if _, err := r.Render(chart); err == nil {
			t.Errorf("%s: expected error for zero size", r.Name())
		}
	}
}

func TestRenderersHandleNoFrames(t *testing.T) {
	chart := StackedChart{XLabel: XAxisLabel, YLabel: YAxisLabel, Series: []string{"a"}, Width: 300, Height: 150}
	for _, r := range []Renderer{&GGRenderer{}, &PlotRenderer{DPI: 100}} {
		if _, err := r.Render(chart); err != nil {
			t.Errorf("%s: %v", r.Name(), err)
		}
	}
}

func TestGGRendererStacksSegmentsInColumnOrder(t *testing.T) {
	chart := Build(twoFrameWindow(), 800, 400)
	img, err := (&GGRenderer{}).Render(chart)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	l := newGGLayout(chart)
	colors := SeriesColors(len(chart.Series))

	// Frame 1 sits right of the legend; sample the middle of every segment.
	bar := chart.Bars[1]
	x := int(l.barX(1) + l.barWidth/2)
	base := 0.0
	for s, seg := range bar.Segments {
		y := int((l.valueY(base) + l.valueY(base+seg.Value)) / 2)
		if got := img.At(x, y); !sameColor(got, colors[s]) {
			t.Errorf("segment %d (%s) at (%d,%d) = %v, want %v", s, seg.Column, x, y, got, colors[s])
		}
		base += seg.Value
	}

	// above the stack is background
	above := int(l.valueY(bar.Total())) - 3
	if got := img.At(x, above); !sameColor(got, color.White) && !sameColor(got, gridColor) {
		t.Errorf("pixel above bar = %v, want background", got)
	}
}

func TestGGLayoutScalesToNiceTop(t *testing.T) {
	l := newGGLayout(Build(twoFrameWindow(), 1000, 500))
	if l.yMax != 8 {
		t.Fatalf("yMax = %v, want 8", l.yMax)
	}
	if math.Abs(l.valueY(0)-l.bottom) > 1e-9 || math.Abs(l.valueY(8)-l.top) > 1e-9 {
		t.Fatalf("valueY does not span the plot area")
	}
	if math.Abs(l.barX(1)-l.barX(0)-l.slot) > 1e-9 {
		t.Fatalf("bars are not evenly spaced")
	}
}

func TestPlotRendererHidesXTicks(t *testing.T) {
	chart := Build(twoFrameWindow(), 400, 200)
	p, err := (&PlotRenderer{}).buildPlot(chart, 100)
	if err != nil {
		t.Fatalf("buildPlot: %v", err)
	}
	if ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max); len(ticks) != 0 {
		t.Fatalf("x ticks = %v, want none", ticks)
	}
	if p.X.Label.Text != "Frame" || p.Y.Label.Text != "Time in ms" {
		t.Fatalf("labels = %q, %q", p.X.Label.Text, p.Y.Label.Text)
	}
	if p.Y.Min != 0 || p.Y.Max < 7.5 {
		t.Fatalf("y range = [%v, %v]", p.Y.Min, p.Y.Max)
	}
}

func TestPlotRendererExtendsBelowZero(t *testing.T) {
	w := twoFrameWindow()
	w.Values = [][]float64{{1.0, 2.0}, {-3.0, 4.0}, {0.5, 0.5}, {-1.5, 1.0}}
	chart := Build(w, 400, 200)

	p, err := (&PlotRenderer{}).buildPlot(chart, 100)
	if err != nil {
		t.Fatalf("buildPlot: %v", err)
	}
	if p.Y.Min > -4.5 {
		t.Fatalf("y min = %v, want at most -4.5", p.Y.Min)
	}
	if _, err := (&PlotRenderer{DPI: 100}).Render(chart); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestGGRendererDrawsNegativeSegmentsBelowZero(t *testing.T) {
	w := twoFrameWindow()
	w.Values = [][]float64{{1.0, 2.0}, {3.0, -4.0}, {0.5, 0.5}, {1.5, 1.0}}
	chart := Build(w, 800, 400)
	img, err := (&GGRenderer{}).Render(chart)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	l := newGGLayout(chart)
	if l.yMin >= 0 {
		t.Fatalf("yMin = %v, want below zero", l.yMin)
	}
	colors := SeriesColors(len(chart.Series))

	x := int(l.barX(1) + l.barWidth/2)
	below := int(l.valueY(-2))
	if got := img.At(x, below); !sameColor(got, colors[1]) {
		t.Errorf("pixel at -2 ms = %v, want %v", got, colors[1])
	}
	above := int(l.valueY(1))
	if got := img.At(x, above); !sameColor(got, colors[0]) {
		t.Errorf("pixel at 1 ms = %v, want %v", got, colors[0])
	}
}
