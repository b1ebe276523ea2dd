package frame_charts

import (
	"math"
	"reflect"
	"testing"

	"frametimes/internal/features/frame_table"
)

var timingColumns = []string{
	"Frame_End_Render_GetTexture",
	"Frame_End_Render_EncodeCommands",
	"Frame_End_Render_QueueSubmit",
	"Frame_End_Render_Present",
}

// twoFrameWindow is the reference two-frame capture.
func twoFrameWindow() *frame_table.FrameWindow {
	return &frame_table.FrameWindow{
		Source:  "times.csv",
		Columns: timingColumns,
		Values: [][]float64{
			{1.0, 2.0},
			{3.0, 4.0},
			{0.5, 0.5},
			{1.5, 1.0},
		},
	}
}

func TestBuildTwoFrameScenario(t *testing.T) {
	chart := Build(twoFrameWindow(), 2000, 1000)

	if len(chart.Bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(chart.Bars))
	}
	wantTotals := []float64{6.0, 7.5}
	for i, bar := range chart.Bars {
		if bar.Frame != i {
			t.Errorf("bar %d has frame %d", i, bar.Frame)
		}
		if len(bar.Segments) != 4 {
			t.Fatalf("bar %d has %d segments", i, len(bar.Segments))
		}
		for s, seg := range bar.Segments {
			if seg.Column != timingColumns[s] {
				t.Errorf("bar %d segment %d column %s", i, s, seg.Column)
			}
		}
		if got := bar.Total(); got != wantTotals[i] {
			t.Errorf("bar %d total = %v, want %v", i, got, wantTotals[i])
		}
	}
	if got := chart.MaxTotal(); got != 7.5 {
		t.Errorf("MaxTotal = %v", got)
	}
	if got := chart.SeriesValues(1); !reflect.DeepEqual(got, []float64{3.0, 4.0}) {
		t.Errorf("SeriesValues(1) = %v", got)
	}
}

func TestBuildLabelsAreFixed(t *testing.T) {
	windows := []*frame_table.FrameWindow{
		twoFrameWindow(),
		{Source: "empty.csv", Columns: []string{"a"}, Values: [][]float64{{}}},
		{Source: "one.csv", Columns: []string{"Frame", "Time in ms"}, Values: [][]float64{{9}, {1}}},
	}
	for _, w := range windows {
		chart := Build(w, 640, 320)
		if chart.XLabel != "Frame" {
			t.Errorf("%s: XLabel = %q", w.Source, chart.XLabel)
		}
		if chart.YLabel != "Time in ms" {
			t.Errorf("%s: YLabel = %q", w.Source, chart.YLabel)
		}
		if len(chart.XTickLabels) != 0 {
			t.Errorf("%s: XTickLabels = %v", w.Source, chart.XTickLabels)
		}
		if chart.Width != 640 || chart.Height != 320 {
			t.Errorf("%s: size = %dx%d", w.Source, chart.Width, chart.Height)
		}
	}
}

func TestBuildDropsNonFiniteValues(t *testing.T) {
	w := &frame_table.FrameWindow{
		Columns: []string{"a", "b", "c", "d"},
		Values:  [][]float64{{math.NaN()}, {math.Inf(1)}, {-1}, {2}},
	}
	chart := Build(w, 100, 100)
	got := []float64{}
	for _, seg := range chart.Bars[0].Segments {
		got = append(got, seg.Value)
	}
	if !reflect.DeepEqual(got, []float64{0, 0, -1, 2}) {
		t.Fatalf("segments = %v, want [0 0 -1 2]", got)
	}
}

func TestBarSpansStackNegativesBelowZero(t *testing.T) {
	bar := Bar{Segments: []Segment{{Value: 1}, {Value: -2}, {Value: 3}, {Value: -0.5}}}
	want := [][2]float64{{0, 1}, {-2, 0}, {1, 4}, {-2.5, -2}}
	if got := bar.Spans(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Spans = %v, want %v", got, want)
	}

	chart := StackedChart{Bars: []Bar{bar, {Segments: []Segment{{Value: 5}}}}}
	if low, high := chart.Range(); low != -2.5 || high != 5 {
		t.Fatalf("Range = %v, %v, want -2.5, 5", low, high)
	}
	if low, high := Build(twoFrameWindow(), 10, 10).Range(); low != 0 || high != 7.5 {
		t.Fatalf("two-frame Range = %v, %v", low, high)
	}
}

func TestNiceRange(t *testing.T) {
	tests := []struct {
		low, high float64
		want      []float64
	}{
		{0, 7.5, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{-2.5, 5, []float64{-3, -2, -1, 0, 1, 2, 3, 4, 5}},
		{-4, 0, []float64{-4, -3.5, -3, -2.5, -2, -1.5, -1, -0.5, 0}},
		{0, 0, []float64{0, 1}},
	}
	for _, tt := range tests {
		if got := NiceRange(tt.low, tt.high, 8); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("NiceRange(%v, %v) = %v, want %v", tt.low, tt.high, got, tt.want)
		}
	}
}

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		max  float64
		want []float64
	}{
		{7.5, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{16, []float64{0, 2, 4, 6, 8, 10, 12, 14, 16}},
		{0.3, []float64{0, 0.05, 0.1, 0.15, 0.2, 0.25, 0.3}},
		{0, []float64{0, 1}},
	}
	for _, tt := range tests {
		if got := NiceTicks(tt.max, 8); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("NiceTicks(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestSeriesColors(t *testing.T) {
	if got := SeriesColors(0); got != nil {
		t.Fatalf("expected nil for zero series")
	}
	four := SeriesColors(4)
	if len(four) != 4 {
		t.Fatalf("expected 4 colors, got %d", len(four))
	}
	seen := map[[4]uint32]bool{}
	for _, c := range four {
		r, g, b, a := c.RGBA()
		seen[[4]uint32{r, g, b, a}] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected distinct colors, got %d", len(seen))
	}
	if many := SeriesColors(12); len(many) != 12 || many[9] != many[0] {
		t.Fatalf("expected palette to repeat after 9 colors")
	}
}
