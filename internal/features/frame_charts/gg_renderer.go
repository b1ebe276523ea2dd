package frame_charts

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Plot-area margins as a share of the image size.
const (
	marginLeft   = 0.07
	marginRight  = 0.02
	marginTop    = 0.04
	marginBottom = 0.08

	barFill     = 0.5 // bar width as a share of its slot
	yTickTarget = 8

	fontScale     = 1.0 / 55 // font size relative to image height
	legendPadding = 10.0
	legendSwatch  = 18.0
)

var (
	backgroundColor = color.White
	axisColor       = color.Black
	gridColor       = color.RGBA{220, 220, 220, 255}
	legendBorder    = color.RGBA{200, 200, 200, 255}
)

// GGRenderer draws the chart pixel by pixel with fogleman/gg.
type GGRenderer struct {
	FontPath string
}

func (r *GGRenderer) Name() string { return "gg" }

// ggLayout maps chart values to image coordinates.
type ggLayout struct {
	left, right, top, bottom float64
	slot, barWidth           float64
	yMin, yMax               float64
	ticks                    []float64
}

func newGGLayout(chart StackedChart) ggLayout {
	w, h := float64(chart.Width), float64(chart.Height)
	l := ggLayout{
		left:   w * marginLeft,
		right:  w * (1 - marginRight),
		top:    h * marginTop,
		bottom: h * (1 - marginBottom),
	}

	low, high := chart.Range()
	l.ticks = NiceRange(low, high, yTickTarget)
	l.yMin = l.ticks[0]
	l.yMax = l.ticks[len(l.ticks)-1]

	if n := len(chart.Bars); n > 0 {
		l.slot = (l.right - l.left) / float64(n)
		l.barWidth = l.slot * barFill
	}
	return l
}

func (l ggLayout) barX(i int) float64 {
	return l.left + l.slot*float64(i) + (l.slot-l.barWidth)/2
}

func (l ggLayout) valueY(v float64) float64 {
	return l.bottom - (v-l.yMin)/(l.yMax-l.yMin)*(l.bottom-l.top)
}

func (r *GGRenderer) Render(chart StackedChart) (image.Image, error) {
	if chart.Width <= 0 || chart.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", chart.Width, chart.Height)
	}

	fontSize := float64(chart.Height) * fontScale
	if fontSize < 8 {
		fontSize = 8
	}
	face, err := r.loadFace(fontSize)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(chart.Width, chart.Height)
	dc.SetColor(backgroundColor)
	dc.Clear()
	dc.SetFontFace(face)

	l := newGGLayout(chart)

	drawGrid(dc, l)
	drawBars(dc, l, chart)
	drawAxes(dc, l, chart, fontSize)
	drawLegend(dc, l, chart, fontSize)

	return dc.Image(), nil
}

func (r *GGRenderer) loadFace(size float64) (font.Face, error) {
	if r.FontPath != "" {
		face, err := gg.LoadFontFace(r.FontPath, size)
		if err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", r.FontPath, err)
		}
		return face, nil
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

func drawGrid(dc *gg.Context, l ggLayout) {
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	for _, tick := range l.ticks[1:] {
		y := l.valueY(tick)
		dc.DrawLine(l.left, y, l.right, y)
		dc.Stroke()
	}
}

func drawBars(dc *gg.Context, l ggLayout, chart StackedChart) {
	colors := SeriesColors(len(chart.Series))
	for i, bar := range chart.Bars {
		x := l.barX(i)
		for s, span := range bar.Spans() {
			if span[1] <= span[0] {
				continue
			}
			yTop := l.valueY(span[1])
			dc.DrawRectangle(x, yTop, l.barWidth, l.valueY(span[0])-yTop)
			dc.SetColor(colors[s])
			dc.Fill()
		}
	}
}

func drawAxes(dc *gg.Context, l ggLayout, chart StackedChart, fontSize float64) {
	dc.SetColor(axisColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(l.left, l.top, l.left, l.bottom)
	dc.DrawLine(l.left, l.bottom, l.right, l.bottom)
	dc.Stroke()

	tickLen := fontSize / 3
	for _, tick := range l.ticks {
		y := l.valueY(tick)
		dc.DrawLine(l.left-tickLen, y, l.left, y)
		dc.Stroke()
		dc.DrawStringAnchored(strconv.FormatFloat(tick, 'f', -1, 64), l.left-tickLen*2, y, 1, 0.5)
	}

	// no x ticks
	xLabelY := (l.bottom + float64(chart.Height)) / 2
	dc.DrawStringAnchored(chart.XLabel, (l.left+l.right)/2, xLabelY, 0.5, 0.5)

	yLabelX := fontSize
	yLabelY := (l.top + l.bottom) / 2
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), yLabelX, yLabelY)
	dc.DrawStringAnchored(chart.YLabel, yLabelX, yLabelY, 0.5, 0.5)
	dc.Pop()
}

func drawLegend(dc *gg.Context, l ggLayout, chart StackedChart, fontSize float64) {
	if len(chart.Series) == 0 {
		return
	}
	colors := SeriesColors(len(chart.Series))

	lineHeight := fontSize * 1.5
	textWidth := 0.0
	for _, name := range chart.Series {
		if w, _ := dc.MeasureString(name); w > textWidth {
			textWidth = w
		}
	}
	boxW := legendPadding*3 + legendSwatch + textWidth
	boxH := legendPadding*2 + lineHeight*float64(len(chart.Series))
	x0 := l.left + legendPadding*2
	y0 := l.top + legendPadding

	dc.DrawRectangle(x0, y0, boxW, boxH)
	dc.SetColor(color.RGBA{255, 255, 255, 230})
	dc.FillPreserve()
	dc.SetColor(legendBorder)
	dc.SetLineWidth(1)
	dc.Stroke()

	for i, name := range chart.Series {
		cy := y0 + legendPadding + lineHeight*(float64(i)+0.5)
		dc.DrawRectangle(x0+legendPadding, cy-legendSwatch/2, legendSwatch, legendSwatch)
		dc.SetColor(colors[i])
		dc.Fill()

		dc.SetColor(axisColor)
		dc.DrawStringAnchored(name, x0+legendPadding*2+legendSwatch, cy, 0, 0.5)
	}
}
