package frame_charts

import (
	"fmt"
	"image"
)

// Renderer draws a stacked chart into an image of chart.Width x chart.Height pixels.
type Renderer interface {
	Name() string
	Render(chart StackedChart) (image.Image, error)
}

type RendererOptions struct {
	FontPath string // gg only; empty uses the embedded Go font
	DPI      int    // plot only
}

// NewRenderer returns the renderer registered under name ("gg" or "plot").
func NewRenderer(name string, opts RendererOptions) (Renderer, error) {
	switch name {
	case "gg":
		return &GGRenderer{FontPath: opts.FontPath}, nil
	case "plot":
		dpi := opts.DPI
		if dpi <= 0 {
			dpi = 100
		}
		return &PlotRenderer{DPI: dpi}, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", name)
	}
}
