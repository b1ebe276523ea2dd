package chart_display

import (
	"context"
	"image"

	"frametimes/internal/features/frame_charts"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

const windowTitlePrefix = "Frame times"

// WindowPresenter shows the chart in a native window and returns once it is closed.
type WindowPresenter struct {
	newApp func() fyne.App
}

func NewWindowPresenter() *WindowPresenter {
	return &WindowPresenter{newApp: app.New}
}

func (p *WindowPresenter) Present(ctx context.Context, chart frame_charts.StackedChart, img image.Image) error {
	a := p.newApp()
	w := buildWindow(a, chart, img)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(a.Quit)
		case <-done:
		}
	}()

	w.ShowAndRun()
	return nil
}

func windowTitle(chart frame_charts.StackedChart) string {
	if chart.Title == "" {
		return windowTitlePrefix
	}
	return windowTitlePrefix + " - " + chart.Title
}

func buildWindow(a fyne.App, chart frame_charts.StackedChart, img image.Image) fyne.Window {
	w := a.NewWindow(windowTitle(chart))

	// Open at half the rendered size; the image scales with the window.
	size := fyne.NewSize(float32(chart.Width)/2, float32(chart.Height)/2)

	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.ScaleMode = canvas.ImageScaleSmooth
	c.SetMinSize(fyne.NewSize(size.Width/2, size.Height/2))

	w.SetContent(c)
	w.Resize(size)
	w.SetMaster()
	return w
}
