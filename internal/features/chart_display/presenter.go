package chart_display

// Presenters hand a rendered frame-time chart to the user
// window: fyne window, blocks until closed
// viewer: PNG on disk opened with the desktop viewer
// file: PNG on disk only
// telegram: PNG sent as a photo to a chat
// none: nothing, rendering only

import (
	"context"
	"fmt"
	"image"
	"time"

	"frametimes/internal/features/frame_charts"
	"frametimes/internal/infra/config"
	viewer "frametimes/internal/infra/exec"
	storage "frametimes/internal/infra/fs"
	logging "frametimes/internal/infra/log"

	"go.uber.org/zap"
)

type Presenter interface {
	Present(ctx context.Context, chart frame_charts.StackedChart, img image.Image) error
}

// New picks the presenter for cfg.Display.Mode.
func New(cfg *config.Config) (Presenter, error) {
	switch cfg.Display.Mode {
	case config.DisplayWindow:
		return NewWindowPresenter(), nil
	case config.DisplayViewer:
		return &ViewerPresenter{
			OutputDir: cfg.Display.OutputDir,
			Command:   viewer.ParseCommand(cfg.Display.ViewerCommand),
			Timeout:   time.Duration(cfg.Display.ViewerTimeout) * time.Second,
		}, nil
	case config.DisplayFile:
		return &FilePresenter{OutputDir: cfg.Display.OutputDir}, nil
	case config.DisplayTelegram:
		return NewTelegramPresenter(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries)
	case config.DisplayNone:
		return NonePresenter{}, nil
	default:
		return nil, fmt.Errorf("unknown display mode %q", cfg.Display.Mode)
	}
}

// FilePresenter only writes the chart as PNG.
type FilePresenter struct {
	OutputDir string

	// Path is set after a successful Present.
	Path string
}

func (p *FilePresenter) Present(ctx context.Context, chart frame_charts.StackedChart, img image.Image) error {
	path, err := storage.SaveChartPNG(p.OutputDir, storage.ChartFileName, img)
	if err != nil {
		return err
	}
	p.Path = path
	logging.LogSuccess("Chart saved", zap.String("path", path), zap.Int("frames", len(chart.Bars)))
	return nil
}

// ViewerPresenter writes the PNG and opens it with an external program.
type ViewerPresenter struct {
	OutputDir string
	Command   []string
	Timeout   time.Duration
}

func (p *ViewerPresenter) Present(ctx context.Context, chart frame_charts.StackedChart, img image.Image) error {
	path, err := storage.SaveChartPNG(p.OutputDir, storage.ChartFileName, img)
	if err != nil {
		return err
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	output, err := viewer.OpenFile(ctx, p.Command, path, timeout)
	if err != nil {
		logging.LogError("Failed to open chart viewer",
			zap.Strings("command", p.Command),
			zap.String("path", path),
			zap.String("output", string(output)),
			zap.Error(err))
		return fmt.Errorf("failed to open chart %s: %w", path, err)
	}

	logging.LogSuccess("Chart opened in viewer", zap.String("path", path), zap.Strings("command", p.Command))
	return nil
}

// NonePresenter discards the chart.
type NonePresenter struct{}

func (NonePresenter) Present(ctx context.Context, chart frame_charts.StackedChart, img image.Image) error {
	logging.LogInfo("Chart rendered without display", zap.Int("frames", len(chart.Bars)))
	return nil
}
