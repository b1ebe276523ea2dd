package commands

// Default command: load times.csv, keep the timing columns for the first frames,
// render the stacked bar chart and hand it to the configured display

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frametimes/internal/features/chart_display"
	"frametimes/internal/features/frame_charts"
	"frametimes/internal/features/frame_table"
	"frametimes/internal/infra/config"
	logging "frametimes/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		logging.LogError("Failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	renderer, err := frame_charts.NewRenderer(cfg.Chart.Renderer, frame_charts.RendererOptions{
		FontPath: cfg.Chart.FontPath,
		DPI:      cfg.Chart.DPI,
	})
	if err != nil {
		return err
	}

	chart, img, err := generateChart(cfg, renderer)
	if err != nil {
		return err
	}

	presenter, err := chart_display.New(cfg)
	if err != nil {
		logging.LogError("Failed to set up chart display", zap.String("mode", cfg.Display.Mode), zap.Error(err))
		return err
	}

	if err := presenter.Present(ctx, chart, img); err != nil {
		return fmt.Errorf("failed to display chart: %w", err)
	}

	if fp, ok := presenter.(*chart_display.FilePresenter); ok {
		fmt.Fprintln(cmd.OutOrStdout(), fp.Path)
	}
	return nil
}

// generateChart runs load, select, truncate, build and render. Load and schema
// failures return before the renderer is touched.
func generateChart(cfg *config.Config, renderer frame_charts.Renderer) (frame_charts.StackedChart, image.Image, error) {
	startTime := time.Now()

	window, err := frame_table.LoadWindow(cfg.CSV.Path, cfg.Chart.Columns, cfg.Chart.Rows)
	if err != nil {
		logging.LogError("Failed to prepare frame timings",
			zap.String("path", cfg.CSV.Path),
			zap.Strings("columns", cfg.Chart.Columns),
			zap.Error(err))
		return frame_charts.StackedChart{}, nil, err
	}
	logging.LogInfo("Frame timings loaded",
		zap.String("path", cfg.CSV.Path),
		zap.Int("frames", window.Len()),
		zap.Int("limit", cfg.Chart.Rows))

	chart := frame_charts.Build(window, cfg.Chart.Width, cfg.Chart.Height)

	img, err := renderer.Render(chart)
	if err != nil {
		logging.LogError("Failed to render chart", zap.String("renderer", renderer.Name()), zap.Error(err))
		return frame_charts.StackedChart{}, nil, fmt.Errorf("failed to render chart: %w", err)
	}

	logging.LogSuccess("Frame time chart rendered",
		zap.String("renderer", renderer.Name()),
		zap.Int("frames", len(chart.Bars)),
		zap.Float64("max_ms", chart.MaxTotal()),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))

	return chart, img, nil
}
