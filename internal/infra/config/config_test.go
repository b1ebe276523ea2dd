package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(newFlags(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.CSV.Path != "times.csv" {
		t.Errorf("csv.path = %q", cfg.CSV.Path)
	}
	if cfg.Chart.Rows != 200 {
		t.Errorf("chart.rows = %d", cfg.Chart.Rows)
	}
	if !reflect.DeepEqual(cfg.Chart.Columns, DefaultColumns) {
		t.Errorf("chart.columns = %v", cfg.Chart.Columns)
	}
	if cfg.Chart.Width != 2000 || cfg.Chart.Height != 1000 || cfg.Chart.DPI != 100 {
		t.Errorf("chart size = %dx%d@%d", cfg.Chart.Width, cfg.Chart.Height, cfg.Chart.DPI)
	}
	if cfg.Chart.Renderer != RendererGG {
		t.Errorf("chart.renderer = %q", cfg.Chart.Renderer)
	}
	if cfg.Display.Mode != DisplayWindow {
		t.Errorf("display.mode = %q", cfg.Display.Mode)
	}
}

func TestLoadConfigEnvOverridesDefaults(t *testing.T) {
	t.Setenv("FRAMETIMES_CHART_ROWS", "50")
	t.Setenv("FRAMETIMES_CHART_COLUMNS", " Frame_End_Render_Present , Frame_End_Render_GetTexture ,")
	t.Setenv("FRAMETIMES_CHART_RENDERER", "PLOT")

	cfg, err := LoadConfig(newFlags(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Rows != 50 {
		t.Errorf("chart.rows = %d, want 50", cfg.Chart.Rows)
	}
	want := []string{"Frame_End_Render_Present", "Frame_End_Render_GetTexture"}
	if !reflect.DeepEqual(cfg.Chart.Columns, want) {
		t.Errorf("chart.columns = %v, want %v", cfg.Chart.Columns, want)
	}
	if cfg.Chart.Renderer != RendererPlot {
		t.Errorf("chart.renderer = %q, want plot", cfg.Chart.Renderer)
	}
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("FRAMETIMES_CHART_ROWS", "50")

	cfg, err := LoadConfig(newFlags(t, "--chart.rows=10", "--csv.path=other.csv", "--chart.columns=a,b"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Rows != 10 {
		t.Errorf("chart.rows = %d, want 10", cfg.Chart.Rows)
	}
	if cfg.CSV.Path != "other.csv" {
		t.Errorf("csv.path = %q", cfg.CSV.Path)
	}
	if !reflect.DeepEqual(cfg.Chart.Columns, []string{"a", "b"}) {
		t.Errorf("chart.columns = %v", cfg.Chart.Columns)
	}
}

func TestLoadConfigTelegramAliases(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-10042")

	cfg, err := LoadConfig(newFlags(t, "--display.mode=telegram"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Telegram.BotToken != "123:abc" || cfg.Telegram.ChatID != -10042 {
		t.Fatalf("telegram = %+v", cfg.Telegram)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero rows", []string{"--chart.rows=0"}, "chart.rows"},
		{"unknown renderer", []string{"--chart.renderer=svg"}, "chart.renderer"},
		{"unknown display", []string{"--display.mode=printer"}, "display.mode"},
		{"telegram without token", []string{"--display.mode=telegram", "--telegram.chat_id=5"}, "bot_token"},
		{"telegram without chat", []string{"--display.mode=telegram", "--telegram.bot_token=x"}, "chat_id"},
		{"bad size", []string{"--chart.width=0"}, "chart size"},
		{"empty path", []string{"--csv.path= "}, "csv.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(newFlags(t, tt.args...))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
