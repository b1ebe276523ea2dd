package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every automatically bound environment variable,
// e.g. chart.rows -> FRAMETIMES_CHART_ROWS.
const EnvPrefix = "FRAMETIMES"

// DefaultColumns are the render-phase timing columns stacked in every bar, bottom to top.
var DefaultColumns = []string{
	"Frame_End_Render_GetTexture",
	"Frame_End_Render_EncodeCommands",
	"Frame_End_Render_QueueSubmit",
	"Frame_End_Render_Present",
}

const (
	RendererGG   = "gg"
	RendererPlot = "plot"

	DisplayWindow   = "window"
	DisplayViewer   = "viewer"
	DisplayFile     = "file"
	DisplayTelegram = "telegram"
	DisplayNone     = "none"
)

type Config struct {
	CSV      CSVConfig      `mapstructure:"csv"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Display  DisplayConfig  `mapstructure:"display"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type CSVConfig struct {
	Path string `mapstructure:"path"`
}

type ChartConfig struct {
	Rows     int      `mapstructure:"rows"`
	Columns  []string `mapstructure:"columns"`
	Renderer string   `mapstructure:"renderer"`
	Width    int      `mapstructure:"width"`  // pixels
	Height   int      `mapstructure:"height"` // pixels
	DPI      int      `mapstructure:"dpi"`
	FontPath string   `mapstructure:"font_path"` // optional TTF, embedded Go font otherwise
}

type DisplayConfig struct {
	Mode          string `mapstructure:"mode"`
	OutputDir     string `mapstructure:"output_dir"`
	ViewerCommand string `mapstructure:"viewer_command"`
	ViewerTimeout int    `mapstructure:"viewer_timeout"` // seconds
}

type TelegramConfig struct {
	BotToken   string `mapstructure:"bot_token"`
	ChatID     int64  `mapstructure:"chat_id"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// RegisterFlags adds one flag per config key to fs. Flag names match viper keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("csv.path", "times.csv", "CSV file with per-frame timings (env: FRAMETIMES_CSV_PATH)")

	fs.Int("chart.rows", 200, "Number of leading frames to plot (env: FRAMETIMES_CHART_ROWS)")
	fs.StringSlice("chart.columns", DefaultColumns, "Timing columns to stack, bottom to top (env: FRAMETIMES_CHART_COLUMNS)")
	fs.String("chart.renderer", RendererGG, "Renderer: gg or plot (env: FRAMETIMES_CHART_RENDERER)")
	fs.Int("chart.width", 2000, "Chart width in pixels (env: FRAMETIMES_CHART_WIDTH)")
	fs.Int("chart.height", 1000, "Chart height in pixels (env: FRAMETIMES_CHART_HEIGHT)")
	fs.Int("chart.dpi", 100, "Chart resolution used by the plot renderer (env: FRAMETIMES_CHART_DPI)")
	fs.String("chart.font_path", "", "TTF font for chart text (env: FRAMETIMES_CHART_FONT_PATH)")

	fs.String("display.mode", DisplayWindow, "How to show the chart: window, viewer, file, telegram or none (env: FRAMETIMES_DISPLAY_MODE)")
	fs.String("display.output_dir", "charts", "Directory for saved PNG charts (env: FRAMETIMES_DISPLAY_OUTPUT_DIR)")
	fs.String("display.viewer_command", "", "Command used to open the PNG, OS default when empty (env: FRAMETIMES_DISPLAY_VIEWER_COMMAND)")
	fs.Int("display.viewer_timeout", 30, "Seconds to wait for the viewer command (env: FRAMETIMES_DISPLAY_VIEWER_TIMEOUT)")

	fs.String("telegram.bot_token", "", "Telegram bot token (env: TELEGRAM_BOT_TOKEN)")
	fs.Int64("telegram.chat_id", 0, "Telegram chat to send the chart to (env: TELEGRAM_CHAT_ID)")
	fs.Int("telegram.max_retries", 3, "Retries for rate-limited or failed sends (env: FRAMETIMES_TELEGRAM_MAX_RETRIES)")
}

// LoadConfig layers configuration, lowest priority first:
// 1. defaults
// 2. frametimes.yaml
// 3. .env file
// 4. environment
// 5. flags set on the command line
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("frametimes")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig() // optional file

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setupEnvAliases(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Columns arrive as []string from flags and YAML but as one comma-separated string from env
	switch raw := v.Get("chart.columns").(type) {
	case string:
		config.Chart.Columns = splitColumns(raw)
	case []string:
		config.Chart.Columns = trimColumns(raw)
	case []interface{}:
		result := make([]string, 0, len(raw))
		for _, item := range raw {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		config.Chart.Columns = trimColumns(result)
	}

	config.Chart.Renderer = strings.ToLower(strings.TrimSpace(config.Chart.Renderer))
	config.Display.Mode = strings.ToLower(strings.TrimSpace(config.Display.Mode))

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func splitColumns(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return trimColumns(strings.Split(raw, ","))
}

func trimColumns(columns []string) []string {
	result := make([]string, 0, len(columns))
	for _, c := range columns {
		if c = strings.TrimSpace(c); c != "" {
			result = append(result, c)
		}
	}
	return result
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("telegram.bot_token", "FRAMETIMES_TELEGRAM_BOT_TOKEN", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "FRAMETIMES_TELEGRAM_CHAT_ID", "TELEGRAM_CHAT_ID")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("csv.path", "times.csv")

	v.SetDefault("chart.rows", 200)
	v.SetDefault("chart.columns", DefaultColumns)
	v.SetDefault("chart.renderer", RendererGG)
	v.SetDefault("chart.width", 2000) // 20x10 inches at 100 dpi
	v.SetDefault("chart.height", 1000)
	v.SetDefault("chart.dpi", 100)
	v.SetDefault("chart.font_path", "")

	v.SetDefault("display.mode", DisplayWindow)
	v.SetDefault("display.output_dir", "charts")
	v.SetDefault("display.viewer_command", "")
	v.SetDefault("display.viewer_timeout", 30)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.max_retries", 3)
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.CSV.Path) == "" {
		return fmt.Errorf("csv.path must not be empty")
	}
	if cfg.Chart.Rows <= 0 {
		return fmt.Errorf("chart.rows must be positive, got %d", cfg.Chart.Rows)
	}
	if len(cfg.Chart.Columns) == 0 {
		return fmt.Errorf("chart.columns must name at least one column")
	}
	if cfg.Chart.Width <= 0 || cfg.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Chart.DPI <= 0 {
		return fmt.Errorf("chart.dpi must be positive, got %d", cfg.Chart.DPI)
	}

	switch cfg.Chart.Renderer {
	case RendererGG, RendererPlot:
	default:
		return fmt.Errorf("unknown chart.renderer %q: want %s or %s", cfg.Chart.Renderer, RendererGG, RendererPlot)
	}

	switch cfg.Display.Mode {
	case DisplayWindow, DisplayViewer, DisplayFile, DisplayNone:
	case DisplayTelegram:
		if cfg.Telegram.BotToken == "" {
			return fmt.Errorf("display.mode telegram requires telegram.bot_token")
		}
		if cfg.Telegram.ChatID == 0 {
			return fmt.Errorf("display.mode telegram requires telegram.chat_id")
		}
	default:
		return fmt.Errorf("unknown display.mode %q", cfg.Display.Mode)
	}

	return nil
}
