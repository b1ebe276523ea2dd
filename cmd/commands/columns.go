package commands

// Lists the CSV header and checks the timing columns are present
// Exits with the schema error status when any is missing

import (
	"fmt"
	"io"

	"frametimes/internal/features/frame_table"
	"frametimes/internal/infra/config"
	logging "frametimes/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List CSV columns and check the timing columns are present",
	Long:  `Print every column of the frame timing CSV, marking the ones that will be stacked in the chart, and fail if any of them is missing.`,
	Args:  cobra.NoArgs,
	RunE:  runColumns,
}

func runColumns(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	table, err := frame_table.Load(cfg.CSV.Path, cfg.Chart.Columns)
	if err != nil {
		logging.LogError("Failed to load frame timings", zap.String("path", cfg.CSV.Path), zap.Error(err))
		return err
	}

	return describeColumns(cmd.OutOrStdout(), table, cfg.Chart.Columns)
}

func describeColumns(out io.Writer, table *frame_table.Table, required []string) error {
	wanted := make(map[string]int, len(required))
	for i, name := range required {
		wanted[name] = i + 1
	}

	for _, name := range table.Columns() {
		if pos, ok := wanted[name]; ok {
			fmt.Fprintf(out, "  [%d] %s\n", pos, name)
		} else {
			fmt.Fprintf(out, "      %s\n", name)
		}
	}
	fmt.Fprintf(out, "%d frames in %s\n", table.Len(), table.Source())

	if missing := table.Missing(required); len(missing) > 0 {
		for _, name := range missing {
			fmt.Fprintf(out, "missing: %s\n", name)
		}
		return &frame_table.SchemaError{Missing: missing, Available: table.Columns()}
	}
	return nil
}
