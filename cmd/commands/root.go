package commands

// Root command for Cobra CLI
// Running the binary with no arguments renders the frame-time chart
// Registers the columns subcommand and the shared configuration flags

import (
	"errors"

	"frametimes/internal/features/frame_table"
	"frametimes/internal/infra/config"

	"github.com/spf13/cobra"
)

const (
	ExitFailure  = 1
	ExitDataLoad = 2
	ExitSchema   = 3
)

var rootCmd = &cobra.Command{
	Use:   "frametimes",
	Short: "Stacked bar chart of per-frame render timings",
	Long: `frametimes reads a CSV of per-frame render timings (times.csv by default), keeps the
four Frame_End_Render_* phase columns for the first 200 frames and shows them as a
stacked bar chart.`,
	Version:       "1.0.0",
	Args:          cobra.NoArgs,
	RunE:          runChart,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	var loadErr *frame_table.DataLoadError
	var schemaErr *frame_table.SchemaError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &loadErr):
		return ExitDataLoad
	case errors.As(err, &schemaErr):
		return ExitSchema
	default:
		return ExitFailure
	}
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(columnsCmd)
}
