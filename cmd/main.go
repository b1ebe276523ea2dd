package main

// Main entry point of the application
// Executes the Cobra root command and turns its error into an exit status

import (
	"fmt"
	"os"

	"frametimes/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
