package exec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// DefaultViewerCommand returns the command that opens a file with the desktop's default application.
func DefaultViewerCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// ParseCommand splits a configured command line on whitespace.
// An empty line yields the platform default.
func ParseCommand(line string) []string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return DefaultViewerCommand()
	}
	return fields
}

// OpenFile runs command with filePath appended as the last argument and waits for it to exit
// Returns combined output and error
func OpenFile(ctx context.Context, command []string, filePath string, timeout time.Duration) ([]byte, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("viewer command is empty")
	}

	if err := validateInstalled(command[0]); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file path: %w", err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", absPath)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, command[1:]...), absPath)
	cmd := exec.CommandContext(ctx, command[0], args...)

	output, err := cmd.CombinedOutput()

	if ctx.Err() == context.DeadlineExceeded {
		return output, fmt.Errorf("command timed out after %v", timeout)
	}

	return output, err
}

// validateInstalled checks that name resolves on PATH
func validateInstalled(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s is not installed or not in PATH: %w", name, err)
	}
	return nil
}
