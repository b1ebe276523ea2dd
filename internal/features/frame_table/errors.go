package frame_table

import (
	"fmt"
	"strings"
)

// DataLoadError means the CSV could not be turned into a table:
// missing or unreadable file, malformed CSV, or no frame rows.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load frame timings from %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// SchemaError means one or more required timing columns are absent.
type SchemaError struct {
	Missing   []string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing timing columns: %s (available: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}
