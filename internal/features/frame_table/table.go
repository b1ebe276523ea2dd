package frame_table

// Frame timing table backed by a gota dataframe
// Load reads the CSV once and cleans the records; Select and Head return narrowed copies
// Window is the column-major view the chart code consumes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is an immutable frame timing dataset, one row per frame in file order.
type Table struct {
	source string
	df     dataframe.DataFrame
}

// Load reads the CSV at path. Columns listed in numeric are parsed as floats;
// cells that do not parse become NaN. Other columns keep their detected type.
func Load(path string, numeric []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	defer f.Close()

	return LoadReader(path, f, numeric)
}

// LoadReader is Load for an already open stream; source only names it in errors.
func LoadReader(source string, r io.Reader, numeric []string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &DataLoadError{Path: source, Err: err}
	}
	if len(records) < 2 {
		return nil, &DataLoadError{Path: source, Err: errors.New("no frame rows")}
	}
	cleanRecords(records)

	types := make(map[string]series.Type, len(numeric))
	for _, name := range numeric {
		types[name] = series.Float
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return nil, &DataLoadError{Path: source, Err: df.Err}
	}
	if df.Nrow() == 0 {
		return nil, &DataLoadError{Path: source, Err: errors.New("no frame rows")}
	}

	return &Table{source: source, df: df}, nil
}

// cleanRecords trims every cell, drops a UTF-8 byte order mark from the header
// and renames repeated header names to name.1, name.2, ... keeping the first as is.
func cleanRecords(records [][]string) {
	for _, row := range records {
		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
		}
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimSpace(strings.TrimPrefix(header[0], "\ufeff"))
	}

	seen := make(map[string]bool, len(header))
	for _, name := range header {
		seen[name] = true
	}
	counts := make(map[string]int, len(header))
	for i, name := range header {
		n := counts[name]
		counts[name] = n + 1
		if n == 0 {
			continue
		}
		renamed := fmt.Sprintf("%s.%d", name, n)
		for seen[renamed] {
			n++
			renamed = fmt.Sprintf("%s.%d", name, n)
		}
		counts[name] = n + 1
		seen[renamed] = true
		header[i] = renamed
	}
}

func (t *Table) Source() string { return t.source }

func (t *Table) Columns() []string { return t.df.Names() }

func (t *Table) Len() int { return t.df.Nrow() }

// Missing returns the names in columns that the table does not have, in the given order.
func (t *Table) Missing(columns []string) []string {
	have := make(map[string]bool, t.df.Ncol())
	for _, name := range t.df.Names() {
		have[name] = true
	}
	var missing []string
	for _, name := range columns {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// Select keeps exactly columns, in that order.
func (t *Table) Select(columns []string) (*Table, error) {
	if missing := t.Missing(columns); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Available: t.Columns()}
	}

	df := t.df.Select(columns)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to select columns: %w", df.Err)
	}
	return &Table{source: t.source, df: df}, nil
}

// Head keeps the first n rows. A table with n rows or fewer is returned as is.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if t.df.Nrow() <= n {
		return t
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return &Table{source: t.source, df: t.df.Subset(idx)}
}

// Floats returns the named column as float64 values.
func (t *Table) Floats(column string) ([]float64, error) {
	s := t.df.Col(column)
	if s.Err != nil {
		return nil, fmt.Errorf("column %s: %w", column, s.Err)
	}
	return s.Float(), nil
}

// FrameWindow is the narrowed, truncated dataset handed to the chart builder.
type FrameWindow struct {
	Source  string
	Columns []string
	Values  [][]float64 // Values[c][frame], column-major
}

func (w *FrameWindow) Len() int {
	if len(w.Values) == 0 {
		return 0
	}
	return len(w.Values[0])
}

// Row returns frame i across all columns, in column order.
func (w *FrameWindow) Row(i int) []float64 {
	row := make([]float64, len(w.Values))
	for c := range w.Values {
		row[c] = w.Values[c][i]
	}
	return row
}

// Window selects columns and keeps the first rows frames.
func (t *Table) Window(columns []string, rows int) (*FrameWindow, error) {
	narrowed, err := t.Select(columns)
	if err != nil {
		return nil, err
	}
	narrowed = narrowed.Head(rows)

	values := make([][]float64, len(columns))
	for i, name := range columns {
		col, err := narrowed.Floats(name)
		if err != nil {
			return nil, err
		}
		values[i] = col
	}

	return &FrameWindow{
		Source:  t.source,
		Columns: append([]string(nil), columns...),
		Values:  values,
	}, nil
}

// LoadWindow runs the whole read, select and truncate sequence for path.
func LoadWindow(path string, columns []string, rows int) (*FrameWindow, error) {
	table, err := Load(path, columns)
	if err != nil {
		return nil, err
	}
	return table.Window(columns, rows)
}
