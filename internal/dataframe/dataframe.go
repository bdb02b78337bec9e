package dataframe

import (
	"fmt"
	"strings"
)

// DataFrame is an ordered-column tabular value. Rows hold one value
// per column, in column order.
type DataFrame struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// New creates an empty frame with the given column order.
func New(columns ...string) *DataFrame {
	return &DataFrame{Columns: columns}
}

// AppendRow adds one row. The row must have one value per column.
func (df *DataFrame) AppendRow(values ...any) error {
	if len(values) != len(df.Columns) {
		return fmt.Errorf("row has %d values, frame has %d columns", len(values), len(df.Columns))
	}
	df.Rows = append(df.Rows, values)
	return nil
}

// NumRows returns the number of rows.
func (df *DataFrame) NumRows() int {
	return len(df.Rows)
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (df *DataFrame) ColumnIndex(name string) int {
	for i, col := range df.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the frame has the named column.
func (df *DataFrame) HasColumn(name string) bool {
	return df.ColumnIndex(name) >= 0
}

// TrimColumnQuotes strips a wrapping quote rune from every column
// name, e.g. `title` -> title.
func (df *DataFrame) TrimColumnQuotes(quote string) {
	for i, col := range df.Columns {
		df.Columns[i] = strings.Trim(col, quote)
	}
}

// WithColumn returns a copy of the frame with one column appended.
// values must hold one entry per row; row order is preserved.
func (df *DataFrame) WithColumn(name string, values []any) (*DataFrame, error) {
	if len(values) != len(df.Rows) {
		return nil, fmt.Errorf("column %s has %d values, frame has %d rows", name, len(values), len(df.Rows))
	}

	columns := make([]string, 0, len(df.Columns)+1)
	columns = append(columns, df.Columns...)
	columns = append(columns, name)

	out := &DataFrame{Columns: columns, Rows: make([][]any, len(df.Rows))}
	for i, row := range df.Rows {
		newRow := make([]any, 0, len(row)+1)
		newRow = append(newRow, row...)
		newRow = append(newRow, values[i])
		out.Rows[i] = newRow
	}
	return out, nil
}

// Select returns the values of the named columns for one row, in the
// requested column order. Callers must validate column presence first.
func (df *DataFrame) Select(rowIdx int, columns []string) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		if idx := df.ColumnIndex(col); idx >= 0 {
			values[i] = df.Rows[rowIdx][idx]
		}
	}
	return values
}
