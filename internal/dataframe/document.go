package dataframe

import (
	"fmt"
	"strings"
)

// Document serializes one row into a text document of the form
//
//	field1: value1
//	field2: value2
//
// in column order. Values are rendered with their runtime textual
// representation and no escaping is performed; readability of the
// resulting document wins over strict reversibility.
func Document(columns []string, values []any) string {
	lines := make([]string, len(columns))
	for i, col := range columns {
		lines[i] = fmt.Sprintf("%v: %v", col, values[i])
	}
	return strings.Join(lines, "\n")
}
