// Package shared provides common utility functions used across multiple
// packages in the invconv codebase.
package shared

import "strings"

// IsBlankRow reports whether every cell of a spreadsheet row is empty or
// whitespace.
func IsBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// NormalizeHeader folds a column name for case-insensitive comparison.
func NormalizeHeader(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
