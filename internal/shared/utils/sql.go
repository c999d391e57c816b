package utils

import (
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinList joins column names or SET clauses with commas
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// Placeholders returns n comma-separated `?` placeholders, e.g. "?, ?, ?"
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
