package csv

import "strings"

// CleanHeader removes common spreadsheet artifacts from a header name:
// surrounding whitespace and an Excel formula wrapper (="...").
func CleanHeader(s string) string {
	return strings.TrimSpace(unwrapFormula(strings.TrimSpace(s)))
}

// CleanCell removes an Excel formula wrapper (="...") from a cell value.
// Whitespace is left alone: normalisers decide what it means.
func CleanCell(s string) string {
	trimmed := strings.TrimSpace(s)
	if unwrapped := unwrapFormula(trimmed); unwrapped != trimmed {
		return unwrapped
	}
	return s
}

func unwrapFormula(s string) string {
	if len(s) >= 3 && strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		return s[2 : len(s)-1]
	}
	return s
}
