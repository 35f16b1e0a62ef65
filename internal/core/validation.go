package core

// validation.go checks that a loaded dataset carries the columns a
// pipeline stage cannot run without.
//
// Heuristically detected columns (email, phone, ...) are never required:
// when one is absent its stage is skipped. Fixed-schema inputs such as the
// catalog sources are validated up front so a run fails before any output
// is written.

import (
	"fmt"
	"strings"
)

// HeaderIndex maps column names (lowercase) to their position in the header row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased and trimmed for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// ValidateHeaders checks that every required column exists in headers.
// Returns an error wrapping ErrMissingColumns that lists all missing columns.
func ValidateHeaders(headers []string, required []string) error {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, name := range required {
		if _, ok := idx[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateDataset runs ValidateHeaders against a dataset's columns and
// names the dataset in the error.
func ValidateDataset(d *Dataset, required []string) error {
	if err := ValidateHeaders(d.Columns, required); err != nil {
		return fmt.Errorf("%s: %w", d.Name, err)
	}
	return nil
}
