package core

import (
	"fmt"
	"sort"
)

// KeepPolicy selects which row of a duplicate group survives deduplication.
type KeepPolicy string

const (
	// KeepMostComplete keeps the row with the most non-missing cells; ties
	// go to the earlier row. Output rows are ordered by descending score.
	KeepMostComplete KeepPolicy = "most_complete"
	// KeepFirst keeps the first occurrence, preserving input order.
	KeepFirst KeepPolicy = "first"
	// KeepLast keeps the last occurrence, preserving input order.
	KeepLast KeepPolicy = "last"
)

// ParseKeepPolicy converts a configuration string to a KeepPolicy.
func ParseKeepPolicy(s string) (KeepPolicy, error) {
	switch p := KeepPolicy(s); p {
	case KeepMostComplete, KeepFirst, KeepLast:
		return p, nil
	default:
		return "", fmt.Errorf("unknown keep policy %q", s)
	}
}

// Dedupe collapses rows that share the values of keys into one row.
//
// Missing key values compare equal to each other, so rows with a missing
// key still group. The input dataset is not modified.
func Dedupe(d *Dataset, keys []string, policy KeepPolicy) (*Dataset, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeyColumns
	}
	for _, k := range keys {
		if !d.HasColumn(k) {
			return nil, fmt.Errorf("dedupe: %w: %q", ErrUnknownColumn, k)
		}
	}

	var order []int
	switch policy {
	case KeepMostComplete:
		order = completenessOrder(d)
	case KeepFirst, KeepLast:
		order = make([]int, len(d.Rows))
		for i := range order {
			order[i] = i
		}
	default:
		return nil, fmt.Errorf("dedupe: unknown keep policy %q", policy)
	}

	var kept []int
	if policy == KeepLast {
		kept = keepLast(d, keys, order)
	} else {
		kept = keepFirst(d, keys, order)
	}

	rows := make([]Record, len(kept))
	for i, idx := range kept {
		rows[i] = d.Rows[idx].clone()
	}
	return NewDataset(d.Name, d.Columns, rows), nil
}

// completenessOrder returns row indexes stably sorted by descending
// completeness over all columns.
func completenessOrder(d *Dataset) []int {
	scores := CompletenessScores(d, nil)
	order := make([]int, len(d.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

func keepFirst(d *Dataset, keys []string, order []int) []int {
	seen := make(map[string]bool, len(order))
	kept := make([]int, 0, len(order))
	for _, idx := range order {
		k := rowKey(d.Rows[idx], keys)
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, idx)
	}
	return kept
}

func keepLast(d *Dataset, keys []string, order []int) []int {
	last := make(map[string]int, len(order))
	for _, idx := range order {
		last[rowKey(d.Rows[idx], keys)] = idx
	}
	kept := make([]int, 0, len(last))
	for _, idx := range order {
		if last[rowKey(d.Rows[idx], keys)] == idx {
			kept = append(kept, idx)
		}
	}
	return kept
}
