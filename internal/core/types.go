package core

import "fmt"

// Record is one row of a dataset, keyed by column name.
// Values are string, float64, bool, time.Time, or nil for a missing value.
type Record map[string]any

// Dataset is an ordered sequence of records sharing a column set.
//
// Transform methods never mutate the receiver or its rows: every method
// returns a new Dataset whose rows are fresh maps.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Record
}

// NewDataset creates a dataset with the given column order and rows.
// Cells absent from a row read as missing.
func NewDataset(name string, columns []string, rows []Record) *Dataset {
	return &Dataset{
		Name:    name,
		Columns: append([]string(nil), columns...),
		Rows:    rows,
	}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// HasColumn reports whether the dataset has a column with this exact name.
func (d *Dataset) HasColumn(name string) bool {
	return d.columnIndex(name) >= 0
}

func (d *Dataset) columnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of one column in row order.
func (d *Dataset) Column(name string) []any {
	out := make([]any, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r[name]
	}
	return out
}

// Clone returns a copy with freshly allocated rows.
func (d *Dataset) Clone() *Dataset {
	rows := make([]Record, len(d.Rows))
	for i, r := range d.Rows {
		rows[i] = r.clone()
	}
	return NewDataset(d.Name, d.Columns, rows)
}

func (r Record) clone() Record {
	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// WithColumn returns a dataset where column name holds fn(row) for every row.
// A new column is appended after the existing ones; an existing column keeps
// its position and is overwritten.
func (d *Dataset) WithColumn(name string, fn func(Record) any) *Dataset {
	out := d.Clone()
	if !out.HasColumn(name) {
		out.Columns = append(out.Columns, name)
	}
	for i, r := range d.Rows {
		out.Rows[i][name] = fn(r)
	}
	return out
}

// MapColumn returns a dataset where every value of column name is replaced
// by fn(value). The column must exist.
func (d *Dataset) MapColumn(name string, fn func(any) any) (*Dataset, error) {
	if !d.HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return d.WithColumn(name, func(r Record) any { return fn(r[name]) }), nil
}

// CopyColumn appends column dst holding the values of src.
func (d *Dataset) CopyColumn(src, dst string) (*Dataset, error) {
	if !d.HasColumn(src) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, src)
	}
	return d.WithColumn(dst, func(r Record) any { return r[src] }), nil
}

// Rename returns a dataset where column old is called to.
func (d *Dataset) Rename(old, to string) (*Dataset, error) {
	idx := d.columnIndex(old)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, old)
	}
	out := d.Clone()
	out.Columns[idx] = to
	for _, r := range out.Rows {
		v, ok := r[old]
		delete(r, old)
		if ok {
			r[to] = v
		}
	}
	return out, nil
}

// Select returns a dataset restricted to the given columns, in that order.
func (d *Dataset) Select(columns ...string) (*Dataset, error) {
	for _, c := range columns {
		if !d.HasColumn(c) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, c)
		}
	}
	rows := make([]Record, len(d.Rows))
	for i, r := range d.Rows {
		nr := make(Record, len(columns))
		for _, c := range columns {
			nr[c] = r[c]
		}
		rows[i] = nr
	}
	return NewDataset(d.Name, columns, rows), nil
}

// Drop returns a dataset without the given columns. Unknown names are ignored.
func (d *Dataset) Drop(columns ...string) *Dataset {
	drop := make(map[string]bool, len(columns))
	for _, c := range columns {
		drop[c] = true
	}
	keep := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	out, _ := d.Select(keep...)
	return out
}

// Concat appends the rows of other after the rows of d. The column set is
// the union, d's columns first; cells a source lacks read as missing.
func (d *Dataset) Concat(other *Dataset) *Dataset {
	columns := append([]string(nil), d.Columns...)
	for _, c := range other.Columns {
		if !d.HasColumn(c) {
			columns = append(columns, c)
		}
	}
	rows := make([]Record, 0, len(d.Rows)+len(other.Rows))
	for _, r := range d.Rows {
		rows = append(rows, r.clone())
	}
	for _, r := range other.Rows {
		rows = append(rows, r.clone())
	}
	return NewDataset(d.Name, columns, rows)
}

// LeftJoin attaches the columns of right to every row of d whose leftKey
// value equals right's rightKey value. Rows without a match keep missing
// values in the attached columns. When right repeats a key, the first
// matching right row wins, so the row count never changes.
func (d *Dataset) LeftJoin(right *Dataset, leftKey, rightKey string) (*Dataset, error) {
	if !d.HasColumn(leftKey) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, leftKey)
	}
	if !right.HasColumn(rightKey) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, rightKey)
	}

	lookup := make(map[string]Record, len(right.Rows))
	for _, r := range right.Rows {
		v := r[rightKey]
		if IsMissing(v) {
			continue
		}
		k := cellKey(v)
		if _, seen := lookup[k]; !seen {
			lookup[k] = r
		}
	}

	columns := append([]string(nil), d.Columns...)
	for _, c := range right.Columns {
		if !d.HasColumn(c) {
			columns = append(columns, c)
		}
	}

	rows := make([]Record, len(d.Rows))
	for i, r := range d.Rows {
		nr := r.clone()
		var match Record
		if v := r[leftKey]; !IsMissing(v) {
			match = lookup[cellKey(v)]
		}
		for _, c := range right.Columns {
			if d.HasColumn(c) {
				continue
			}
			nr[c] = match[c]
		}
		rows[i] = nr
	}
	return NewDataset(d.Name, columns, rows), nil
}

// DistinctCount returns the number of distinct non-missing values in a column.
func (d *Dataset) DistinctCount(name string) int {
	seen := make(map[string]struct{})
	for _, r := range d.Rows {
		v := r[name]
		if IsMissing(v) {
			continue
		}
		seen[cellKey(v)] = struct{}{}
	}
	return len(seen)
}

// NonMissingCount returns the number of non-missing values in a column.
func (d *Dataset) NonMissingCount(name string) int {
	n := 0
	for _, r := range d.Rows {
		if !IsMissing(r[name]) {
			n++
		}
	}
	return n
}
