package core

// ColumnCompleteness is the share of non-missing values of one column, in percent.
type ColumnCompleteness struct {
	Column  string
	Percent float64
}

// QualityMetrics is a read-only snapshot of a dataset's quality.
// All rates are percentages rounded to 2 decimals.
type QualityMetrics struct {
	DatasetName            string
	TotalRows              int
	TotalColumns           int
	CompletenessPerColumn  []ColumnCompleteness
	GlobalCompletenessRate float64
	NumDuplicates          int
	DuplicateRate          float64
	MissingRate            float64
}

// ComputeQuality measures d. Duplicates are whole-row exact duplicates,
// counted after their first occurrence. Every rate is 0 for an empty
// dataset.
func ComputeQuality(d *Dataset, name string) QualityMetrics {
	m := QualityMetrics{
		DatasetName:  name,
		TotalRows:    len(d.Rows),
		TotalColumns: len(d.Columns),
	}

	rows := len(d.Rows)
	totalMissing := 0
	m.CompletenessPerColumn = make([]ColumnCompleteness, len(d.Columns))
	for i, c := range d.Columns {
		missing := rows - d.NonMissingCount(c)
		totalMissing += missing
		pct := 0.0
		if rows > 0 {
			pct = Round((1-float64(missing)/float64(rows))*100, 2)
		}
		m.CompletenessPerColumn[i] = ColumnCompleteness{Column: c, Percent: pct}
	}

	if cells := rows * len(d.Columns); cells > 0 {
		m.GlobalCompletenessRate = Round((1-float64(totalMissing)/float64(cells))*100, 2)
		m.MissingRate = Round(float64(totalMissing)/float64(cells)*100, 2)
	}

	seen := make(map[string]bool, rows)
	for _, r := range d.Rows {
		k := rowKey(r, d.Columns)
		if seen[k] {
			m.NumDuplicates++
			continue
		}
		seen[k] = true
	}
	if rows > 0 {
		m.DuplicateRate = Round(float64(m.NumDuplicates)/float64(rows)*100, 2)
	}

	return m
}

// Completeness returns the completeness of one column, or false if the
// column was not measured.
func (m QualityMetrics) Completeness(column string) (float64, bool) {
	for _, cc := range m.CompletenessPerColumn {
		if cc.Column == column {
			return cc.Percent, true
		}
	}
	return 0, false
}
