package core

// CompletenessScore counts the non-missing values of r among columns.
// The result is between 0 and len(columns).
func CompletenessScore(r Record, columns []string) int {
	n := 0
	for _, c := range columns {
		if !IsMissing(r[c]) {
			n++
		}
	}
	return n
}

// CompletenessScores scores every row of d. An empty column list scores
// over all of d's columns.
func CompletenessScores(d *Dataset, columns []string) []int {
	if len(columns) == 0 {
		columns = d.Columns
	}
	scores := make([]int, len(d.Rows))
	for i, r := range d.Rows {
		scores[i] = CompletenessScore(r, columns)
	}
	return scores
}
