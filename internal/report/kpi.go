// Package report turns quality metrics into the artefacts an operator
// reads: the before/after KPI table, the console quality report and the
// HTML KPI page.
package report

import (
	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/JonMunkholm/datacleaner/internal/csv"
)

// KPI table labels.
const (
	MetricRows         = "Nombre de lignes"
	MetricCompleteness = "Taux de complétude global (%)"
	MetricDuplicates   = "Taux de doublons (%)"
	MetricMissing      = "Taux de valeurs manquantes (%)"
)

// KPIHeader is the header row of the comparison table.
var KPIHeader = []string{"Métrique", "Avant", "Après", "Amélioration"}

// KPIRow compares one metric before and after cleaning.
type KPIRow struct {
	Metric      string
	Before      float64
	After       float64
	Improvement float64 // After - Before, rounded to 2 decimals
}

// Compare builds the comparison table of two quality snapshots.
func Compare(before, after core.QualityMetrics) []KPIRow {
	rows := []KPIRow{
		{Metric: MetricRows, Before: float64(before.TotalRows), After: float64(after.TotalRows)},
		{Metric: MetricCompleteness, Before: before.GlobalCompletenessRate, After: after.GlobalCompletenessRate},
		{Metric: MetricDuplicates, Before: before.DuplicateRate, After: after.DuplicateRate},
		{Metric: MetricMissing, Before: before.MissingRate, After: after.MissingRate},
	}
	for i := range rows {
		rows[i].Improvement = core.Round(rows[i].After-rows[i].Before, 2)
	}
	return rows
}

// Records renders the table as CSV records, header excluded.
func Records(rows []KPIRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.Metric,
			core.FormatFloat(r.Before),
			core.FormatFloat(r.After),
			core.FormatFloat(r.Improvement),
		}
	}
	return out
}

// WriteKPI writes the comparison table to path.
func WriteKPI(path string, rows []KPIRow) error {
	return csv.WriteTable(path, KPIHeader, Records(rows))
}
