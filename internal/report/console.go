package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

// Column completeness statuses.
const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusBad     = "bad"
)

var rule = strings.Repeat("=", 60)

// Status classifies a column completeness rate: complete columns are good,
// those at or above warnThreshold are a warning, the rest are bad.
func Status(percent, warnThreshold float64) string {
	switch {
	case percent >= 100:
		return StatusGood
	case percent >= warnThreshold:
		return StatusWarning
	default:
		return StatusBad
	}
}

// PrintQuality writes the quality report of one snapshot.
func PrintQuality(w io.Writer, m core.QualityMetrics, warnThreshold float64) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "RAPPORT DE QUALITÉ: %s\n", m.DatasetName)
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, " Lignes totales: %d\n", m.TotalRows)
	fmt.Fprintf(w, " Colonnes totales: %d\n", m.TotalColumns)
	fmt.Fprintf(w, " Taux de complétude global: %s%%\n", percent(m.GlobalCompletenessRate))
	fmt.Fprintf(w, " Taux de valeurs manquantes: %s%%\n", percent(m.MissingRate))
	fmt.Fprintf(w, " Nombre de doublons: %d (%s%%)\n", m.NumDuplicates, percent(m.DuplicateRate))
	fmt.Fprintf(w, "\n Complétude par colonne:\n")
	for _, cc := range m.CompletenessPerColumn {
		fmt.Fprintf(w, "  %s %s: %s%%\n", Status(cc.Percent, warnThreshold), cc.Column, percent(cc.Percent))
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}

// PrintComparison writes the before/after table aligned in columns.
func PrintComparison(w io.Writer, rows []KPIRow) error {
	fmt.Fprintln(w, "\nCOMPARAISON AVANT/APRÈS:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(KPIHeader, "\t")+"\t")
	for _, rec := range Records(rows) {
		fmt.Fprintln(tw, strings.Join(rec, "\t")+"\t")
	}
	return tw.Flush()
}

func percent(f float64) string {
	return core.FormatFloat(f)
}
