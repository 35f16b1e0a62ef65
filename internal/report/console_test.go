package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{100, StatusGood},
		{99.99, StatusWarning},
		{80, StatusWarning},
		{79.99, StatusBad},
		{0, StatusBad},
	}

	for _, tt := range tests {
		if got := Status(tt.percent, 80); got != tt.want {
			t.Errorf("Status(%v, 80) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestPrintQuality(t *testing.T) {
	before, _ := sampleMetrics()
	var buf bytes.Buffer

	PrintQuality(&buf, before, 80)

	out := buf.String()
	assert.Contains(t, out, "RAPPORT DE QUALITÉ: Clients (AVANT)")
	assert.Contains(t, out, "Lignes totales: 3\n")
	assert.Contains(t, out, "Colonnes totales: 2\n")
	assert.Contains(t, out, "Taux de complétude global: 83.33%\n")
	assert.Contains(t, out, "Nombre de doublons: 1 (33.33%)\n")
	assert.Contains(t, out, "  bad email: 66.67%\n")
	assert.Contains(t, out, "  good nom: 100.0%\n")
}

func TestPrintComparison(t *testing.T) {
	before, after := sampleMetrics()
	var buf bytes.Buffer

	require.NoError(t, PrintComparison(&buf, Compare(before, after)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "COMPARAISON AVANT/APRÈS:", lines[0])
	assert.Contains(t, lines[1], "Amélioration")
	assert.Contains(t, lines[2], "Nombre de lignes")
	assert.True(t, strings.HasSuffix(lines[5], " 8.33"), "right-aligned cells: %q", lines[5])
}
