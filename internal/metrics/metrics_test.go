package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.AddRowsLoaded("crm", 10)
	m.AddRowsWritten("crm", 8)
	m.AddDuplicatesRemoved("crm", 2)
	m.AddRejected("crm", "email", 3)
	m.AddRejected("crm", "email", 0)
	m.IncrementSkipped("crm", "phones")
	m.SetCompleteness("crm", "after", 87.5)
	m.IncrementRun("crm", nil)
	m.IncrementRun("catalog", errors.New("boom"))

	assert.Equal(t, 10.0, testutil.ToFloat64(m.RowsLoaded.WithLabelValues("crm")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.RowsWritten.WithLabelValues("crm")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DuplicatesRemoved.WithLabelValues("crm")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ValuesRejected.WithLabelValues("crm", "email")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StagesSkipped.WithLabelValues("crm", "phones")))
	assert.Equal(t, 0.875, testutil.ToFloat64(m.Completeness.WithLabelValues("crm", "after")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("crm", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("catalog", "failure")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	m.AddRowsLoaded("crm", 1)
	m.AddRejected("crm", "email", 1)
	m.ObserveStage("crm", "emails", time.Second)
	m.IncrementRun("crm", nil)
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.AddRowsLoaded("catalog", 4)
	m.ObserveStage("catalog", "load", 20*time.Millisecond)

	path := filepath.Join(t.TempDir(), "reports", "pipeline.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `datacleaner_rows_loaded_total{pipeline="catalog"} 4`)
	assert.Contains(t, string(data), "datacleaner_stage_duration_seconds_count")
}
