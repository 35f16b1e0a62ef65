// Package metrics records what a cleaning run did, in Prometheus form.
//
// A run has its own registry. At exit the registry is written to a
// textfile that a node exporter's textfile collector can pick up, since a
// batch job has no endpoint to scrape.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the cleaning pipelines.
type Metrics struct {
	Registry *prometheus.Registry

	// Row counts by pipeline
	RowsLoaded        *prometheus.CounterVec
	RowsWritten       *prometheus.CounterVec
	DuplicatesRemoved *prometheus.CounterVec

	// Values turned into missing by a normaliser, by pipeline and field
	ValuesRejected *prometheus.CounterVec

	// Stages skipped because their column was not found
	StagesSkipped *prometheus.CounterVec

	// Stage latencies by pipeline and stage
	StageDuration *prometheus.HistogramVec

	// Global completeness (0-1) by pipeline and phase ("before", "after")
	Completeness *prometheus.GaugeVec

	// Pipeline outcomes by pipeline and status ("success", "failure")
	Runs *prometheus.CounterVec
}

// New creates a Metrics instance with every collector registered on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		RowsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_rows_loaded_total",
			Help: "Rows read from the raw inputs",
		}, []string{"pipeline"}),

		RowsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_rows_written_total",
			Help: "Rows written to the cleaned output",
		}, []string{"pipeline"}),

		DuplicatesRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_duplicates_removed_total",
			Help: "Rows dropped by deduplication",
		}, []string{"pipeline"}),

		ValuesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_values_rejected_total",
			Help: "Values turned into missing by normalisation, by field",
		}, []string{"pipeline", "field"}),

		StagesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_stages_skipped_total",
			Help: "Cleaning stages skipped because their column was not found",
		}, []string{"pipeline", "stage"}),

		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datacleaner_stage_duration_seconds",
			Help:    "Duration of each cleaning stage",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"pipeline", "stage"}),

		Completeness: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "datacleaner_completeness_ratio",
			Help: "Global completeness of the dataset before and after cleaning",
		}, []string{"pipeline", "phase"}),

		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_pipeline_runs_total",
			Help: "Pipeline runs by outcome",
		}, []string{"pipeline", "status"}),
	}
}

// AddRowsLoaded records rows read from a raw input.
func (m *Metrics) AddRowsLoaded(pipeline string, n int) {
	if m != nil {
		m.RowsLoaded.WithLabelValues(pipeline).Add(float64(n))
	}
}

// AddRowsWritten records rows written to a cleaned output.
func (m *Metrics) AddRowsWritten(pipeline string, n int) {
	if m != nil {
		m.RowsWritten.WithLabelValues(pipeline).Add(float64(n))
	}
}

// AddDuplicatesRemoved records rows dropped by deduplication.
func (m *Metrics) AddDuplicatesRemoved(pipeline string, n int) {
	if m != nil {
		m.DuplicatesRemoved.WithLabelValues(pipeline).Add(float64(n))
	}
}

// AddRejected records values a normaliser turned into missing.
func (m *Metrics) AddRejected(pipeline, field string, n int) {
	if m != nil && n > 0 {
		m.ValuesRejected.WithLabelValues(pipeline, field).Add(float64(n))
	}
}

// IncrementSkipped records a skipped stage.
func (m *Metrics) IncrementSkipped(pipeline, stage string) {
	if m != nil {
		m.StagesSkipped.WithLabelValues(pipeline, stage).Inc()
	}
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(pipeline, stage string, d time.Duration) {
	if m != nil {
		m.StageDuration.WithLabelValues(pipeline, stage).Observe(d.Seconds())
	}
}

// SetCompleteness records a global completeness rate given in percent.
func (m *Metrics) SetCompleteness(pipeline, phase string, percent float64) {
	if m != nil {
		m.Completeness.WithLabelValues(pipeline, phase).Set(percent / 100)
	}
}

// IncrementRun records a pipeline outcome.
func (m *Metrics) IncrementRun(pipeline string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.Runs.WithLabelValues(pipeline, status).Inc()
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, creating parent directories.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
