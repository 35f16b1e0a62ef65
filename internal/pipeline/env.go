// Package pipeline runs the cleaning pipelines: it loads raw files, chains
// the normalisers and reducers stage by stage, and writes the cleaned
// datasets and their quality reports.
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/JonMunkholm/datacleaner/internal/config"
	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/JonMunkholm/datacleaner/internal/logging"
	"github.com/JonMunkholm/datacleaner/internal/metrics"
	"github.com/JonMunkholm/datacleaner/internal/report"
)

// Env carries what a pipeline run needs from its caller.
type Env struct {
	Config  *config.Config
	Metrics *metrics.Metrics // may be nil
	Console io.Writer        // quality reports; nil disables them
	Now     func() time.Time // reference time for birthdate checks
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) printQuality(m core.QualityMetrics) {
	if e.Console != nil {
		report.PrintQuality(e.Console, m, e.Config.Report.WarnThreshold)
	}
}

func (e *Env) printComparison(rows []report.KPIRow) error {
	if e.Console == nil {
		return nil
	}
	return report.PrintComparison(e.Console, rows)
}

// Result summarises a completed run.
type Result struct {
	Pipeline string
	RowsIn   int
	RowsOut  int
	Before   core.QualityMetrics
	After    core.QualityMetrics
	Outputs  []string // files written, in write order
}

// stage is one step of a pipeline. Returning the input unchanged skips it.
type stage struct {
	name string
	run  func(ctx context.Context, ds *core.Dataset) (*core.Dataset, error)
}

// runStages applies stages in order, checking ctx between them and timing
// each one.
func (e *Env) runStages(ctx context.Context, pipeline string, ds *core.Dataset, stages []stage) (*core.Dataset, error) {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		out, err := s.run(ctx, ds)
		e.Metrics.ObserveStage(pipeline, s.name, time.Since(start))
		if err != nil {
			return nil, err
		}
		ds = out
	}
	return ds, nil
}

// skip logs and counts a stage that could not run on this dataset.
func (e *Env) skip(ctx context.Context, pipeline, stage, reason string, args ...any) {
	logging.WithFields(ctx, "stage", stage).Warn(reason, args...)
	e.Metrics.IncrementSkipped(pipeline, stage)
}
