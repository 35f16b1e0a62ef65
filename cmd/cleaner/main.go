// Command cleaner runs the data-cleaning pipelines.
//
// Usage:
//
//	cleaner            # runs CLEAN_PIPELINES (default: crm,catalog)
//	cleaner crm        # runs the named pipelines, in order
//	cleaner all        # runs every registered pipeline
//
// Settings come from the environment and an optional .env file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/datacleaner/internal/config"
	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/JonMunkholm/datacleaner/internal/logging"
	"github.com/JonMunkholm/datacleaner/internal/metrics"
	"github.com/JonMunkholm/datacleaner/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envLoaded := godotenv.Overload() == nil

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	closer, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		return 1
	}
	defer closer.Close()

	if envLoaded {
		slog.Debug("loaded .env file (overwriting existing env vars)")
	}
	slog.Debug("configuration loaded", "config", cfg.String())

	names := args
	if len(names) == 0 {
		names = cfg.Cleaning.Pipelines
	}
	defs, err := pipeline.Resolve(names)
	if err != nil {
		slog.Error("invalid pipeline selection", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if cfg.Cleaning.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Cleaning.Timeout)
		defer cancel()
	}

	runID := uuid.NewString()
	ctx = logging.WithRun(ctx, runID)

	env := &pipeline.Env{
		Config:  cfg,
		Metrics: metrics.New(),
		Now:     time.Now,
	}
	if cfg.Report.Console {
		env.Console = os.Stdout
	}

	failed := 0
	for _, def := range defs {
		pctx := logging.WithPipeline(ctx, def.Key)
		logger := logging.FromContext(pctx)
		logger.Info("pipeline started", "label", def.Label)

		start := time.Now()
		res, err := def.Run(pctx, env)
		env.Metrics.IncrementRun(def.Key, err)
		if err != nil {
			failed++
			logger.Error("pipeline failed",
				"error", err,
				"code", core.MapError(err).Code,
				"duration", time.Since(start),
			)
			fmt.Fprintf(os.Stderr, "%s: %s\n", def.Key, core.FormatUserError(err))
			continue
		}
		logger.Info("pipeline finished",
			"rows_in", res.RowsIn,
			"rows_out", res.RowsOut,
			"outputs", res.Outputs,
			"duration", time.Since(start),
		)
	}

	if cfg.Metrics.Textfile != "" {
		if err := env.Metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			slog.Error("failed to write metrics", "error", err, "code", core.MapError(err).Code)
			failed++
		}
	}

	if failed > 0 {
		slog.Error("run finished with failures", "run_id", runID, "failed", failed)
		return 1
	}
	slog.Info("run finished", "run_id", runID, "pipelines", len(defs))
	return 0
}
