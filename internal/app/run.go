package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vk/mobench/internal/corpus"
	"github.com/vk/mobench/internal/ctxlog"
	"github.com/vk/mobench/internal/executor"
	"github.com/vk/mobench/internal/stats"
)

// Run executes one full harness pass: discovery, pooled compilation,
// aggregation, rendering and report serialization. The returned error is
// non-nil only for run-level failures; individual model failures are
// reflected in the statistics, never in the error.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	logger.Info("🔍 Scanning corpus...", "root", a.config.CorpusRoot, "package", a.config.Package)
	tasks, err := corpus.Discover(ctx, corpus.DiscoverOptions{
		Root:      a.config.CorpusRoot,
		Namespace: a.config.Package,
		Limit:     a.config.Limit,
		Skip:      a.skip,
	})
	if err != nil {
		return fmt.Errorf("corpus discovery failed: %w", err)
	}
	logger.Info("Discovery finished.", "models", len(tasks))

	start := time.Now()
	run := executor.New(
		a.runner,
		time.Duration(a.config.TimeoutSec)*time.Second,
		a.config.Parallelism,
		executor.NewConsoleProgress(a.outW, len(tasks)),
	)

	if len(tasks) > 0 {
		logger.Info("🚀 Starting compilation run.", "parallelism", a.config.Parallelism, "timeout_sec", a.config.TimeoutSec)
	} else {
		logger.Warn("No models discovered, nothing to compile.")
	}
	modelResults := run.Run(ctx, tasks)
	fmt.Fprintln(a.outW)

	st := stats.New(runID)
	st.Collect(modelResults)
	st.Finalize(time.Since(start))
	logger.Info("🏁 Compilation run finished.", "passed", st.Passed, "failed", st.Failed)

	st.RenderSummary(a.outW, modelResults, a.config.ShowFailures)

	if a.config.Output != "" {
		if err := stats.WriteReport(a.config.Output, st.Report(modelResults)); err != nil {
			return err
		}
		logger.Info("Report written.", "path", a.config.Output)
	}

	// "Ran but nothing passed" is the only run-level failure; a filter that
	// discovered nothing is a clean zero-work run.
	if st.TotalModels > 0 && st.Passed == 0 {
		return fmt.Errorf("no models passed: %d of %d failed", st.Failed, st.TotalModels)
	}

	logger.Debug("App.Run method finished.")
	return nil
}
