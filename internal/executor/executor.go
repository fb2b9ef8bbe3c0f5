package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vk/mobench/internal/classify"
	"github.com/vk/mobench/internal/compiler"
	"github.com/vk/mobench/internal/ctxlog"
	"github.com/vk/mobench/internal/model"
	"github.com/vk/mobench/internal/task"
)

// unknownErrorMessage is the sentinel used when a failing compiler produced
// no output at all.
const unknownErrorMessage = "Unknown error"

// Executor runs compilation tasks against a compiler.Runner under bounded
// concurrency with a per-task timeout.
type Executor struct {
	runner   compiler.Runner
	timeout  time.Duration
	workers  int
	progress Progress
}

// New creates an executor. A worker count below one falls back to fully
// sequential execution; progress may be nil to disable console feedback.
func New(runner compiler.Runner, timeout time.Duration, workers int, progress Progress) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		runner:   runner,
		timeout:  timeout,
		workers:  workers,
		progress: progress,
	}
}

// Run executes all tasks and returns one result per task. Completion order
// is arbitrary; individual failures never abort the run or sibling tasks.
func (e *Executor) Run(ctx context.Context, tasks []task.Task) []model.Result {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executor starting.", "tasks", len(tasks), "workers", e.workers)

	resultCh := make(chan model.Result)
	collected := make(chan []model.Result)
	go func() {
		results := make([]model.Result, 0, len(tasks))
		for res := range resultCh {
			results = append(results, res)
		}
		collected <- results
	}()

	var g errgroup.Group
	g.SetLimit(e.workers)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			res := e.runOne(ctx, t)
			if e.progress != nil {
				e.progress.Tick(res.Success)
			}
			resultCh <- res
			return nil
		})
	}

	// Workers never return errors: a unit's failure is a result, not a fault.
	_ = g.Wait()
	close(resultCh)

	results := <-collected
	logger.Debug("Executor finished.", "results", len(results))
	return results
}

// runOne executes a single task and converts every failure mode into a
// failed result. The timeout applies per task: expiry terminates only this
// task's subprocess.
func (e *Executor) runOne(ctx context.Context, t task.Task) model.Result {
	logger := ctxlog.FromContext(ctx).With("model", t.Identifier)
	logger.Debug("Task picked up for compilation.")

	tctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	inv, err := e.runner.Run(tctx, t.UnitPath, t.Identifier)
	elapsed := time.Since(start)
	if inv != nil {
		elapsed = inv.Elapsed
	}

	res := model.Result{
		ModelName:     t.Identifier,
		FilePath:      t.UnitPath,
		CompileTimeMs: float64(elapsed.Microseconds()) / 1000.0,
	}

	switch {
	case errors.Is(tctx.Err(), context.DeadlineExceeded):
		// Timeout wins over whatever the dying subprocess reported.
		res.ErrorMessage = fmt.Sprintf("Compilation timeout (>%gs)", e.timeout.Seconds())
		res.ErrorCategory = classify.CategoryTimeout
		logger.Debug("Task timed out.")
	case err != nil:
		res.ErrorMessage = err.Error()
		res.ErrorCategory = classify.CategoryInternal
		logger.Debug("Task failed to spawn compiler.", "error", err)
	case inv.ExitCode == 0:
		res.Success = true
		res.IsBalanced = compiler.ParseBalance(inv.Stdout)
		logger.Debug("Task succeeded.", "elapsed", elapsed)
	default:
		res.ErrorMessage = failureMessage(inv)
		logger.Debug("Task failed.", "exit_code", inv.ExitCode)
	}

	return res
}

// failureMessage selects the failure text for a non-zero exit: stderr when
// non-empty, else stdout, else a fixed sentinel.
func failureMessage(inv *compiler.Invocation) string {
	if msg := strings.TrimSpace(inv.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(inv.Stdout); msg != "" {
		return msg
	}
	return unknownErrorMessage
}
