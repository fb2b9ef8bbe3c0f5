package executor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vk/mobench/internal/classify"
	"github.com/vk/mobench/internal/compiler"
	"github.com/vk/mobench/internal/stats"
	"github.com/vk/mobench/internal/task"
	"github.com/vk/mobench/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func someTasks(n int) []task.Task {
	tasks := make([]task.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, task.Task{
			UnitPath:   fmt.Sprintf("corpus/M/U%d.mo", i),
			Identifier: fmt.Sprintf("M.U%d", i),
		})
	}
	return tasks
}

func TestRun_AllSucceed(t *testing.T) {
	t.Parallel()

	runner := &testutil.StubRunner{}
	e := New(runner, time.Minute, 1, nil)

	results := e.Run(context.Background(), someTasks(4))

	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Success)
		assert.Empty(t, r.ErrorMessage)
		assert.Empty(t, r.ErrorCategory)
	}
	assert.Len(t, runner.Calls(), 4)
}

func TestRun_OneResultPerTaskRegardlessOfOrder(t *testing.T) {
	t.Parallel()

	runner := &testutil.StubRunner{Delay: 5 * time.Millisecond}
	e := New(runner, time.Minute, 4, nil)
	tasks := someTasks(9)

	results := e.Run(context.Background(), tasks)

	require.Len(t, results, len(tasks))
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.ModelName)
	}
	sort.Strings(names)
	expected := make([]string, 0, len(tasks))
	for _, tk := range tasks {
		expected = append(expected, tk.Identifier)
	}
	sort.Strings(expected)
	assert.Equal(t, expected, names)
}

func TestRun_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	var inflight, peak atomic.Int64
	runner := &testutil.StubRunner{
		RunFunc: func(ctx context.Context, unitPath, identifier string) (*compiler.Invocation, error) {
			n := inflight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inflight.Add(-1)
			return &compiler.Invocation{}, nil
		},
	}

	e := New(runner, time.Minute, 3, nil)
	e.Run(context.Background(), someTasks(9))

	assert.LessOrEqual(t, peak.Load(), int64(3))
	assert.Greater(t, peak.Load(), int64(1))
}

func TestRun_SequentialByDefault(t *testing.T) {
	t.Parallel()

	var inflight, peak atomic.Int64
	runner := &testutil.StubRunner{
		RunFunc: func(ctx context.Context, unitPath, identifier string) (*compiler.Invocation, error) {
			n := inflight.Add(1)
			if n > peak.Load() {
				peak.Store(n)
			}
			time.Sleep(5 * time.Millisecond)
			inflight.Add(-1)
			return &compiler.Invocation{}, nil
		},
	}

	e := New(runner, time.Minute, 0, nil)
	e.Run(context.Background(), someTasks(5))

	assert.Equal(t, int64(1), peak.Load())
}

func TestRun_TimeoutCategory(t *testing.T) {
	t.Parallel()

	// The stub outlives the timeout; whatever it would eventually report is
	// irrelevant.
	runner := &testutil.StubRunner{Delay: time.Second, ExitCode: 0}
	e := New(runner, 30*time.Millisecond, 1, nil)

	results := e.Run(context.Background(), someTasks(1))

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, classify.CategoryTimeout, results[0].ErrorCategory)
	assert.Contains(t, results[0].ErrorMessage, "Compilation timeout")
}

func TestRun_TimeoutDoesNotAbortSiblings(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// One task stalls past the timeout, the rest finish instantly.
	runner := &testutil.StubRunner{
		RunFunc: func(ctx context.Context, unitPath, identifier string) (*compiler.Invocation, error) {
			if identifier == "M.U0" {
				<-ctx.Done()
				return &compiler.Invocation{ExitCode: -1}, nil
			}
			return &compiler.Invocation{}, nil
		},
	}
	e := New(runner, 30*time.Millisecond, 3, nil)

	// --- Act ---
	results := e.Run(context.Background(), someTasks(6))

	// --- Assert ---
	require.Len(t, results, 6)
	var timedOut, passed int
	for _, r := range results {
		if r.ErrorCategory == classify.CategoryTimeout {
			timedOut++
		}
		if r.Success {
			passed++
		}
	}
	assert.Equal(t, 1, timedOut)
	assert.Equal(t, 5, passed)
}

func TestRun_SpawnFailureIsInternalError(t *testing.T) {
	t.Parallel()

	runner := &testutil.StubRunner{Err: errors.New("exec: no such file")}
	e := New(runner, time.Minute, 1, nil)

	results := e.Run(context.Background(), someTasks(1))

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, classify.CategoryInternal, results[0].ErrorCategory)
	assert.Contains(t, results[0].ErrorMessage, "no such file")
}

func TestRun_FailureMessageSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		stdout   string
		stderr   string
		expected string
	}{
		{"stderr wins", "ignored stdout", "parse error", "parse error"},
		{"stdout fallback", "flatten failed", "", "flatten failed"},
		{"sentinel when silent", "", "", "Unknown error"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			runner := &testutil.StubRunner{ExitCode: 1, Stdout: tc.stdout, Stderr: tc.stderr}
			e := New(runner, time.Minute, 1, nil)

			results := e.Run(context.Background(), someTasks(1))

			require.Len(t, results, 1)
			assert.False(t, results[0].Success)
			assert.Equal(t, tc.expected, results[0].ErrorMessage)
			// Categorization happens at aggregation time.
			assert.Empty(t, results[0].ErrorCategory)
		})
	}
}

func TestRun_BalanceFromStructuredOutput(t *testing.T) {
	t.Parallel()

	t.Run("balanced", func(t *testing.T) {
		t.Parallel()
		runner := &testutil.StubRunner{Stdout: `{"structure":{"n_equations":3,"n_states":2,"n_algebraic":1}}`}
		e := New(runner, time.Minute, 1, nil)

		results := e.Run(context.Background(), someTasks(1))

		require.Len(t, results, 1)
		require.NotNil(t, results[0].IsBalanced)
		assert.True(t, *results[0].IsBalanced)
	})

	t.Run("unbalanced", func(t *testing.T) {
		t.Parallel()
		runner := &testutil.StubRunner{Stdout: `{"structure":{"n_equations":3,"n_states":1,"n_algebraic":1}}`}
		e := New(runner, time.Minute, 1, nil)

		results := e.Run(context.Background(), someTasks(1))

		require.Len(t, results, 1)
		require.NotNil(t, results[0].IsBalanced)
		assert.False(t, *results[0].IsBalanced)
	})

	t.Run("absent counts leave balance unset", func(t *testing.T) {
		t.Parallel()
		runner := &testutil.StubRunner{Stdout: "compiled fine, no JSON"}
		e := New(runner, time.Minute, 1, nil)

		results := e.Run(context.Background(), someTasks(1))

		require.Len(t, results, 1)
		assert.Nil(t, results[0].IsBalanced)
	})
}

func TestRun_ProgressDoesNotChangeStatistics(t *testing.T) {
	t.Parallel()

	tasks := someTasks(60)
	runner := &testutil.StubRunner{
		RunFunc: func(ctx context.Context, unitPath, identifier string) (*compiler.Invocation, error) {
			if identifier == "M.U7" || identifier == "M.U13" {
				return &compiler.Invocation{ExitCode: 1, Stderr: "parse error"}, nil
			}
			return &compiler.Invocation{}, nil
		},
	}

	collect := func(progress Progress) *stats.RunStatistics {
		e := New(runner, time.Minute, 4, progress)
		results := e.Run(context.Background(), tasks)
		s := stats.New("run")
		s.Collect(results)
		return s
	}

	out := &testutil.SafeBuffer{}
	withProgress := collect(NewConsoleProgress(out, len(tasks)))
	without := collect(nil)

	assert.Equal(t, without.TotalModels, withProgress.TotalModels)
	assert.Equal(t, without.Passed, withProgress.Passed)
	assert.Equal(t, without.Failed, withProgress.Failed)
	assert.Equal(t, without.ParseErrors, withProgress.ParseErrors)
	assert.Equal(t, without.PassRate(), withProgress.PassRate())
	// The console feed saw every completion.
	assert.Contains(t, out.String(), "F")
	assert.Contains(t, out.String(), "[50/60]")
}
