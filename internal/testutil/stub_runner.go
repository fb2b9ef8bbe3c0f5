package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/vk/mobench/internal/compiler"
)

// StubRunner is an in-process compiler.Runner for executor and app tests.
// The zero value behaves as a compiler that instantly succeeds with empty
// output.
type StubRunner struct {
	// ExitCode, Stdout and Stderr shape the returned invocation.
	ExitCode int
	Stdout   string
	Stderr   string

	// Err, when set, is returned instead of an invocation, simulating a
	// spawn failure.
	Err error

	// Delay makes each run take this long, or until the context expires,
	// whichever comes first.
	Delay time.Duration

	// RunFunc, when set, overrides everything else for full per-call
	// control.
	RunFunc func(ctx context.Context, unitPath, identifier string) (*compiler.Invocation, error)

	mu    sync.Mutex
	calls []string
}

// Run implements compiler.Runner.
func (s *StubRunner) Run(ctx context.Context, unitPath, identifier string) (*compiler.Invocation, error) {
	s.mu.Lock()
	s.calls = append(s.calls, identifier)
	s.mu.Unlock()

	if s.RunFunc != nil {
		return s.RunFunc(ctx, unitPath, identifier)
	}

	start := time.Now()
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			// Mirror a subprocess killed by its context: a terminated
			// invocation, not a spawn error.
			return &compiler.Invocation{ExitCode: -1, Elapsed: time.Since(start)}, nil
		}
	}

	if s.Err != nil {
		return nil, s.Err
	}
	return &compiler.Invocation{
		ExitCode: s.ExitCode,
		Stdout:   s.Stdout,
		Stderr:   s.Stderr,
		Elapsed:  time.Since(start),
	}, nil
}

// Calls returns the identifiers run so far, in arrival order.
func (s *StubRunner) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
