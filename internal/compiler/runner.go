// Package compiler models the external compiler binary as a substitutable
// capability. The harness treats it as a black box: a path and an identifier
// go in, an exit code plus captured output come out.
package compiler

import (
	"context"
	"time"
)

// Invocation captures one compiler run.
type Invocation struct {
	// ExitCode is the process exit status; zero means success.
	ExitCode int

	// Stdout holds the machine-readable payload on success.
	Stdout string

	// Stderr holds the human-readable failure text.
	Stderr string

	// Elapsed is the wall-clock duration of the invocation.
	Elapsed time.Duration
}

// Runner abstracts the compiler so the real binary or a test stub can be
// substituted without touching the executor. Implementations must honor
// context cancellation: an expired deadline terminates only that invocation.
type Runner interface {
	Run(ctx context.Context, unitPath, identifier string) (*Invocation, error)
}
