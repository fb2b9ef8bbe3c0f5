package compiler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/vk/mobench/internal/ctxlog"
)

// corpusRootEnv points the compiler at the corpus search root.
const corpusRootEnv = "MODELICAPATH"

// ExecRunner invokes the compiler binary as a subprocess.
type ExecRunner struct {
	// Command is the compiler executable, resolved via PATH when relative.
	Command string

	// CorpusRoot is exported to the subprocess via MODELICAPATH.
	CorpusRoot string
}

// NewExecRunner creates a subprocess-backed Runner.
func NewExecRunner(command, corpusRoot string) *ExecRunner {
	return &ExecRunner{Command: command, CorpusRoot: corpusRoot}
}

// Run spawns the compiler against a single unit. A non-zero exit status is a
// normal Invocation, not an error; the error return is reserved for failures
// to spawn or communicate with the process.
func (r *ExecRunner) Run(ctx context.Context, unitPath, identifier string) (*Invocation, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Spawning compiler.", "command", r.Command, "unit", unitPath, "model", identifier)

	cmd := exec.CommandContext(ctx, r.Command, unitPath, "--model", identifier, "--json")
	cmd.Env = append(os.Environ(), corpusRootEnv+"="+r.CorpusRoot)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	inv := &Invocation{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The process never ran or could not be communicated with.
			return nil, err
		}
		inv.ExitCode = exitErr.ExitCode()
	}

	logger.Debug("Compiler finished.", "model", identifier, "exit_code", inv.ExitCode, "elapsed", inv.Elapsed)
	return inv, nil
}
