package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/mobench/internal/compiler"
	"github.com/vk/mobench/internal/ctxlog"
	"github.com/vk/mobench/internal/profile"
	"github.com/vk/mobench/internal/skiplist"
)

// App encapsulates the harness's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	skip   *skiplist.SkipList
	runner compiler.Runner
}

// Option customizes App construction; primarily used by tests.
type Option func(*App)

// WithRunner substitutes the compiler runner, letting tests drop in a stub
// without spawning a real subprocess.
func WithRunner(r compiler.Runner) Option {
	return func(a *App) { a.runner = r }
}

// NewApp is the constructor for the harness. It returns a fully initialized
// App instance with its own isolated logger, the profile merged into the
// configuration, and skip rules loaded. Failures to load configuration are
// fatal startup errors and panic; the entrypoint recovers them into a clean
// exit.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	effective := *cfg
	if cfg.ProfilePath != "" {
		p, err := profile.Load(ctx, cfg.ProfilePath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		mergeProfile(&effective, p)
		logger.Debug("Run profile merged into configuration.", "path", cfg.ProfilePath)
	}
	applyDefaults(&effective)

	if effective.CorpusRoot == "" {
		panic(fmt.Errorf("failed to load configuration: no corpus root in flags or profile"))
	}

	skip := skiplist.Default()
	if effective.SkipListPath != "" {
		loaded, err := skiplist.Load(effective.SkipListPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		skip = loaded
		logger.Debug("Skip manifest loaded.", "path", effective.SkipListPath)
	}

	a := &App{
		outW:   outW,
		logger: logger,
		config: &effective,
		skip:   skip,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.runner == nil {
		a.runner = compiler.NewExecRunner(effective.Compiler, effective.CorpusRoot)
	}
	return a
}

// Config returns the effective post-merge configuration. This is primarily
// for testing.
func (a *App) Config() *Config {
	return a.config
}

// mergeProfile fills configuration fields left unset on the command line
// from the profile. Flags always win.
func mergeProfile(cfg *Config, p *profile.Profile) {
	if c := p.Corpus; c != nil {
		if cfg.CorpusRoot == "" {
			cfg.CorpusRoot = c.Root
		}
		if cfg.Package == "" {
			cfg.Package = c.Package
		}
		if cfg.SkipListPath == "" {
			cfg.SkipListPath = c.SkipList
		}
	}
	if c := p.Compiler; c != nil {
		if cfg.Compiler == "" {
			cfg.Compiler = c.Command
		}
		if cfg.TimeoutSec == 0 {
			cfg.TimeoutSec = c.TimeoutSec
		}
	}
	if e := p.Execution; e != nil {
		if cfg.Parallelism == 0 {
			cfg.Parallelism = e.Parallelism
		}
		if cfg.Limit == 0 {
			cfg.Limit = e.Limit
		}
	}
	if r := p.Report; r != nil {
		if cfg.Output == "" {
			cfg.Output = r.Output
		}
		if cfg.ShowFailures < 0 && r.ShowFailures != nil {
			cfg.ShowFailures = *r.ShowFailures
		}
	}
}

// applyDefaults resolves any options still unset after flag and profile
// merging.
func applyDefaults(cfg *Config) {
	if cfg.Compiler == "" {
		cfg.Compiler = DefaultCompiler
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = DefaultParallelism
	}
	if cfg.TimeoutSec < 1 {
		cfg.TimeoutSec = DefaultTimeoutSec
	}
	if cfg.ShowFailures < 0 {
		cfg.ShowFailures = DefaultShowFailures
	}
}
