package app

import "errors"

// Default values applied after profile merging.
const (
	DefaultCompiler     = "rumoca"
	DefaultParallelism  = 1
	DefaultShowFailures = 20
	DefaultTimeoutSec   = 30
)

// Config holds all the necessary configuration for an App instance to run.
// Zero values mean "not set on the command line": 0 for the integer options,
// -1 for ShowFailures (so an explicit zero survives), empty strings for
// paths. Unset options are filled from the profile and then from defaults.
type Config struct {
	CorpusRoot   string
	ProfilePath  string
	SkipListPath string

	Compiler   string
	TimeoutSec int

	Limit       int
	Package     string
	Parallelism int

	Output       string
	ShowFailures int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a raw flag-level configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CorpusRoot == "" && cfg.ProfilePath == "" {
		return nil, errors.New("a corpus root or a profile is required")
	}
	return &cfg, nil
}
