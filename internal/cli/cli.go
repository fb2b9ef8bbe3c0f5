package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/mobench/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mobench", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
mobench - A batch compilation harness for Modelica corpora.

Usage:
  mobench [options] [CORPUS_ROOT]

Arguments:
  CORPUS_ROOT
    Path to the corpus root directory (may also come from a profile).

Options:
`)
		flagSet.PrintDefaults()
	}

	corpusFlag := flagSet.String("corpus", "", "Path to the corpus root directory.")
	profileFlag := flagSet.String("profile", "", "Path to an HCL run-profile file.")
	skiplistFlag := flagSet.String("skiplist", "", "Path to a YAML skip manifest.")
	compilerFlag := flagSet.String("compiler", "", "Compiler executable to invoke. Default: 'rumoca'.")
	limitFlag := flagSet.Int("limit", 0, "Cap the number of discovered models. 0 is unlimited.")
	packageFlag := flagSet.String("package", "", "Only test models under a dotted sub-namespace, e.g. 'Modelica.Math'.")
	outputFlag := flagSet.String("output", "", "Write the full JSON report to this path.")
	parallelFlag := flagSet.Int("parallel", 0, "Number of concurrent compilations. Default: 1.")
	showFailuresFlag := flagSet.Int("show-failures", -1, "Number of failures shown in the summary. Default: 20.")
	timeoutFlag := flagSet.Int("timeout-sec", 0, "Per-model compilation timeout in seconds. Default: 30.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	corpus := *corpusFlag
	if corpus == "" && flagSet.NArg() > 0 {
		corpus = flagSet.Arg(0)
	}
	slog.Debug("Corpus root determined.", "path", corpus)

	if corpus == "" && *profileFlag == "" {
		slog.Debug("Neither corpus root nor profile provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *limitFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid limit: must be zero or a positive integer"}
	}
	if *parallelFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid parallel: must be a positive integer"}
	}
	if *timeoutFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid timeout-sec: must be a positive integer"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		CorpusRoot:   corpus,
		ProfilePath:  *profileFlag,
		SkipListPath: *skiplistFlag,
		Compiler:     *compilerFlag,
		Limit:        *limitFlag,
		Package:      *packageFlag,
		Output:       *outputFlag,
		Parallelism:  *parallelFlag,
		ShowFailures: *showFailuresFlag,
		TimeoutSec:   *timeoutFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
