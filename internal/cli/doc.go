// Package cli parses command-line arguments into an app.Config and defines
// the exit-code-bearing error type used by the entrypoint.
package cli
