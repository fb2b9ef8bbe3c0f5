// Package app wires the harness together: configuration merging, logger
// construction, corpus discovery, pooled execution, aggregation and the
// run-level exit policy.
package app
