// Package stats accumulates per-run compilation statistics and renders them
// as a human summary and a machine-readable JSON report. Accumulation is
// commutative: feeding the same results in any arrival order produces the
// same statistics.
package stats
