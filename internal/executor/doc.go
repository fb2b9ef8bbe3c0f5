// Package executor fans compilation tasks across a bounded worker pool.
// Tasks are independent: there are no ordering guarantees among completions,
// a task's timeout never aborts its siblings, and the only state shared
// between workers is the progress counter.
package executor
