package task

// Task represents a single compilation unit that is fully prepared for
// execution. It is the output of corpus discovery and the input for the
// executor. A task is created exactly once and consumed exactly once; it is
// never re-enqueued.
type Task struct {
	// UnitPath is the absolute path to the source unit on disk.
	UnitPath string

	// Identifier is the fully-qualified dotted name passed to the compiler,
	// e.g. "Modelica.Math.sin".
	Identifier string
}
