// Package model holds the domain types shared between the executor and the
// aggregator.
package model

// Result is the outcome of one compilation task. It is created by the
// executor, receives its error category exactly once during aggregation, and
// is immutable afterwards. The JSON field names are part of the external
// report contract.
type Result struct {
	// ModelName is the fully-qualified identifier that was compiled.
	ModelName string `json:"model_name"`

	// FilePath is the source unit the identifier was resolved from.
	FilePath string `json:"file_path"`

	// Success reports whether the compiler exited zero.
	Success bool `json:"success"`

	// ErrorMessage carries the compiler's failure text, empty on success.
	ErrorMessage string `json:"error_message,omitempty"`

	// ErrorCategory is the taxonomy category of the failure. The executor
	// assigns "timeout" and "internal_error" directly; all other failures
	// are categorized during aggregation.
	ErrorCategory string `json:"error_category,omitempty"`

	// CompileTimeMs is the wall-clock time of the compiler invocation.
	CompileTimeMs float64 `json:"compile_time_ms"`

	// IsBalanced is set only when the compiler reported structural counts.
	// It is a structural heuristic (equations == unknowns is necessary but
	// not sufficient for a well-posed system), never a correctness proof.
	IsBalanced *bool `json:"is_balanced,omitempty"`
}
