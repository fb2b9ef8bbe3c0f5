package compiler

import "encoding/json"

// structurePayload mirrors the documented keys of the compiler's
// machine-readable success output.
type structurePayload struct {
	Structure *struct {
		NEquations int `json:"n_equations"`
		NStates    int `json:"n_states"`
		NAlgebraic int `json:"n_algebraic"`
	} `json:"structure"`
}

// ParseBalance inspects a successful invocation's stdout for structural
// counts and reports whether the model is balanced, i.e. the equation count
// equals the unknown count (states plus algebraic variables). The result is
// nil when the payload is not valid JSON or carries no structure section:
// absence of counts leaves balance unknown, not false.
//
// Balance is a necessary, not sufficient, condition for a well-posed system;
// callers must treat it as a structural heuristic, not a correctness proof.
func ParseBalance(stdout string) *bool {
	var payload structurePayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		return nil
	}
	if payload.Structure == nil {
		return nil
	}
	balanced := payload.Structure.NEquations == payload.Structure.NStates+payload.Structure.NAlgebraic
	return &balanced
}
