// Package classify maps raw compiler failure messages onto a fixed error
// taxonomy. Classification is case-insensitive substring matching against an
// ordered keyword table; the first matching row wins, which makes the row
// order a deliberate tie-break (a message mentioning both "parse" and
// "balance" keywords always counts as a parse error).
package classify

import "strings"

// Fixed taxonomy categories.
const (
	CategoryParse   = "parse_errors"
	CategoryFlatten = "flatten_errors"
	CategoryDAE     = "dae_errors"
	CategoryBalance = "balance_errors"
	CategoryOther   = "other_errors"

	// CategoryTimeout and CategoryInternal are assigned directly by the
	// executor and never pass through Categorize.
	CategoryTimeout  = "timeout"
	CategoryInternal = "internal_error"
)

// rule pairs a category with the keywords that select it.
type rule struct {
	category string
	keywords []string
}

// rules is evaluated top-down; keep the order, it is part of the contract.
var rules = []rule{
	{CategoryParse, []string{"parse", "syntax", "unexpected"}},
	{CategoryFlatten, []string{"flatten", "resolve", "undefined"}},
	{CategoryDAE, []string{"dae", "structural"}},
	{CategoryBalance, []string{"balance", "under-determined", "over-determined"}},
}

// Categorize returns the taxonomy category for a raw failure message.
// Messages matching no keyword fall to CategoryOther.
func Categorize(message string) string {
	lowered := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.category
			}
		}
	}
	return CategoryOther
}
