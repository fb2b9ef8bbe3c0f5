package stats

import (
	"time"

	"github.com/vk/mobench/internal/classify"
	"github.com/vk/mobench/internal/model"
)

const (
	// maxSampleLength bounds a stored error message so one pathological
	// failure cannot grow the report without limit.
	maxSampleLength = 500

	// maxCategorySamples bounds the number of samples kept per category.
	maxCategorySamples = 100
)

// Sample is one bounded (identifier, truncated error) pair kept per category
// for later inspection. The JSON field names are part of the external report
// contract.
type Sample struct {
	Model string `json:"model"`
	Error string `json:"error"`
}

// RunStatistics accumulates the outcome of one harness run. It is owned by a
// single goroutine for the duration of the run and is not safe for
// concurrent mutation.
type RunStatistics struct {
	RunID       string
	TotalModels int
	Passed      int
	Failed      int

	ParseErrors   int
	FlattenErrors int
	DAEErrors     int
	BalanceErrors int
	OtherErrors   int

	TotalTime time.Duration

	// ErrorsByCategory keeps bounded failure samples keyed by category.
	ErrorsByCategory map[string][]Sample
}

// New creates an empty accumulator for the given run.
func New(runID string) *RunStatistics {
	return &RunStatistics{
		RunID:            runID,
		ErrorsByCategory: make(map[string][]Sample),
	}
}

// Add folds one result into the statistics. Failed results without a
// category receive one from the classifier here, exactly once; the
// executor-assigned "timeout" and "internal_error" categories are kept
// as-is.
func (s *RunStatistics) Add(r *model.Result) {
	s.TotalModels++
	if r.Success {
		s.Passed++
		return
	}

	s.Failed++
	if r.ErrorCategory == "" {
		r.ErrorCategory = classify.Categorize(r.ErrorMessage)
	}

	switch r.ErrorCategory {
	case classify.CategoryParse:
		s.ParseErrors++
	case classify.CategoryFlatten:
		s.FlattenErrors++
	case classify.CategoryDAE:
		s.DAEErrors++
	case classify.CategoryBalance:
		s.BalanceErrors++
	case classify.CategoryOther:
		s.OtherErrors++
	}

	if len(s.ErrorsByCategory[r.ErrorCategory]) < maxCategorySamples {
		s.ErrorsByCategory[r.ErrorCategory] = append(s.ErrorsByCategory[r.ErrorCategory], Sample{
			Model: r.ModelName,
			Error: truncate(r.ErrorMessage, maxSampleLength),
		})
	}
}

// Collect folds a whole result set, assigning categories in place so the
// serialized results carry them.
func (s *RunStatistics) Collect(results []model.Result) {
	for i := range results {
		s.Add(&results[i])
	}
}

// Finalize records the total wall-clock time of the run.
func (s *RunStatistics) Finalize(elapsed time.Duration) {
	s.TotalTime = elapsed
}

// PassRate returns the percentage of passed models. It is defined as zero
// for an empty run rather than a division fault.
func (s *RunStatistics) PassRate() float64 {
	if s.TotalModels == 0 {
		return 0.0
	}
	return float64(s.Passed) / float64(s.TotalModels) * 100.0
}

func truncate(msg string, limit int) string {
	if len(msg) <= limit {
		return msg
	}
	return msg[:limit]
}
