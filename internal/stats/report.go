package stats

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/mobench/internal/model"
)

// Summary is the scalar section of the serialized report. Field names and
// nesting are part of the external contract for downstream consumers.
type Summary struct {
	RunID         string  `json:"run_id"`
	TotalModels   int     `json:"total_models"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	PassRate      float64 `json:"pass_rate"`
	ParseErrors   int     `json:"parse_errors"`
	FlattenErrors int     `json:"flatten_errors"`
	DAEErrors     int     `json:"dae_errors"`
	BalanceErrors int     `json:"balance_errors"`
	OtherErrors   int     `json:"other_errors"`
	TotalTimeS    float64 `json:"total_time_s"`
}

// Report is the full structured output of a run: the summary, the bounded
// failure samples keyed by category, and every per-unit result in order.
type Report struct {
	Summary          Summary             `json:"summary"`
	ErrorsByCategory map[string][]Sample `json:"errors_by_category"`
	Results          []model.Result      `json:"results"`
}

// Report assembles the serializable document for this run.
func (s *RunStatistics) Report(results []model.Result) *Report {
	return &Report{
		Summary: Summary{
			RunID:         s.RunID,
			TotalModels:   s.TotalModels,
			Passed:        s.Passed,
			Failed:        s.Failed,
			PassRate:      s.PassRate(),
			ParseErrors:   s.ParseErrors,
			FlattenErrors: s.FlattenErrors,
			DAEErrors:     s.DAEErrors,
			BalanceErrors: s.BalanceErrors,
			OtherErrors:   s.OtherErrors,
			TotalTimeS:    s.TotalTime.Seconds(),
		},
		ErrorsByCategory: s.ErrorsByCategory,
		Results:          results,
	}
}

// WriteReport serializes the report as indented JSON at the given path.
func WriteReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}
