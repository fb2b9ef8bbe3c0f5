package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/mobench/internal/model"
)

// failureExcerptLength bounds the error text shown per failure in the human
// summary; the full text lives in the JSON report.
const failureExcerptLength = 200

// RenderSummary writes the human-readable run summary followed by the first
// showFailures failed results.
func (s *RunStatistics) RenderSummary(w io.Writer, results []model.Result, showFailures int) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "                  COMPILATION SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Models:     %d\n", s.TotalModels)
	fmt.Fprintf(w, "Passed:           %d (%.1f%%)\n", s.Passed, s.PassRate())
	fmt.Fprintf(w, "Failed:           %d (%.1f%%)\n", s.Failed, 100.0-s.PassRate())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Error Breakdown:")
	fmt.Fprintf(w, "  Parse errors:   %d\n", s.ParseErrors)
	fmt.Fprintf(w, "  Flatten errors: %d\n", s.FlattenErrors)
	fmt.Fprintf(w, "  DAE errors:     %d\n", s.DAEErrors)
	fmt.Fprintf(w, "  Balance errors: %d\n", s.BalanceErrors)
	fmt.Fprintf(w, "  Other errors:   %d\n", s.OtherErrors)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Time:       %.2fs\n", s.TotalTime.Seconds())
	fmt.Fprintln(w, rule)

	if showFailures <= 0 {
		return
	}

	var failures []model.Result
	for _, r := range results {
		if !r.Success {
			failures = append(failures, r)
			if len(failures) == showFailures {
				break
			}
		}
	}
	if len(failures) == 0 {
		return
	}

	fmt.Fprintf(w, "\nFirst %d failures:\n", len(failures))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, f := range failures {
		fmt.Fprintf(w, "Model: %s\n", f.ModelName)
		fmt.Fprintf(w, "File:  %s\n", f.FilePath)
		if f.ErrorMessage != "" {
			msg := f.ErrorMessage
			if len(msg) > failureExcerptLength {
				msg = msg[:failureExcerptLength] + "..."
			}
			fmt.Fprintf(w, "Error: %s\n", msg)
		}
		fmt.Fprintln(w)
	}
}
