// Package report turns the accumulated update results into a
// human-readable summary. It has no side effects on runtime state.
package report

import (
	"fmt"
	"io"

	"github.com/sycured/podhawk/internal/podman"
	"github.com/sycured/podhawk/internal/updater"
	"github.com/sycured/podhawk/pkg/util"
)

// Summary holds the outcome counts of one update pass
type Summary struct {
	Updated   int
	Unchanged int
	Skipped   int
	Failed    int
	Total     int
}

// Summarize counts outcomes across all results
func Summarize(results []updater.Result) Summary {
	summary := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Outcome {
		case updater.OutcomeUpdated:
			summary.Updated++
		case updater.OutcomeUnchanged:
			summary.Unchanged++
		case updater.OutcomeSkipped:
			summary.Skipped++
		case updater.OutcomeFailed:
			summary.Failed++
		}
	}
	return summary
}

// Render writes one line per container plus a totals footer
func Render(w io.Writer, results []updater.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No running containers found")
		return
	}

	fmt.Fprintln(w, "Update summary:")
	for _, r := range results {
		line := fmt.Sprintf("  %-24s %-40s %s", r.Record.Name, r.Record.Image, r.Outcome)

		switch r.Outcome {
		case updater.OutcomeUpdated:
			line += fmt.Sprintf(" (%s -> %s)",
				util.ShortID(r.Record.Digest.Encoded()), util.ShortID(r.NewDigest.Encoded()))
			if r.Health == podman.HealthUnhealthy {
				line += " [unhealthy]"
			}
		case updater.OutcomeSkipped:
			line += fmt.Sprintf(" (%s)", r.Reason)
		case updater.OutcomeFailed:
			line += fmt.Sprintf(": %v", r.Err)
		}

		fmt.Fprintln(w, line)
	}

	summary := Summarize(results)
	fmt.Fprintf(w, "Totals: %d updated, %d unchanged, %d skipped, %d failed (%d containers)\n",
		summary.Updated, summary.Unchanged, summary.Skipped, summary.Failed, summary.Total)
}
