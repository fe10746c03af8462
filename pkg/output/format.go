// Package output provides utilities for formatting and displaying scoring results.
package output

import (
	"fmt"

	"github.com/iwvelando/travel-reimburse/internal/batch"
	"github.com/iwvelando/travel-reimburse/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(summary batch.Summary, fixtures []batch.Fixture) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Scoring results ---\n")
	_, _ = p.Printf("Cases:            %d\n", summary.Cases)
	_, _ = p.Printf("Exact matches:    %d (%s)\n", summary.ExactMatches, percentage(summary.ExactMatches, summary.Cases))
	_, _ = p.Printf("Close matches:    %d (%s)\n", summary.CloseMatches, percentage(summary.CloseMatches, summary.Cases))
	fmt.Printf("Mean abs error:   %s\n", format.Currency(summary.MeanAbsoluteError))
	if summary.MaxErrorCase >= 0 && summary.MaxErrorCase < len(fixtures) {
		worst := fixtures[summary.MaxErrorCase]
		fmt.Printf("Max error:        %s (case %d: %d days, %.0f miles, %s receipts, expected %s)\n",
			format.Currency(summary.MaxError),
			summary.MaxErrorCase,
			worst.Input.TripDurationDays,
			worst.Input.MilesTraveled,
			format.Currency(worst.Input.TotalReceiptsAmount),
			format.Currency(worst.ExpectedOutput),
		)
	} else {
		fmt.Printf("Max error:        %s\n", format.Currency(summary.MaxError))
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(summary batch.Summary) {
	fmt.Printf("\"cases\",\"exact_matches\",\"close_matches\",\"mean_abs_error\",\"max_error\",\"max_error_case\"\n")
	fmt.Printf("\"%d\",\"%d\",\"%d\",\"%.2f\",\"%.2f\",\"%d\"\n",
		summary.Cases,
		summary.ExactMatches,
		summary.CloseMatches,
		summary.MeanAbsoluteError,
		summary.MaxError,
		summary.MaxErrorCase,
	)
}

func percentage(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(total))
}
