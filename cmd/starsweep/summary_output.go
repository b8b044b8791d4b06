package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"starsweep/internal/cleanup"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// printSummary renders the run outcome table and counters. The summary is
// always printed, including for runs where every item failed.
func printSummary(out io.Writer, summary *cleanup.Summary) {
	headline := fmt.Sprintf("Run %s", summary.RunID)
	if summary.DryRun {
		headline += " (dry run)"
	}
	if shouldColorize(out) {
		headline = ansiBold + headline + ansiReset
	}
	fmt.Fprintln(out, headline)

	if len(summary.Results) == 0 {
		fmt.Fprintln(out, "No media records to evaluate")
		return
	}

	rows := make([][]string, 0, len(summary.Results))
	for _, res := range summary.Results {
		rows = append(rows, []string{
			res.Title,
			string(res.Kind),
			formatScore(res.Score),
			string(res.Outcome),
			res.Reason,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"TITLE", "KIND", "SCORE", "OUTCOME", "REASON"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))

	counts := []string{
		fmt.Sprintf("%d processed", summary.Processed),
		fmt.Sprintf("%d deleted", summary.Deleted()),
		fmt.Sprintf("%d would delete", summary.WouldDelete()),
		fmt.Sprintf("%d kept", summary.Kept()),
		fmt.Sprintf("%d warned", summary.Warned()),
		fmt.Sprintf("%d failed", summary.Failed()),
	}
	fmt.Fprintln(out, strings.Join(counts, ", "))
}

func formatScore(score float64) string {
	if score == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", score)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
