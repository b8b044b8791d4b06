package main

import (
	"strings"
	"testing"

	"starsweep/internal/cleanup"
	"starsweep/internal/history"
)

func TestPrintSummaryRendersTableAndCounts(t *testing.T) {
	summary := &cleanup.Summary{
		RunID:     "run-1",
		DryRun:    true,
		Processed: 2,
		Results: []cleanup.ActionResult{
			{Title: "Madame Web", Kind: history.KindMovie, Score: 3.5, Outcome: cleanup.OutcomeWouldDelete, Reason: "dry run"},
			{Title: "Heat", Kind: history.KindMovie, Score: 9.0, Outcome: cleanup.OutcomeKept, Reason: "average 9.00 at or above threshold 6.5"},
		},
	}

	var buf strings.Builder
	printSummary(&buf, summary)
	out := buf.String()

	if !strings.Contains(out, "Run run-1 (dry run)") {
		t.Fatalf("missing headline in output:\n%s", out)
	}
	if !strings.Contains(out, "Madame Web") || !strings.Contains(out, "would-delete") {
		t.Fatalf("missing result row in output:\n%s", out)
	}
	if !strings.Contains(out, "2 processed, 0 deleted, 1 would delete, 1 kept, 0 warned, 0 failed") {
		t.Fatalf("missing counts line in output:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("non-terminal writer must not receive ANSI codes")
	}
}

func TestPrintSummaryEmptyRun(t *testing.T) {
	var buf strings.Builder
	printSummary(&buf, &cleanup.Summary{RunID: "run-2"})
	if !strings.Contains(buf.String(), "No media records to evaluate") {
		t.Fatalf("empty run must still print a summary, got:\n%s", buf.String())
	}
}

func TestFormatScore(t *testing.T) {
	if got := formatScore(0); got != "-" {
		t.Fatalf("zero score must render as dash, got %q", got)
	}
	if got := formatScore(6.55); got != "6.5" {
		t.Fatalf("expected one decimal, got %q", got)
	}
}
