package cleanup_test

import (
	"testing"
	"time"

	"starsweep/internal/cleanup"
	"starsweep/internal/history"
)

func recordAgedDays(now time.Time, days int) *history.Record {
	return &history.Record{LastWatched: now.Add(-time.Duration(days) * 24 * time.Hour)}
}

func TestTwoPhaseClassifyBoundaries(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	policy := cleanup.NewTwoPhase(30, 37)

	tests := []struct {
		ageDays int
		want    cleanup.Bucket
	}{
		{29, cleanup.BucketNone},
		{30, cleanup.BucketWarn}, // warn boundary is inclusive
		{32, cleanup.BucketWarn},
		{36, cleanup.BucketWarn},
		{37, cleanup.BucketDelete}, // delete boundary is inclusive
		{38, cleanup.BucketDelete},
	}
	for _, tc := range tests {
		if got := policy.Classify(recordAgedDays(now, tc.ageDays), now); got != tc.want {
			t.Errorf("age %d days: got bucket %v, want %v", tc.ageDays, got, tc.want)
		}
	}
}

func TestTwoPhaseDaysLeft(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	policy := cleanup.NewTwoPhase(30, 37)

	if got := policy.DaysLeft(recordAgedDays(now, 32), now); got != 5 {
		t.Fatalf("expected 5 days left at age 32, got %d", got)
	}
	if got := policy.DaysLeft(recordAgedDays(now, 40), now); got != 0 {
		t.Fatalf("overdue items must report 0 days left, got %d", got)
	}

	// Partial days round up so the digest never understates the deadline.
	rec := &history.Record{LastWatched: now.Add(-36*24*time.Hour - 12*time.Hour)}
	if got := policy.DaysLeft(rec, now); got != 1 {
		t.Fatalf("expected half a day to round up to 1, got %d", got)
	}
}
