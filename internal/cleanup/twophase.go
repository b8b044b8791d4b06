package cleanup

import (
	"time"

	"starsweep/internal/history"
)

// Bucket classifies a delete-worthy record by age within the two-phase
// windows. Exactly one bucket applies per record per run.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketWarn
	BucketDelete
)

// TwoPhase implements the warn-then-delete windows. Config validation
// guarantees warnDays < deleteDays before this is constructed.
type TwoPhase struct {
	warnDays   int
	deleteDays int
}

func NewTwoPhase(warnDays, deleteDays int) *TwoPhase {
	return &TwoPhase{warnDays: warnDays, deleteDays: deleteDays}
}

// Classify places an already delete-worthy record into exactly one bucket.
// Both window boundaries are inclusive on their lower edge.
func (p *TwoPhase) Classify(rec *history.Record, now time.Time) Bucket {
	age := now.Sub(rec.LastWatched)
	switch {
	case age >= time.Duration(p.deleteDays)*24*time.Hour:
		return BucketDelete
	case age >= time.Duration(p.warnDays)*24*time.Hour:
		return BucketWarn
	default:
		return BucketNone
	}
}

// DaysLeft reports whole days until the record ages into the delete bucket,
// never less than zero. Used for the warning digest.
func (p *TwoPhase) DaysLeft(rec *history.Record, now time.Time) int {
	deadline := rec.LastWatched.Add(time.Duration(p.deleteDays) * 24 * time.Hour)
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}
