package cleanup

import (
	"context"
	"time"

	"starsweep/internal/config"
	"starsweep/internal/history"
)

// Completeness reports how much of a series has been watched. The Plex client
// satisfies this; tests substitute a stub.
type Completeness interface {
	SeriesWatchedFraction(ctx context.Context, ratingKey string) (float64, error)
}

// Evaluator applies the age and watch-completeness gates that precede any
// rating decision.
type Evaluator struct {
	daysDelay    int
	seriesMode   string
	completeness Completeness
}

// NewEvaluator builds an evaluator. completeness may be nil when the series
// watch mode is permissive.
func NewEvaluator(daysDelay int, seriesMode string, completeness Completeness) *Evaluator {
	return &Evaluator{
		daysDelay:    daysDelay,
		seriesMode:   seriesMode,
		completeness: completeness,
	}
}

// OldEnough applies the inclusive age gate: an item watched exactly daysDelay
// days ago is eligible.
func (e *Evaluator) OldEnough(rec *history.Record, now time.Time) bool {
	age := now.Sub(rec.LastWatched)
	return age >= time.Duration(e.daysDelay)*24*time.Hour
}

// SeriesComplete reports whether the record clears the completeness gate.
// Movies always do. In permissive mode any watched episode qualifies the
// series; in full mode every episode Plex knows about must be watched.
func (e *Evaluator) SeriesComplete(ctx context.Context, rec *history.Record) (bool, error) {
	if rec.Kind != history.KindSeries {
		return true, nil
	}
	if e.seriesMode != config.SeriesWatchFull {
		return true, nil
	}
	if e.completeness == nil {
		return false, nil
	}
	fraction, err := e.completeness.SeriesWatchedFraction(ctx, rec.Key)
	if err != nil {
		return false, err
	}
	return fraction >= 1.0, nil
}
