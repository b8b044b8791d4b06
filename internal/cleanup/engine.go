package cleanup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"starsweep/internal/config"
	"starsweep/internal/history"
	"starsweep/internal/notifications"
	"starsweep/internal/ratings"
)

// HistorySource supplies the raw watch-event stream. The Tautulli client
// satisfies this.
type HistorySource interface {
	History(ctx context.Context, length int) ([]history.WatchEvent, error)
}

// Recorder archives run summaries. The runlog store satisfies this; a nil
// recorder disables archiving.
type Recorder interface {
	RecordRun(ctx context.Context, summary *Summary) error
}

// Params wires the engine's collaborators. Config, Source, and RatingSource
// are required; the rest degrade gracefully when nil.
type Params struct {
	Config       *config.Config
	Source       HistorySource
	RatingSource ratings.Source
	Completeness Completeness
	Movies       MovieManager
	Series       SeriesManager
	Notifier     notifications.Service
	Recorder     Recorder
	Logger       *slog.Logger
}

// Engine runs one full cleanup pass: fetch, aggregate, evaluate, rate, and
// dispatch, in a single goroutine. Item-level failures are recorded and the
// run continues; only a history fetch failure aborts the run.
type Engine struct {
	cfg          *config.Config
	source       HistorySource
	aggregator   *history.Aggregator
	evaluator    *Evaluator
	ratingSource ratings.Source
	dispatcher   *Dispatcher
	twoPhase     *TwoPhase
	notifier     notifications.Service
	recorder     Recorder
	logger       *slog.Logger
}

func NewEngine(params Params) *Engine {
	cfg := params.Config
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	var twoPhase *TwoPhase
	if cfg.TwoPhaseEnabled() {
		twoPhase = NewTwoPhase(cfg.Cleanup.WarnDays, cfg.Cleanup.DeleteDays)
	}

	return &Engine{
		cfg:          cfg,
		source:       params.Source,
		aggregator:   history.NewAggregator(cfg.Cleanup.ExcludedLibraries, cfg.Cleanup.SeriesWatchMode),
		evaluator:    NewEvaluator(cfg.Cleanup.DaysDelay, cfg.Cleanup.SeriesWatchMode, params.Completeness),
		ratingSource: params.RatingSource,
		dispatcher:   NewDispatcher(params.Movies, params.Series, cfg.Cleanup.DryRun, logger),
		twoPhase:     twoPhase,
		notifier:     notifier,
		recorder:     params.Recorder,
		logger:       logger,
	}
}

// Run executes one cleanup pass against the injected clock. The returned
// summary is complete even when individual items failed.
func (e *Engine) Run(ctx context.Context, now time.Time) (*Summary, error) {
	started := time.Now()
	summary := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: now,
		DryRun:    e.cfg.Cleanup.DryRun,
	}
	logger := e.logger.With("run_id", summary.RunID)
	logger.Info("cleanup run started", "dry_run", summary.DryRun)

	events, err := e.source.History(ctx, e.cfg.Tautulli.HistoryLength)
	if err != nil {
		logger.Error("history fetch failed", "error", err)
		if notifyErr := e.notifier.NotifyRunFailed(ctx, err); notifyErr != nil {
			logger.Warn("run-failed notification not delivered", "error", notifyErr)
		}
		return nil, err
	}

	records := history.SortedByLastWatched(e.aggregator.Aggregate(events))
	logger.Info("history aggregated", "events", len(events), "records", len(records))

	var warnItems []notifications.WarnItem
	modeWarned := false
	skipped := 0
	for _, rec := range records {
		// Records still inside the grace period are invisible this run: no
		// lookups, no result row. The two-phase windows own all age decisions
		// when enabled.
		if e.twoPhase == nil && !e.evaluator.OldEnough(rec, now) {
			skipped++
			continue
		}
		result := e.evaluate(ctx, logger, rec, now, &warnItems, &modeWarned)
		summary.Results = append(summary.Results, result)
	}
	summary.Processed = len(summary.Results)
	if skipped > 0 {
		logger.Debug("records within grace period skipped", "skipped", skipped)
	}

	if len(warnItems) > 0 {
		if err := e.notifier.NotifyWarnDigest(ctx, warnItems); err != nil {
			logger.Warn("warn digest not delivered", "error", err)
		}
	}

	// The summary's timeline is anchored to the injected clock; only the
	// elapsed duration comes from the wall clock.
	summary.FinishedAt = now.Add(time.Since(started))
	if err := e.notifier.NotifyRunCompleted(ctx, summary.Stats()); err != nil {
		logger.Warn("run-completed notification not delivered", "error", err)
	}
	if e.recorder != nil {
		if err := e.recorder.RecordRun(ctx, summary); err != nil {
			logger.Warn("run not archived", "error", err)
		}
	}

	logger.Info("cleanup run finished",
		"deleted", summary.Deleted(),
		"would_delete", summary.WouldDelete(),
		"kept", summary.Kept(),
		"warned", summary.Warned(),
		"failed", summary.Failed())
	return summary, nil
}

func (e *Engine) evaluate(ctx context.Context, logger *slog.Logger, rec *history.Record, now time.Time, warnItems *[]notifications.WarnItem, modeWarned *bool) ActionResult {
	result := ActionResult{Title: rec.Title, Kind: rec.Kind, Key: rec.Key}

	complete, err := e.evaluator.SeriesComplete(ctx, rec)
	if err != nil {
		logger.Warn("completeness check failed", "title", rec.Title, "error", err)
		result.Outcome, result.Reason = OutcomeFailed, "completeness check: "+err.Error()
		return result
	}
	if !complete {
		result.Outcome, result.Reason = OutcomeKept, "series not fully watched"
		return result
	}

	values, err := e.ratingSource.Ratings(ctx, rec)
	switch {
	case errors.Is(err, ratings.ErrNoData):
		result.Outcome, result.Reason = OutcomeKept, "no ratings"
		return result
	case err != nil:
		logger.Warn("rating lookup failed", "title", rec.Title, "source", e.ratingSource.Name(), "error", err)
		result.Outcome, result.Reason = OutcomeFailed, "rating lookup: "+err.Error()
		return result
	}

	verdict := ratings.Decide(values, e.cfg.Cleanup.RatingThreshold, e.cfg.Cleanup.RatingMode)
	result.Score = verdict.Score
	if verdict.ModeWarning != "" && !*modeWarned {
		logger.Warn(verdict.ModeWarning, "rating_mode", e.cfg.Cleanup.RatingMode)
		*modeWarned = true
	}
	if !verdict.Delete {
		result.Outcome, result.Reason = OutcomeKept, verdict.Reason
		return result
	}

	if e.twoPhase != nil {
		switch e.twoPhase.Classify(rec, now) {
		case BucketNone:
			result.Outcome, result.Reason = OutcomeKept, "not yet due"
			return result
		case BucketWarn:
			*warnItems = append(*warnItems, notifications.WarnItem{
				Title:    rec.Title,
				Kind:     string(rec.Kind),
				Score:    verdict.Score,
				DaysLeft: e.twoPhase.DaysLeft(rec, now),
			})
			result.Outcome, result.Reason = OutcomeWarned, "in warning window"
			return result
		}
	}

	result.Outcome, result.Reason = e.dispatcher.Dispatch(ctx, rec)
	return result
}
