package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"starsweep/internal/history"
	"starsweep/internal/services"
)

// MovieManager resolves and deletes movies downstream. The Radarr client
// satisfies this.
type MovieManager interface {
	FindMovie(ctx context.Context, tmdbID string) (int64, error)
	DeleteMovie(ctx context.Context, id int64) error
}

// SeriesManager resolves and deletes series downstream. The Sonarr client
// satisfies this.
type SeriesManager interface {
	FindSeries(ctx context.Context, tvdbID string) (int64, error)
	DeleteSeries(ctx context.Context, id int64) error
}

// Dispatcher routes delete-worthy records to the matching downstream manager
// using the two-step resolve/delete protocol. Failures never abort the run;
// they surface as per-item Failed outcomes.
type Dispatcher struct {
	movies MovieManager
	series SeriesManager
	dryRun bool
	logger *slog.Logger
}

func NewDispatcher(movies MovieManager, series SeriesManager, dryRun bool, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{movies: movies, series: series, dryRun: dryRun, logger: logger}
}

// Dispatch resolves the record downstream and, unless dry-run is enabled,
// issues the delete. A resolve miss means the item is already gone and is
// reported as Failed("not found downstream") without aborting anything.
func (d *Dispatcher) Dispatch(ctx context.Context, rec *history.Record) (Outcome, string) {
	provider, externalID, ok := ParseExternalID(rec.GUID)
	if !ok {
		return OutcomeFailed, fmt.Sprintf("no usable external id in guid %q", rec.GUID)
	}

	switch rec.Kind {
	case history.KindMovie:
		if provider != ProviderTMDB {
			return OutcomeFailed, fmt.Sprintf("movie guid carries %s id, need tmdb", provider)
		}
		return d.dispatchMovie(ctx, rec, externalID)
	case history.KindSeries:
		if provider != ProviderTVDB {
			return OutcomeFailed, fmt.Sprintf("series guid carries %s id, need tvdb", provider)
		}
		return d.dispatchSeries(ctx, rec, externalID)
	default:
		return OutcomeFailed, fmt.Sprintf("unroutable kind %q", rec.Kind)
	}
}

func (d *Dispatcher) dispatchMovie(ctx context.Context, rec *history.Record, tmdbID string) (Outcome, string) {
	if d.movies == nil {
		return OutcomeFailed, "no movie manager configured"
	}
	id, err := d.movies.FindMovie(ctx, tmdbID)
	if err != nil {
		return resolveFailure(err)
	}
	if d.dryRun {
		d.logger.Info("dry run, would delete movie", "title", rec.Title, "radarr_id", id)
		return OutcomeWouldDelete, "dry run"
	}
	if err := d.movies.DeleteMovie(ctx, id); err != nil {
		return OutcomeFailed, err.Error()
	}
	d.logger.Info("deleted movie", "title", rec.Title, "radarr_id", id)
	return OutcomeDeleted, ""
}

func (d *Dispatcher) dispatchSeries(ctx context.Context, rec *history.Record, tvdbID string) (Outcome, string) {
	if d.series == nil {
		return OutcomeFailed, "no series manager configured"
	}
	id, err := d.series.FindSeries(ctx, tvdbID)
	if err != nil {
		return resolveFailure(err)
	}
	if d.dryRun {
		d.logger.Info("dry run, would delete series", "title", rec.Title, "sonarr_id", id)
		return OutcomeWouldDelete, "dry run"
	}
	if err := d.series.DeleteSeries(ctx, id); err != nil {
		return OutcomeFailed, err.Error()
	}
	d.logger.Info("deleted series", "title", rec.Title, "sonarr_id", id)
	return OutcomeDeleted, ""
}

func resolveFailure(err error) (Outcome, string) {
	if errors.Is(err, services.ErrNotFound) {
		return OutcomeFailed, "not found downstream"
	}
	return OutcomeFailed, err.Error()
}
