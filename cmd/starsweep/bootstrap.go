package main

import (
	"fmt"
	"log/slog"
	"time"

	"starsweep/internal/cleanup"
	"starsweep/internal/config"
	"starsweep/internal/notifications"
	"starsweep/internal/ratings"
	"starsweep/internal/runlog"
	"starsweep/internal/services/plex"
	"starsweep/internal/services/radarr"
	"starsweep/internal/services/sonarr"
	"starsweep/internal/services/tautulli"
)

// buildEngine wires every collaborator the engine needs from configuration.
// The returned closer releases the run-log store when archiving is enabled.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*cleanup.Engine, func(), error) {
	source := tautulli.New(cfg.Tautulli.URL, cfg.Tautulli.APIKey,
		time.Duration(cfg.Tautulli.TimeoutSeconds)*time.Second)
	plexClient := plex.New(cfg.Plex.ServerURL, cfg.Plex.CommunityURL, cfg.Plex.Token,
		time.Duration(cfg.Plex.TimeoutSeconds)*time.Second)

	var ratingSource ratings.Source
	switch cfg.Cleanup.RatingSource {
	case config.RatingSourcePersonal:
		ratingSource = ratings.NewPersonalSource(plexClient)
	case config.RatingSourceHistory:
		ratingSource = ratings.NewHistorySource()
	default:
		ratingSource = ratings.NewCommunitySource(plexClient)
	}

	var completeness cleanup.Completeness
	if cfg.Cleanup.SeriesWatchMode == config.SeriesWatchFull {
		completeness = plexClient
	}

	var movies cleanup.MovieManager
	if cfg.Radarr.URL != "" {
		movies = radarr.New(cfg.Radarr.URL, cfg.Radarr.APIKey,
			time.Duration(cfg.Radarr.LookupTimeoutSeconds)*time.Second,
			time.Duration(cfg.Radarr.DeleteTimeoutSeconds)*time.Second)
	}
	var series cleanup.SeriesManager
	if cfg.Sonarr.URL != "" {
		series = sonarr.New(cfg.Sonarr.URL, cfg.Sonarr.APIKey,
			time.Duration(cfg.Sonarr.LookupTimeoutSeconds)*time.Second,
			time.Duration(cfg.Sonarr.DeleteTimeoutSeconds)*time.Second)
	}

	closer := func() {}
	var recorder cleanup.Recorder
	if cfg.RunLog.Enabled {
		store, err := runlog.Open(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open run log: %w", err)
		}
		recorder = store
		closer = func() {
			if err := store.Close(); err != nil {
				logger.Warn("close run log", "error", err)
			}
		}
	}

	engine := cleanup.NewEngine(cleanup.Params{
		Config:       cfg,
		Source:       source,
		RatingSource: ratingSource,
		Completeness: completeness,
		Movies:       movies,
		Series:       series,
		Notifier:     notifications.NewService(cfg),
		Recorder:     recorder,
		Logger:       logger,
	})
	return engine, closer, nil
}
