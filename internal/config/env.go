package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// envOverrides mirrors the environment surface of the original deployment.
// Pointer fields stay nil when the variable is unset, so only explicitly
// provided values override the file.
type envOverrides struct {
	TautulliURL       *string  `envconfig:"TAUTULLI_URL"`
	TautulliAPIKey    *string  `envconfig:"TAUTULLI_API_KEY"`
	PlexToken         *string  `envconfig:"PLEX_TOKEN"`
	PlexServerURL     *string  `envconfig:"PLEX_URL"`
	RadarrURL         *string  `envconfig:"RADARR_URL"`
	RadarrAPIKey      *string  `envconfig:"RADARR_API_KEY"`
	SonarrURL         *string  `envconfig:"SONARR_URL"`
	SonarrAPIKey      *string  `envconfig:"SONARR_API_KEY"`
	DryRun            *bool    `envconfig:"DRY_RUN"`
	DaysDelay         *int     `envconfig:"DAYS_DELAY"`
	WarnDays          *int     `envconfig:"WARN_DAYS"`
	DeleteDays        *int     `envconfig:"DELETE_DAYS"`
	RatingThreshold   *float64 `envconfig:"RATING_THRESHOLD"`
	RatingMode        *string  `envconfig:"RATING_MODE"`
	RatingSource      *string  `envconfig:"RATING_SOURCE"`
	SeriesWatchMode   *string  `envconfig:"SERIES_WATCH_MODE"`
	ExcludedLibraries *string  `envconfig:"EXCLUDED_LIBRARIES"`
	RunAt             *string  `envconfig:"RUN_AT"`
	NtfyTopic         *string  `envconfig:"NTFY_TOPIC"`
}

func (c *Config) applyEnvOverrides() error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("read environment overrides: %w", err)
	}

	setString(&c.Tautulli.URL, env.TautulliURL)
	setString(&c.Tautulli.APIKey, env.TautulliAPIKey)
	setString(&c.Plex.Token, env.PlexToken)
	setString(&c.Plex.ServerURL, env.PlexServerURL)
	setString(&c.Radarr.URL, env.RadarrURL)
	setString(&c.Radarr.APIKey, env.RadarrAPIKey)
	setString(&c.Sonarr.URL, env.SonarrURL)
	setString(&c.Sonarr.APIKey, env.SonarrAPIKey)
	setString(&c.Cleanup.RatingMode, env.RatingMode)
	setString(&c.Cleanup.RatingSource, env.RatingSource)
	setString(&c.Cleanup.SeriesWatchMode, env.SeriesWatchMode)
	setString(&c.Schedule.RunAt, env.RunAt)
	setString(&c.Notifications.NtfyTopic, env.NtfyTopic)

	if env.DryRun != nil {
		c.Cleanup.DryRun = *env.DryRun
	}
	if env.DaysDelay != nil {
		c.Cleanup.DaysDelay = *env.DaysDelay
	}
	if env.WarnDays != nil {
		c.Cleanup.WarnDays = *env.WarnDays
	}
	if env.DeleteDays != nil {
		c.Cleanup.DeleteDays = *env.DeleteDays
	}
	if env.RatingThreshold != nil {
		c.Cleanup.RatingThreshold = *env.RatingThreshold
	}
	if env.ExcludedLibraries != nil {
		c.Cleanup.ExcludedLibraries = splitCommaList(*env.ExcludedLibraries)
	}
	return nil
}

func setString(dst *string, value *string) {
	if value == nil {
		return
	}
	*dst = strings.TrimSpace(*value)
}

func splitCommaList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
