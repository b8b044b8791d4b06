package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeServices()
	c.normalizeCleanup()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeServices() {
	c.Tautulli.URL = trimBaseURL(c.Tautulli.URL)
	c.Tautulli.APIKey = strings.TrimSpace(c.Tautulli.APIKey)
	if c.Tautulli.HistoryLength <= 0 {
		c.Tautulli.HistoryLength = defaultHistoryLength
	}
	if c.Tautulli.TimeoutSeconds <= 0 {
		c.Tautulli.TimeoutSeconds = defaultTautulliTimeout
	}

	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
	c.Plex.ServerURL = trimBaseURL(c.Plex.ServerURL)
	c.Plex.CommunityURL = strings.TrimSpace(c.Plex.CommunityURL)
	if c.Plex.CommunityURL == "" {
		c.Plex.CommunityURL = defaultCommunityURL
	}
	if c.Plex.TimeoutSeconds <= 0 {
		c.Plex.TimeoutSeconds = defaultPlexTimeout
	}

	c.Radarr.URL = trimBaseURL(c.Radarr.URL)
	c.Radarr.APIKey = strings.TrimSpace(c.Radarr.APIKey)
	if c.Radarr.LookupTimeoutSeconds <= 0 {
		c.Radarr.LookupTimeoutSeconds = defaultLookupTimeout
	}
	if c.Radarr.DeleteTimeoutSeconds <= 0 {
		c.Radarr.DeleteTimeoutSeconds = defaultDeleteTimeout
	}

	c.Sonarr.URL = trimBaseURL(c.Sonarr.URL)
	c.Sonarr.APIKey = strings.TrimSpace(c.Sonarr.APIKey)
	if c.Sonarr.LookupTimeoutSeconds <= 0 {
		c.Sonarr.LookupTimeoutSeconds = defaultLookupTimeout
	}
	if c.Sonarr.DeleteTimeoutSeconds <= 0 {
		c.Sonarr.DeleteTimeoutSeconds = defaultDeleteTimeout
	}

	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeCleanup() {
	c.Cleanup.RatingMode = strings.ToLower(strings.TrimSpace(c.Cleanup.RatingMode))
	if c.Cleanup.RatingMode == "" {
		c.Cleanup.RatingMode = defaultRatingMode
	}
	c.Cleanup.RatingSource = strings.ToLower(strings.TrimSpace(c.Cleanup.RatingSource))
	if c.Cleanup.RatingSource == "" {
		c.Cleanup.RatingSource = defaultRatingSource
	}
	c.Cleanup.SeriesWatchMode = strings.ToLower(strings.TrimSpace(c.Cleanup.SeriesWatchMode))
	if c.Cleanup.SeriesWatchMode == "" {
		c.Cleanup.SeriesWatchMode = defaultSeriesWatchMode
	}

	cleaned := make([]string, 0, len(c.Cleanup.ExcludedLibraries))
	for _, name := range c.Cleanup.ExcludedLibraries {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	c.Cleanup.ExcludedLibraries = cleaned

	c.Schedule.RunAt = strings.TrimSpace(c.Schedule.RunAt)
	if c.Schedule.RunAt == "" {
		c.Schedule.RunAt = defaultRunAt
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimBaseURL(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), "/")
}
