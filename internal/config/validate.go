package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rating source strategies. The strategy is fixed per deployment; call sites
// never sniff the upstream payload shape.
const (
	RatingSourceCommunity = "community"
	RatingSourcePersonal  = "personal"
	RatingSourceHistory   = "history"
)

// SeriesWatchFull requires every episode of a series to have been watched
// before the series is eligible. Any other value is intentionally permissive.
const SeriesWatchFull = "full"

// Validate ensures the configuration is usable. Violations here are fatal at
// startup; no partial run is attempted.
func (c *Config) Validate() error {
	if err := c.validateTautulli(); err != nil {
		return err
	}
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validateCleanup(); err != nil {
		return err
	}
	if err := c.validateSchedule(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTautulli() error {
	if c.Tautulli.URL == "" {
		return errors.New("tautulli.url is required. Set TAUTULLI_URL or edit the config file (create with 'starsweep config init')")
	}
	if c.Tautulli.APIKey == "" {
		return errors.New("tautulli.api_key is required. Set TAUTULLI_API_KEY or edit the config file")
	}
	return nil
}

func (c *Config) validatePlex() error {
	needsToken := c.Cleanup.RatingSource == RatingSourceCommunity || c.Cleanup.RatingSource == RatingSourcePersonal
	needsServer := c.Cleanup.RatingSource == RatingSourcePersonal || c.Cleanup.SeriesWatchMode == SeriesWatchFull

	if needsServer && c.Plex.ServerURL == "" {
		return fmt.Errorf("plex.server_url is required for rating_source %q or series_watch_mode %q", c.Cleanup.RatingSource, c.Cleanup.SeriesWatchMode)
	}
	if (needsToken || needsServer) && c.Plex.Token == "" {
		return errors.New("plex.token is required. Set PLEX_TOKEN or edit the config file")
	}
	return nil
}

func (c *Config) validateCleanup() error {
	if c.Cleanup.DaysDelay < 0 {
		return errors.New("cleanup.days_delay must not be negative")
	}
	if c.Cleanup.RatingThreshold <= 0 || c.Cleanup.RatingThreshold > 10 {
		return errors.New("cleanup.rating_threshold must be within (0, 10] on the 10-point scale")
	}
	switch c.Cleanup.RatingSource {
	case RatingSourceCommunity, RatingSourcePersonal, RatingSourceHistory:
	default:
		return fmt.Errorf("cleanup.rating_source %q is not one of community, personal, history", c.Cleanup.RatingSource)
	}
	if c.TwoPhaseEnabled() {
		if c.Cleanup.WarnDays < 0 {
			return errors.New("cleanup.warn_days must not be negative")
		}
		if c.Cleanup.WarnDays >= c.Cleanup.DeleteDays {
			return fmt.Errorf("cleanup.warn_days (%d) must be strictly less than cleanup.delete_days (%d)", c.Cleanup.WarnDays, c.Cleanup.DeleteDays)
		}
	}
	return nil
}

func (c *Config) validateSchedule() error {
	hour, minute, err := parseClock(c.Schedule.RunAt)
	if err != nil {
		return fmt.Errorf("schedule.run_at: %w", err)
	}
	c.Schedule.runAtHour = hour
	c.Schedule.runAtMinute = minute
	return nil
}

func parseClock(value string) (int, int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q is not a HH:MM time", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%q has an invalid hour", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%q has an invalid minute", value)
	}
	return hour, minute, nil
}
