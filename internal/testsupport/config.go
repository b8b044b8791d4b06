package testsupport

import (
	"path/filepath"
	"testing"

	"starsweep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults the required connection fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Tautulli.URL = "http://tautulli.test"
	cfg.Tautulli.APIKey = "test"
	cfg.Plex.Token = "test-token"
	cfg.Plex.ServerURL = "http://plex.test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("create test directories: %v", err)
	}
	return &cfg
}

// WithLiveRun disables dry-run on the test config.
func WithLiveRun() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cleanup.DryRun = false
	}
}

// WithTwoPhase enables the warn-then-delete windows on the test config.
func WithTwoPhase(warnDays, deleteDays int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cleanup.WarnDays = warnDays
		cfg.Cleanup.DeleteDays = deleteDays
	}
}

// WithRatingSource overrides the configured rating source.
func WithRatingSource(source string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cleanup.RatingSource = source
	}
}
