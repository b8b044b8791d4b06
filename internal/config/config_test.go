package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"starsweep/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
[tautulli]
url = "http://tautulli.local:8181"
api_key = "abc123"

[plex]
token = "plex-token"
server_url = "http://plex.local:32400"
`

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if !cfg.Cleanup.DryRun {
		t.Fatal("expected dry_run to default to true")
	}
	if cfg.Cleanup.DaysDelay != 30 {
		t.Fatalf("expected default days_delay 30, got %d", cfg.Cleanup.DaysDelay)
	}
	if cfg.Cleanup.RatingThreshold != 6.5 {
		t.Fatalf("expected default threshold 6.5, got %v", cfg.Cleanup.RatingThreshold)
	}
	if cfg.Cleanup.RatingSource != config.RatingSourceCommunity {
		t.Fatalf("expected default rating source community, got %q", cfg.Cleanup.RatingSource)
	}
	if hour, minute := cfg.RunAtClock(); hour != 2 || minute != 0 {
		t.Fatalf("expected default run time 02:00, got %02d:%02d", hour, minute)
	}
	if cfg.TwoPhaseEnabled() {
		t.Fatal("two-phase mode should be disabled by default")
	}
}

func TestLoadRejectsMissingTautulli(t *testing.T) {
	path := writeConfig(t, `
[plex]
token = "plex-token"
server_url = "http://plex.local:32400"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for missing tautulli settings")
	}
}

func TestLoadRejectsInvertedWarnDeleteThresholds(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[cleanup]
warn_days = 40
delete_days = 37
`)
	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error when warn_days >= delete_days")
	}
	if !strings.Contains(err.Error(), "strictly less") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadAllowsZeroWarnDays(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[cleanup]
delete_days = 37
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.TwoPhaseEnabled() || cfg.Cleanup.WarnDays != 0 {
		t.Fatalf("expected two-phase mode with zero warn_days, got %+v", cfg.Cleanup)
	}
}

func TestLoadRejectsNegativeWarnDays(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[cleanup]
warn_days = -1
delete_days = 37
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for negative warn_days")
	}
}

func TestLoadRejectsMalformedRunAt(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[schedule]
run_at = "25:00"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for invalid run_at")
	}
}

func TestLoadRejectsUnknownRatingSource(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[cleanup]
rating_source = "tarot"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown rating_source")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	t.Setenv("DRY_RUN", "false")
	t.Setenv("DAYS_DELAY", "45")
	t.Setenv("RATING_THRESHOLD", "7.2")
	t.Setenv("EXCLUDED_LIBRARIES", " Kids , Home Videos ")
	t.Setenv("RUN_AT", "04:30")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cleanup.DryRun {
		t.Fatal("expected DRY_RUN=false to disable dry run")
	}
	if cfg.Cleanup.DaysDelay != 45 {
		t.Fatalf("expected days_delay 45, got %d", cfg.Cleanup.DaysDelay)
	}
	if cfg.Cleanup.RatingThreshold != 7.2 {
		t.Fatalf("expected threshold 7.2, got %v", cfg.Cleanup.RatingThreshold)
	}
	want := []string{"Kids", "Home Videos"}
	if len(cfg.Cleanup.ExcludedLibraries) != len(want) {
		t.Fatalf("expected %d excluded libraries, got %v", len(want), cfg.Cleanup.ExcludedLibraries)
	}
	for i, name := range want {
		if cfg.Cleanup.ExcludedLibraries[i] != name {
			t.Fatalf("expected excluded library %q, got %q", name, cfg.Cleanup.ExcludedLibraries[i])
		}
	}
	if hour, minute := cfg.RunAtClock(); hour != 4 || minute != 30 {
		t.Fatalf("expected run time 04:30, got %02d:%02d", hour, minute)
	}
}

func TestRatingModeIsNormalizedNotRejected(t *testing.T) {
	// Unknown rating modes fall back to average semantics at decision time
	// with a surfaced warning, so configuration load accepts them.
	path := writeConfig(t, minimalConfig+`
[cleanup]
rating_mode = "Median"
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cleanup.RatingMode != "median" {
		t.Fatalf("expected lowercased rating mode, got %q", cfg.Cleanup.RatingMode)
	}
}
