package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tautulli contains connection settings for the watch-history source.
type Tautulli struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	HistoryLength  int    `toml:"history_length"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Plex contains settings for the Plex server and the community metadata API.
type Plex struct {
	Token          string `toml:"token"`
	ServerURL      string `toml:"server_url"`
	CommunityURL   string `toml:"community_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Radarr contains connection settings for the movie manager.
type Radarr struct {
	URL                  string `toml:"url"`
	APIKey               string `toml:"api_key"`
	LookupTimeoutSeconds int    `toml:"lookup_timeout_seconds"`
	DeleteTimeoutSeconds int    `toml:"delete_timeout_seconds"`
}

// Sonarr contains connection settings for the series manager.
type Sonarr struct {
	URL                  string `toml:"url"`
	APIKey               string `toml:"api_key"`
	LookupTimeoutSeconds int    `toml:"lookup_timeout_seconds"`
	DeleteTimeoutSeconds int    `toml:"delete_timeout_seconds"`
}

// Cleanup contains the eligibility and deletion policy knobs.
type Cleanup struct {
	DryRun            bool     `toml:"dry_run"`
	DaysDelay         int      `toml:"days_delay"`
	WarnDays          int      `toml:"warn_days"`
	DeleteDays        int      `toml:"delete_days"`
	RatingThreshold   float64  `toml:"rating_threshold"`
	RatingMode        string   `toml:"rating_mode"`
	RatingSource      string   `toml:"rating_source"`
	SeriesWatchMode   string   `toml:"series_watch_mode"`
	ExcludedLibraries []string `toml:"excluded_libraries"`
}

// Schedule contains daily run timing.
type Schedule struct {
	RunAt      string `toml:"run_at"`
	RunOnStart bool   `toml:"run_on_start"`

	runAtHour   int
	runAtMinute int
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// RunLog contains settings for the local run-history archive.
type RunLog struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Config encapsulates all configuration values for Starsweep.
//
// Configuration sections by subsystem:
//   - Tautulli: watch-history source
//   - Plex: community rating lookups and series completeness checks
//   - Radarr/Sonarr: downstream movie and series managers
//   - Cleanup: eligibility thresholds and deletion policy
//   - Schedule: daily run time
//   - Notifications: ntfy push notification settings
//   - RunLog: local SQLite run archive
//   - Logging: log format and level
//   - Paths: data and log directories
type Config struct {
	Tautulli      Tautulli      `toml:"tautulli"`
	Plex          Plex          `toml:"plex"`
	Radarr        Radarr        `toml:"radarr"`
	Sonarr        Sonarr        `toml:"sonarr"`
	Cleanup       Cleanup       `toml:"cleanup"`
	Schedule      Schedule      `toml:"schedule"`
	Notifications Notifications `toml:"notifications"`
	RunLog        RunLog        `toml:"run_log"`
	Logging       Logging       `toml:"logging"`
	Paths         Paths         `toml:"paths"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/starsweep/config.toml")
}

// Load locates, parses, and validates a configuration file. Environment
// overrides are applied after the file is read, so a deployment can run on
// environment variables alone. The returned config has all path fields
// expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("starsweep.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories required for operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// TwoPhaseEnabled reports whether the warn-then-delete schedule is active.
func (c *Config) TwoPhaseEnabled() bool {
	return c.Cleanup.DeleteDays > 0
}

// RunAtClock returns the configured daily run time as hour and minute.
// Only meaningful after Load has validated the configuration.
func (c *Config) RunAtClock() (hour, minute int) {
	return c.Schedule.runAtHour, c.Schedule.runAtMinute
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
