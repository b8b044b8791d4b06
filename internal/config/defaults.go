package config

const (
	defaultDataDir              = "~/.local/share/starsweep"
	defaultLogDir               = "~/.local/share/starsweep/logs"
	defaultHistoryLength        = 5000
	defaultTautulliTimeout      = 60
	defaultPlexTimeout          = 20
	defaultCommunityURL         = "https://metadata.provider.plex.tv/graphql"
	defaultLookupTimeout        = 15
	defaultDeleteTimeout        = 30
	defaultDaysDelay            = 30
	defaultRatingThreshold      = 6.5
	defaultRatingMode           = "average"
	defaultRatingSource         = "community"
	defaultSeriesWatchMode      = "full"
	defaultRunAt                = "02:00"
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tautulli: Tautulli{
			HistoryLength:  defaultHistoryLength,
			TimeoutSeconds: defaultTautulliTimeout,
		},
		Plex: Plex{
			CommunityURL:   defaultCommunityURL,
			TimeoutSeconds: defaultPlexTimeout,
		},
		Radarr: Radarr{
			LookupTimeoutSeconds: defaultLookupTimeout,
			DeleteTimeoutSeconds: defaultDeleteTimeout,
		},
		Sonarr: Sonarr{
			LookupTimeoutSeconds: defaultLookupTimeout,
			DeleteTimeoutSeconds: defaultDeleteTimeout,
		},
		Cleanup: Cleanup{
			DryRun:          true,
			DaysDelay:       defaultDaysDelay,
			RatingThreshold: defaultRatingThreshold,
			RatingMode:      defaultRatingMode,
			RatingSource:    defaultRatingSource,
			SeriesWatchMode: defaultSeriesWatchMode,
		},
		Schedule: Schedule{
			RunAt:      defaultRunAt,
			RunOnStart: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		RunLog: RunLog{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
	}
}
