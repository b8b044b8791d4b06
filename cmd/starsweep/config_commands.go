package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"starsweep/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set the Tautulli url/api_key and the Plex token before running Starsweep.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			hour, minute := cfg.RunAtClock()
			rows := [][]string{
				{"tautulli.url", cfg.Tautulli.URL},
				{"tautulli.history_length", fmt.Sprintf("%d", cfg.Tautulli.HistoryLength)},
				{"plex.server_url", cfg.Plex.ServerURL},
				{"radarr.url", cfg.Radarr.URL},
				{"sonarr.url", cfg.Sonarr.URL},
				{"cleanup.dry_run", yesNo(cfg.Cleanup.DryRun)},
				{"cleanup.days_delay", fmt.Sprintf("%d", cfg.Cleanup.DaysDelay)},
				{"cleanup.warn_days", fmt.Sprintf("%d", cfg.Cleanup.WarnDays)},
				{"cleanup.delete_days", fmt.Sprintf("%d", cfg.Cleanup.DeleteDays)},
				{"cleanup.rating_threshold", fmt.Sprintf("%.1f", cfg.Cleanup.RatingThreshold)},
				{"cleanup.rating_mode", cfg.Cleanup.RatingMode},
				{"cleanup.rating_source", cfg.Cleanup.RatingSource},
				{"cleanup.series_watch_mode", cfg.Cleanup.SeriesWatchMode},
				{"cleanup.excluded_libraries", strings.Join(cfg.Cleanup.ExcludedLibraries, ", ")},
				{"schedule.run_at", fmt.Sprintf("%02d:%02d", hour, minute)},
				{"schedule.run_on_start", yesNo(cfg.Schedule.RunOnStart)},
				{"notifications.ntfy_topic", cfg.Notifications.NtfyTopic},
				{"run_log.enabled", yesNo(cfg.RunLog.Enabled)},
				{"paths.data_dir", cfg.Paths.DataDir},
				{"paths.log_dir", cfg.Paths.LogDir},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"SETTING", "VALUE"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
