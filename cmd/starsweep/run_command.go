package main

import (
	"time"

	"github.com/spf13/cobra"

	"starsweep/internal/logging"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var live bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one cleanup pass immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if live {
				cfg.Cleanup.DryRun = false
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			engine, closer, err := buildEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer closer()

			summary, err := engine.Run(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "Disable dry-run and perform real deletions")
	return cmd
}
