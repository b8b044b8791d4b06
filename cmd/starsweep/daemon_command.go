package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"starsweep/internal/daemon"
	"starsweep/internal/logging"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run scheduled cleanup passes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
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

			d, err := daemon.New(cfg, engine, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return d.Serve(runCtx)
		},
	}
}
