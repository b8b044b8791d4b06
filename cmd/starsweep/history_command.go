package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"starsweep/internal/runlog"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show archived cleanup runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := runlog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run log: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				items, err := store.RunItems(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintf(out, "No archived items for run %s\n", args[0])
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{item.Title, item.Kind, formatScore(item.Score), item.Outcome, item.Reason})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"TITLE", "KIND", "SCORE", "OUTCOME", "REASON"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No archived runs")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format(time.DateTime),
					yesNo(run.DryRun),
					fmt.Sprintf("%d", run.Processed),
					fmt.Sprintf("%d", run.Deleted),
					fmt.Sprintf("%d", run.WouldDelete),
					fmt.Sprintf("%d", run.Kept),
					fmt.Sprintf("%d", run.Warned),
					fmt.Sprintf("%d", run.Failed),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"RUN", "STARTED", "DRY", "TOTAL", "DEL", "WOULD", "KEPT", "WARN", "FAIL"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
