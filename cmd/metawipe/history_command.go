package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"metawipe/internal/history"
	"metawipe/internal/report"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent cleaning runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				note := ""
				if run.Interrupted {
					note = "interrupted"
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					run.Root,
					strconv.Itoa(run.Total),
					strconv.Itoa(run.Cleaned),
					strconv.Itoa(run.Failed),
					strconv.Itoa(run.Skipped),
					run.Elapsed.Round(time.Second).String(),
					note,
				})
			}
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Started", "Root", "Total", "Cleaned", "Failed", "Skipped", "Elapsed", ""},
				rows,
				[]report.ColumnAlignment{
					report.AlignLeft, report.AlignLeft,
					report.AlignRight, report.AlignRight, report.AlignRight, report.AlignRight,
					report.AlignRight, report.AlignLeft,
				}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
