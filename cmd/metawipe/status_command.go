package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"metawipe/internal/deps"
	"metawipe/internal/report"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which cleaning strategies this environment can use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s", ctx.path)
			if !ctx.exists {
				fmt.Fprint(out, " (not present, defaults in use)")
			}
			fmt.Fprintln(out)

			avail := deps.Probe(cfg.Tools.ExiftoolBinary, cfg.Tools.FFmpegBinary)
			rows := make([][]string, 0, 6)
			for _, status := range avail.Statuses() {
				state := "available"
				if !status.Available {
					state = "missing"
					if status.Detail != "" {
						state = status.Detail
					}
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Description})
			}
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Strategy", "Command", "Status", "Covers"},
				rows,
				[]report.ColumnAlignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft}))
			return nil
		},
	}
}
