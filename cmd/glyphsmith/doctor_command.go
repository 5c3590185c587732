package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"glyphsmith/internal/config"
	"glyphsmith/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that FontForge, the scripts and the directories are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withConsole(cmd, func(cfg *config.Config, _ *slog.Logger, out io.Writer) error {
				results := preflight.RunAll(cmd.Context(), cfg)
				printPreflight(out, ctx.configPath, results)
				if failed := preflight.Failed(results); len(failed) > 0 {
					return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
				}
				return nil
			})
		},
	}
}

func printPreflight(out io.Writer, configPath string, results []preflight.Result) {
	if configPath != "" {
		fmt.Fprintf(out, "Config: %s\n", configPath)
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "ok"
		if !r.Passed {
			status = "missing"
		}
		rows = append(rows, []string{r.Name, status, r.Detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))
}
