package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"glyphsmith/internal/config"
	"glyphsmith/internal/logging"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var jobID string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the glyphsmith log file",
		Long: `Show the last lines of the log file written under paths.log_dir.

Use --follow to keep printing new lines until interrupted, and --job to
show only the lines of one job.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withConsole(cmd, func(cfg *config.Config, _ *slog.Logger, out io.Writer) error {
				path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
				match := func(line string) bool {
					return jobID == "" || strings.Contains(line, jobID)
				}

				tail, offset, err := logging.LastLines(path, lines)
				if err != nil {
					return err
				}
				for _, line := range tail {
					if match(line) {
						fmt.Fprintln(out, line)
					}
				}
				if !follow {
					return nil
				}

				err = logging.FollowLines(cmd.Context(), path, offset, 250*time.Millisecond, func(line string) {
					if match(line) {
						fmt.Fprintln(out, line)
					}
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	cmd.Flags().StringVar(&jobID, "job", "", "Only show lines mentioning this job ID")
	return cmd
}
