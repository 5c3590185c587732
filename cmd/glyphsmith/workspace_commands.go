package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"glyphsmith/internal/config"
	"glyphsmith/internal/workspace"
)

func newWorkspaceCommand(ctx *commandContext) *cobra.Command {
	workspaceCmd := &cobra.Command{
		Use:   "workspace",
		Short: "Inspect and clean job working directories",
	}

	workspaceCmd.AddCommand(newWorkspaceListCommand(ctx))
	workspaceCmd.AddCommand(newWorkspaceCleanCommand(ctx))

	return workspaceCmd
}

func newWorkspaceListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List job working directories left under the temp root",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withConsole(cmd, func(cfg *config.Config, logger *slog.Logger, out io.Writer) error {
				manager := workspace.NewManager(cfg.Paths.TempRoot, logger)
				dirs, err := manager.List()
				if err != nil {
					return fmt.Errorf("list working directories: %w", err)
				}
				if len(dirs) == 0 {
					fmt.Fprintln(out, "No working directories found")
					return nil
				}

				fmt.Fprintf(out, "Temp root: %s\n\n", manager.Root())
				var totalSize int64
				rows := make([][]string, 0, len(dirs))
				for _, dir := range dirs {
					totalSize += dir.Size
					age := time.Since(dir.ModTime).Truncate(time.Minute)
					rows = append(rows, []string{dir.Name, formatAge(age), formatBytes(dir.Size)})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Directory", "Age", "Size"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
				fmt.Fprintf(out, "Total: %d directories, %s\n", len(dirs), formatBytes(totalSize))
				return nil
			})
		},
	}
}

func newWorkspaceCleanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove working directories left behind by interrupted runs",
		Long: `Remove every job working directory under the temp root.

Working directories are removed when each job ends; anything left was
orphaned by a crash or a killed process. Clean waits for a running
glyphsmith process to finish its job before removing anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withConsole(cmd, func(cfg *config.Config, logger *slog.Logger, out io.Writer) error {
				manager := workspace.NewManager(cfg.Paths.TempRoot, logger)
				result, err := manager.Clean(cmd.Context())
				if err != nil {
					return fmt.Errorf("clean working directories: %w", err)
				}
				for _, e := range result.Errors {
					fmt.Fprintln(out, renderStatus(statusWarn, fmt.Sprintf("%s: %v", e.Path, e.Error), shouldColorize(cmd.OutOrStdout())))
				}
				fmt.Fprintf(out, "Removed %d working directories\n", len(result.Removed))
				if len(result.Errors) > 0 {
					return fmt.Errorf("%d working directories could not be removed", len(result.Errors))
				}
				return nil
			})
		},
	}
}
