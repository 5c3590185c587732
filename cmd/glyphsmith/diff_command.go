package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"glyphsmith/internal/config"
	"glyphsmith/internal/fontdiff"
	"glyphsmith/internal/logging"
)

func newDiffCommand(ctx *commandContext) *cobra.Command {
	var outlines bool

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Compare the code point coverage and glyphs of two fonts",
		Long: `Diff lists the code points added and removed between two TTF/OTF fonts
and the shared code points whose outline or horizontal metrics changed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withConsole(cmd, func(_ *config.Config, logger *slog.Logger, out io.Writer) error {
				logger = logging.NewComponentLogger(logger, "fontdiff")
				report, err := fontdiff.CompareFiles(args[0], args[1], fontdiff.Options{SkipOutlines: !outlines})
				if err != nil {
					return err
				}
				logger.Info("fonts compared",
					logging.Path("old", report.OldPath),
					logging.Path("new", report.NewPath),
					logging.Int("added", len(report.Added)),
					logging.Int("removed", len(report.Removed)),
					logging.Int("changed_outlines", len(report.ChangedOutlines)),
					logging.Int("changed_metrics", len(report.ChangedMetrics)),
					logging.Event("font_diff"),
				)
				printDiffReport(out, report, shouldColorize(cmd.OutOrStdout()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&outlines, "outlines", true, "Compare glyph outlines of shared code points")
	return cmd
}

func printDiffReport(out io.Writer, report fontdiff.Report, colorize bool) {
	fmt.Fprintf(out, "Old: %s (%d code points)\n", report.OldPath, report.OldCount)
	fmt.Fprintf(out, "New: %s (%d code points)\n\n", report.NewPath, report.NewCount)

	section := func(title string, codepoints []rune) {
		fmt.Fprintf(out, "%s: %d\n  %s\n", title, len(codepoints), fontdiff.FormatCodepoints(codepoints))
	}
	section("Added", report.Added)
	section("Removed", report.Removed)
	if report.OutlinesChecked {
		section("Changed outlines", report.ChangedOutlines)
	} else {
		fmt.Fprintln(out, "Changed outlines: skipped")
	}
	section("Changed metrics", report.ChangedMetrics)
	if len(report.Unreadable) > 0 {
		section("Unreadable glyphs", report.Unreadable)
	}

	fmt.Fprintln(out)
	if report.Identical() {
		fmt.Fprintln(out, renderStatus(statusOK, "no code point or glyph differences", colorize))
		return
	}
	fmt.Fprintln(out, renderStatus(statusInfo, "differences found", colorize))
}
