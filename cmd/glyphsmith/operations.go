package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"glyphsmith/internal/config"
	"glyphsmith/internal/fontjob"
	"glyphsmith/internal/services"
	"glyphsmith/internal/session"
)

// configureJob applies command-line overrides to a freshly built job.
type configureJob func(*fontjob.Job)

func newOperationCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newOptimizeCommand(ctx),
		newConvertCommand(ctx),
		newMergeSVGCommand(ctx),
	}
}

func newOptimizeCommand(ctx *commandContext) *cobra.Command {
	var simplify float64
	var outputDir string

	cmd := &cobra.Command{
		Use:   "optimize [font...]",
		Short: "Simplify outlines and merge duplicate glyphs",
		Long: `Optimize runs the FontForge optimization script on each font.

The result is written next to the input as <name>_merge_glyphs.<ext>
unless --output-dir is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			simplifySet := cmd.Flags().Changed("simplify")
			return ctx.runOperation(cmd, fontjob.OpOptimize, args, func(job *fontjob.Job) {
				if simplifySet {
					job.Simplify = simplify
				}
				job.OutputDir = outputDir
			})
		},
	}

	cmd.Flags().Float64Var(&simplify, "simplify", 0, "Outline simplification factor (defaults to optimize.simplify)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the optimized font")
	return cmd
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var format string
	var output string
	var outputDir string
	var familyName string
	var version string

	cmd := &cobra.Command{
		Use:   "convert [font...]",
		Short: "Convert fonts between TTF, OTF, WOFF, WOFF2 and SVG",
		Long: `Convert re-generates each font in another format.

The target format comes from --format, or from the extension of --output,
or from convert.format in the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return services.Wrap(services.ErrUserInput, string(fontjob.OpConvert), "Validate options", "--output accepts a single input font", nil)
			}
			target := format
			if !cmd.Flags().Changed("format") && output != "" {
				target = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			return ctx.runOperation(cmd, fontjob.OpConvert, args, func(job *fontjob.Job) {
				if target != "" {
					job.Format = target
				}
				job.Output = output
				job.OutputDir = outputDir
				job.FamilyName = familyName
				job.Version = version
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Target format: "+strings.Join(config.OutputFormats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Target file (single input only)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for converted fonts")
	cmd.Flags().StringVar(&familyName, "family-name", "", "Set the font family name")
	cmd.Flags().StringVar(&version, "font-version", "", "Set the font version string")
	return cmd
}

func newMergeSVGCommand(ctx *commandContext) *cobra.Command {
	var output string
	var fontName string
	var outputDir string

	cmd := &cobra.Command{
		Use:     "merge-svg [glyph-dir...]",
		Aliases: []string{"merge"},
		Short:   "Assemble a directory of SVG glyphs into one font",
		Long: `Merge-svg builds a font from a directory of SVG glyphs named after their
code points (u4E00.svg, 1F600.svg). The font is written beside the
directory unless --output-dir is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runOperation(cmd, fontjob.OpMergeSVG, args, func(job *fontjob.Job) {
				if output != "" {
					job.Output = output
				}
				if fontName != "" {
					job.FontName = fontName
				}
				job.OutputDir = outputDir
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Font file name (defaults to merge.output_name)")
	cmd.Flags().StringVar(&fontName, "font-name", "", "Font family name (defaults to merge.font_name)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the assembled font")
	return cmd
}

// runOperation processes paths in order, or prompts for them when none
// were given.
func (c *commandContext) runOperation(cmd *cobra.Command, op fontjob.Operation, paths []string, configure configureJob) error {
	return c.withConsole(cmd, func(cfg *config.Config, logger *slog.Logger, out io.Writer) error {
		rep := newReporter(out, shouldColorize(cmd.OutOrStdout()))
		processor := fontjob.NewProcessor(cfg, logger, fontjob.WithStdout(rep.EngineLine))
		if len(paths) == 0 {
			return runInteractive(cmd, op, processor, rep, logger, configure)
		}
		return runBatch(cmd.Context(), op, paths, processor, rep, configure)
	})
}

func runBatch(ctx context.Context, op fontjob.Operation, paths []string, processor *fontjob.Processor, rep *reporter, configure configureJob) error {
	outcomes := make([]batchOutcome, 0, len(paths))
	failed := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		job := processor.NewJob(op, path)
		configure(&job)
		result, err := processor.Process(ctx, job)
		if err != nil {
			failed++
			rep.Failure(job, err)
		} else {
			rep.Success(result)
		}
		outcomes = append(outcomes, batchOutcome{job: job, result: result, err: err})
	}
	if len(paths) > 1 {
		rep.BatchSummary(outcomes)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d %s jobs failed", failed, len(paths), op)
	}
	return nil
}

func runInteractive(cmd *cobra.Command, op fontjob.Operation, processor *fontjob.Processor, rep *reporter, logger *slog.Logger, configure configureJob) error {
	ctx := cmd.Context()
	rep.Banner(op)
	sess, err := session.New(session.Options{
		Operation: op,
		Prompter:  session.NewPrompter(cmd.InOrStdin(), rep.out),
		Processor: processor,
		Reporter:  rep,
		Logger:    logger,
		Configure: configure,
	})
	if err != nil {
		return err
	}
	summary, err := sess.Run(ctx)
	rep.SessionSummary(summary)
	return err
}
