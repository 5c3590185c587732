package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var verboseFlag bool

	ctx := newCommandContext(&configFlag, &logLevelFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:   "glyphsmith",
		Short: "Optimize, convert and assemble fonts with FontForge",
		Long: `glyphsmith drives the FontForge engine to optimize fonts, convert them
between formats and assemble SVG glyph directories into SVG fonts.

Pass one or more paths to process them in order, or run an operation
without paths to be prompted for each file. Type exit to leave the prompt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Mirror debug logs to stderr")

	for _, cmd := range newOperationCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newDiffCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newWorkspaceCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
