package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var clearInput bool
	var keepInput bool

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "trackprep",
		Short: "Download and normalize audio into numbered OGG tracks",
		Long: "trackprep downloads the URLs listed in the input manifest, converts every supported\n" +
			"audio file in the input folder to mono 44.1 kHz OGG, and writes them as track1.ogg..trackN.ogg.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx, runOptions{clearInput: clearInput, keepInput: keepInput})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVar(&clearInput, "clear-input", false, "Clear the input folder after the run without prompting")
	rootCmd.Flags().BoolVar(&keepInput, "keep-input", false, "Keep the input folder after the run without prompting")
	rootCmd.MarkFlagsMutuallyExclusive("clear-input", "keep-input")

	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newToolchainCommand(ctx))

	return rootCmd
}
