package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trackprep/internal/toolchain"
)

func newToolchainCommand(ctx *commandContext) *cobra.Command {
	toolchainCmd := &cobra.Command{
		Use:   "toolchain",
		Short: "Manage the FFmpeg toolchain",
	}
	toolchainCmd.AddCommand(newToolchainInstallCommand(ctx))
	return toolchainCmd
}

func newToolchainInstallCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Locate FFmpeg, downloading it into the install directory if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			loc, err := toolchain.NewManager(cfg, logger).Ensure(cmd.Context())
			if err != nil {
				return err
			}
			where := loc.Dir
			if where == "" {
				where = "PATH"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "FFmpeg ready: %s (%s)\n", where, loc.Source)
			if loc.ProbeMissing {
				fmt.Fprintln(cmd.OutOrStdout(), "ffprobe not found; output verification disabled")
			}
			return nil
		},
	}
}
