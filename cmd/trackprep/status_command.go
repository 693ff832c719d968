package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trackprep/internal/preflight"
	"trackprep/internal/transcode"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show toolchain availability and directory status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configLabel := ctx.configPath
			if !ctx.configExists {
				configLabel = "defaults (" + ctx.configPath + " not found)"
			}
			lines = append(lines,
				renderStatusLine("Config", statusInfo, configLabel, colorize),
				renderStatusLine("Input", statusInfo, cfg.Paths.InputDir, colorize),
				renderStatusLine("Output", statusInfo, cfg.Paths.OutputDir, colorize),
				renderStatusLine("Verify output", statusInfo, yesNo(cfg.Transcode.VerifyOutput), colorize),
				renderStatusLine("Cleanup prompt", statusInfo, yesNo(cfg.Cleanup.Prompt), colorize),
				"",
			)

			statuses := preflight.CheckSystemDeps(cfg)
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(statuses, colorize)...)
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			lines = append(lines, preflightLines(preflight.RunAll(cmd.Context(), cfg), colorize)...)
			lines = append(lines, "")

			sources, err := transcode.Enumerate(cfg.Paths.InputDir, cfg.Transcode.Extensions, cfg.Ingest.ManifestName)
			lines = append(lines, renderSectionHeader("Input", colorize)...)
			if err != nil {
				lines = append(lines, renderStatusLine("Eligible files", statusWarn, err.Error(), colorize))
			} else {
				lines = append(lines, renderStatusLine("Eligible files", statusInfo, strconv.Itoa(len(sources)), colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if table := renderDependencyTable(statuses); table != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, table)
			}
			return nil
		},
	}
}
