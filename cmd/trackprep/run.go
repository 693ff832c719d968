package main

import (
	"github.com/spf13/cobra"

	"trackprep/internal/config"
	"trackprep/internal/pipeline"
)

type runOptions struct {
	clearInput bool
	keepInput  bool
}

func runPipeline(cmd *cobra.Command, ctx *commandContext, opts runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cfg, logger,
		pipeline.WithPrompter(cleanupPrompter(cmd, cfg, opts)),
		pipeline.WithSummaryOutput(cmd.OutOrStdout()),
	)
	result, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	if code := exitCodeForStatus(result.Status); code != exitOK {
		return &statusError{status: result.Status, code: code}
	}
	return nil
}

func cleanupPrompter(cmd *cobra.Command, cfg *config.Config, opts runOptions) pipeline.Prompter {
	switch {
	case opts.clearInput:
		return pipeline.Answer(true)
	case opts.keepInput:
		return pipeline.Answer(false)
	case !cfg.Cleanup.Prompt:
		return nil
	default:
		return pipeline.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}
}
