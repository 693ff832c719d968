package main

import (
	"context"
	"errors"
	"fmt"

	"trackprep/internal/pipeline"
	"trackprep/internal/toolchain"
)

const (
	exitOK                   = 0
	exitError                = 1
	exitToolchainUnavailable = 2
	exitPartial              = 3
	exitFailed               = 4
	exitInterrupted          = 130
)

// statusError carries a process exit code for a run that completed but did
// not fully succeed. The summary has already been printed, so it is silent.
type statusError struct {
	status pipeline.Status
	code   int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("run finished with status %s", e.status)
}

func exitCodeForStatus(status pipeline.Status) int {
	switch status {
	case pipeline.StatusSuccess:
		return exitOK
	case pipeline.StatusPartial:
		return exitPartial
	case pipeline.StatusFailed:
		return exitFailed
	case pipeline.StatusToolchainUnavailable:
		return exitToolchainUnavailable
	default:
		return exitError
	}
}

func exitCode(err error) int {
	var statusErr *statusError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &statusErr):
		return statusErr.code
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, toolchain.ErrUnavailable):
		return exitToolchainUnavailable
	default:
		return exitError
	}
}

func isSilent(err error) bool {
	var statusErr *statusError
	return errors.As(err, &statusErr)
}
