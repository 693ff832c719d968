package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"trackprep/internal/pipeline"
	"trackprep/internal/toolchain"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"generic", errors.New("boom"), exitError},
		{"cancelled", fmt.Errorf("run: %w", context.Canceled), exitInterrupted},
		{"toolchain", fmt.Errorf("%w: download failed", toolchain.ErrUnavailable), exitToolchainUnavailable},
		{"partial", &statusError{status: pipeline.StatusPartial, code: exitPartial}, exitPartial},
		{"failed", &statusError{status: pipeline.StatusFailed, code: exitFailed}, exitFailed},
		{"locked", pipeline.ErrRunLocked, exitError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Fatalf("exitCode = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestExitCodeForStatus(t *testing.T) {
	cases := map[pipeline.Status]int{
		pipeline.StatusSuccess:              exitOK,
		pipeline.StatusPartial:              exitPartial,
		pipeline.StatusFailed:               exitFailed,
		pipeline.StatusToolchainUnavailable: exitToolchainUnavailable,
		pipeline.Status("bogus"):            exitError,
	}
	for status, want := range cases {
		if got := exitCodeForStatus(status); got != want {
			t.Errorf("exitCodeForStatus(%s) = %d, want %d", status, got, want)
		}
	}
}
