package pipeline

import (
	"time"

	"trackprep/internal/ingest"
	"trackprep/internal/toolchain"
	"trackprep/internal/transcode"
	"trackprep/internal/workspace"
)

// Status summarizes how a run ended.
type Status string

const (
	StatusSuccess              Status = "success"
	StatusPartial              Status = "partial"
	StatusFailed               Status = "failed"
	StatusToolchainUnavailable Status = "toolchain_unavailable"
)

// Result describes a completed run.
type Result struct {
	RunID     string
	Status    Status
	Toolchain toolchain.Location
	Ingest    ingest.Report
	Transcode transcode.Report
	// OutputCleared lists the stale files removed before transcoding.
	OutputCleared workspace.ClearResult
	// InputCleared is nil when the operator declined cleanup.
	InputCleared *workspace.ClearResult
	Started      time.Time
	Duration     time.Duration
}

// Successes is the number of tracks produced.
func (r Result) Successes() int {
	return r.Transcode.Succeeded()
}

// Failures is the number of eligible files that produced no track.
func (r Result) Failures() int {
	return r.Transcode.Failed()
}

// Eligible is the number of input files considered for transcoding.
func (r Result) Eligible() int {
	return r.Transcode.Eligible
}

func statusFor(report transcode.Report) Status {
	ok := report.Succeeded()
	failed := report.Failed()
	switch {
	case report.Err != nil:
		return StatusFailed
	case report.Eligible > 0 && ok == 0:
		return StatusFailed
	case ok > 0 && failed > 0:
		return StatusPartial
	default:
		return StatusSuccess
	}
}
