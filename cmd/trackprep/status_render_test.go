package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"trackprep/internal/deps"
	"trackprep/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusFail, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "FFmpeg:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "FFmpeg", Available: false, Detail: `binary "ffmpeg" not found`},
		{Name: "FFprobe", Available: true, Command: "/usr/bin/ffprobe"},
		{Name: "yt-dlp", Available: false, Optional: true},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], `[ERROR] binary "ffmpeg" not found`) {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "[OK] Ready (command: /usr/bin/ffprobe)") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
	if !strings.Contains(lines[2], "[WARN] not available") {
		t.Fatalf("optional binaries should warn, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Missing") || !strings.Contains(lines[3], "FFmpeg") || strings.Contains(lines[3], "yt-dlp") {
		t.Fatalf("unexpected missing summary %q", lines[3])
	}
}

func TestPreflightLines(t *testing.T) {
	lines := preflightLines([]preflight.Result{
		{Name: "Input directory", Passed: true, Detail: "/in"},
		{Name: "Toolchain download", Passed: false, Detail: "unreachable"},
	}, false)
	if !strings.Contains(lines[0], "[OK] /in") || !strings.Contains(lines[1], "[ERROR] unreachable") {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderDependencyTable(t *testing.T) {
	out := renderDependencyTable([]deps.Status{
		{Name: "FFmpeg", Available: true, Command: "/opt/ffmpeg/bin/ffmpeg", Description: "Required for transcoding"},
		{Name: "yt-dlp", Optional: true, Command: "yt-dlp"},
	})
	for _, want := range []string{"Binary", "/opt/ffmpeg/bin/ffmpeg", "yt-dlp", "Required for transcoding"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if renderDependencyTable(nil) != "" {
		t.Fatal("expected empty output without statuses")
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader(" Checks ", false)
	if lines[0] != "== Checks ==" || lines[1] != strings.Repeat("-", len("== Checks ==")) {
		t.Fatalf("unexpected header: %q", lines)
	}
}
