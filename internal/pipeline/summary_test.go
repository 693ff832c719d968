package pipeline_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"trackprep/internal/pipeline"
	"trackprep/internal/transcode"
)

func TestRenderSummary(t *testing.T) {
	unit := &transcode.Unit{Ordinal: 1, Output: "/out/track1.ogg"}
	result := pipeline.Result{
		Status: pipeline.StatusPartial,
		Transcode: transcode.Report{
			Eligible: 2,
			Outcomes: []transcode.Outcome{
				{Source: transcode.Source{Path: "/in/a.mp3", Name: "a.mp3", Size: 2048}, Unit: unit},
				{Source: transcode.Source{Path: "/in/b.flac", Name: "b.flac", Size: 10}, Err: errors.New("bad")},
			},
		},
	}

	var buf bytes.Buffer
	pipeline.RenderSummary(&buf, result)
	out := buf.String()
	for _, want := range []string{"a.mp3", "track1.ogg", "2.0 kB", "failed", "Total tracks processed: 1 of 2", "[partial]"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "URLs:") {
		t.Errorf("summary should omit URL totals without a manifest:\n%s", out)
	}
}

func TestRenderSummaryNilWriter(t *testing.T) {
	pipeline.RenderSummary(nil, pipeline.Result{})
}
