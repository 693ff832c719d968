package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTeeHandlerNilHandlers(t *testing.T) {
	if h := TeeHandler(nil, nil); h != slog.DiscardHandler {
		t.Errorf("expected discard handler for all nil handlers, got %T", h)
	}
}

func TestTeeHandlerSingleHandlerUnwrapped(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := TeeHandler(nil, inner, nil); h != inner {
		t.Error("expected single non-nil handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	h := TeeHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected tee to be enabled for debug")
	}

	logger := slog.New(h)
	logger.Debug("only debug")
	logger.Info("both")

	if strings.Contains(infoBuf.String(), "only debug") {
		t.Error("info handler should not receive debug records")
	}
	if !strings.Contains(debugBuf.String(), "only debug") || !strings.Contains(debugBuf.String(), "both") {
		t.Errorf("debug handler missing records: %q", debugBuf.String())
	}
	if !strings.Contains(infoBuf.String(), "both") {
		t.Errorf("info handler missing record: %q", infoBuf.String())
	}
}

func TestTeeHandlerWithAttrsPropagates(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := TeeHandler(slog.NewJSONHandler(&buf1, nil), slog.NewJSONHandler(&buf2, nil))

	slog.New(h).With("component", "ingest").Info("msg")

	for i, buf := range []*bytes.Buffer{&buf1, &buf2} {
		if !strings.Contains(buf.String(), `"component":"ingest"`) {
			t.Errorf("handler %d missing attr: %q", i, buf.String())
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTeeHandlerKeepsWritingAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	h := TeeHandler(slog.NewJSONHandler(failingWriter{}, nil), slog.NewJSONHandler(&buf, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "still here", 0))
	if err == nil {
		t.Fatal("expected the write failure to be reported")
	}
	if !strings.Contains(buf.String(), "still here") {
		t.Errorf("second handler missed the record: %q", buf.String())
	}
}
