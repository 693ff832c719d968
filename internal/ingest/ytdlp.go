package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"trackprep/internal/config"
	"trackprep/internal/logging"
)

// ErrNoExtractor reports that no yt-dlp executable could be found or installed.
var ErrNoExtractor = errors.New("yt-dlp is not available")

// Extractor fetches the audio behind url into destDir.
type Extractor interface {
	Extract(ctx context.Context, url, destDir string) error
}

// YTDLP extracts audio with the yt-dlp CLI.
type YTDLP struct {
	executable  string
	audioFormat string
	template    string
}

// NewYTDLP builds an extractor that runs executable with the ingest settings.
func NewYTDLP(executable string, cfg config.Ingest) *YTDLP {
	return &YTDLP{
		executable:  executable,
		audioFormat: cfg.AudioFormat,
		template:    cfg.OutputTemplate,
	}
}

// Extract downloads url as audio-only in the configured format into destDir.
func (y *YTDLP) Extract(ctx context.Context, url, destDir string) error {
	cmd := ytdlp.New().
		SetExecutable(y.executable).
		ExtractAudio().
		AudioFormat(y.audioFormat).
		Output(filepath.Join(destDir, y.template)).
		Quiet().
		NoProgress()

	result, err := cmd.Run(ctx, url)
	if err != nil {
		if result != nil {
			if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
				return fmt.Errorf("yt-dlp: %w: %s", err, lastLine(stderr))
			}
		}
		return fmt.Errorf("yt-dlp: %w", err)
	}
	return nil
}

// ResolveExtractor finds the configured yt-dlp binary, or installs one through
// go-ytdlp when auto_install is enabled.
func ResolveExtractor(ctx context.Context, cfg config.Ingest, logger *slog.Logger) (Extractor, error) {
	if path, err := exec.LookPath(cfg.Binary); err == nil {
		return NewYTDLP(path, cfg), nil
	}
	if !cfg.AutoInstall {
		return nil, fmt.Errorf("%w: %q not found (set ingest.auto_install to download it)", ErrNoExtractor, cfg.Binary)
	}

	logger.Info("installing yt-dlp")
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: install: %w", ErrNoExtractor, err)
	}
	logger.Info("yt-dlp ready", logging.String("executable", resolved.Executable), logging.String("version", resolved.Version))
	return NewYTDLP(resolved.Executable, cfg), nil
}

func lastLine(s string) string {
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[idx+1:])
	}
	return s
}
