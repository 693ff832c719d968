package transcode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"trackprep/internal/config"
	"trackprep/internal/logging"
	"trackprep/internal/textutil"
	"trackprep/internal/toolchain"
)

// Unit is one produced track.
type Unit struct {
	Source  string
	Ordinal int
	Output  string
}

// Outcome records the result for one eligible source. Unit is set on success.
type Outcome struct {
	Source Source
	Unit   *Unit
	Err    error
}

// Report aggregates one batch run.
type Report struct {
	Eligible int
	Outcomes []Outcome
	// Err is set when the input directory could not be listed.
	Err error
}

// Units returns the produced tracks in ordinal order.
func (r Report) Units() []Unit {
	units := make([]Unit, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Unit != nil {
			units = append(units, *o.Unit)
		}
	}
	return units
}

// Succeeded counts produced tracks.
func (r Report) Succeeded() int {
	return len(r.Units())
}

// Failed counts sources that were attempted and did not produce a track.
func (r Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// OutputName returns the published file name for ordinal.
func OutputName(ordinal int) string {
	return fmt.Sprintf("track%d.ogg", ordinal)
}

func stagingName(ordinal int) string {
	return fmt.Sprintf(".track%d.ogg.partial", ordinal)
}

// Batch converts eligible inputs sequentially.
type Batch struct {
	extensions   []string
	manifestName string
	encoder      Encoder
	verifier     Verifier
	logger       *slog.Logger
}

// Option customizes a Batch.
type Option func(*Batch)

// WithEncoder replaces the FFmpeg encoder.
func WithEncoder(encoder Encoder) Option {
	return func(b *Batch) {
		b.encoder = encoder
	}
}

// WithVerifier replaces the ffprobe verifier; nil disables verification.
func WithVerifier(verifier Verifier) Option {
	return func(b *Batch) {
		b.verifier = verifier
	}
}

// New builds a Batch that launches binaries from loc. Verification is skipped
// when loc reports ffprobe missing.
func New(cfg *config.Config, loc toolchain.Location, logger *slog.Logger, opts ...Option) *Batch {
	profile := ProfileFromConfig(cfg.Transcode)
	b := &Batch{
		extensions:   cfg.Transcode.Extensions,
		manifestName: cfg.Ingest.ManifestName,
		encoder:      NewFFmpeg(loc.Binary("ffmpeg"), profile),
		logger:       logging.NewComponentLogger(logger, "transcode"),
	}
	if cfg.Transcode.VerifyOutput && !loc.ProbeMissing {
		b.verifier = NewProbeVerifier(loc.Binary("ffprobe"), profile)
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run enumerates inputDir and converts each eligible file into outputDir.
// Failures are logged and recorded; the ordinal is only consumed by a
// successful conversion. Cancellation stops before the next file.
func (b *Batch) Run(ctx context.Context, inputDir, outputDir string) Report {
	sources, err := Enumerate(inputDir, b.extensions, b.manifestName)
	if err != nil {
		logging.ErrorWithContext(b.logger, "cannot list input directory", "enumerate_failed",
			logging.String("dir", inputDir),
			logging.Error(err),
		)
		return Report{Err: err}
	}

	report := Report{Eligible: len(sources)}
	b.logger.Info("found audio files", logging.Int("count", len(sources)), logging.String("dir", inputDir))

	ordinal := 1
	for _, src := range sources {
		if ctx.Err() != nil {
			b.logger.Info("transcoding cancelled", logging.Int("remaining", len(sources)-len(report.Outcomes)))
			break
		}
		outcome := Outcome{Source: src}
		unit, err := b.convert(ctx, src, ordinal, outputDir)
		if err != nil {
			outcome.Err = err
		} else {
			outcome.Unit = &unit
			ordinal++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	b.logger.Info("total tracks processed",
		logging.Int("count", report.Succeeded()),
		logging.Int("failed", report.Failed()),
	)
	return report
}

func (b *Batch) convert(ctx context.Context, src Source, ordinal int, outputDir string) (Unit, error) {
	display := textutil.DisplayName(src.Path)
	final := filepath.Join(outputDir, OutputName(ordinal))
	staged := filepath.Join(outputDir, stagingName(ordinal))
	logger := b.logger.With(logging.Int(logging.FieldTrack, ordinal), logging.String(logging.FieldSource, display))

	logger.Info("converting", logging.String("output_file", OutputName(ordinal)))

	err := b.encoder.Encode(ctx, src.Path, staged)
	if err == nil && b.verifier != nil {
		err = b.verifier.Verify(ctx, staged)
	}
	if err == nil {
		if renameErr := os.Rename(staged, final); renameErr != nil {
			err = fmt.Errorf("publish %s: %w", OutputName(ordinal), renameErr)
		}
	}
	if err != nil {
		if removeErr := os.Remove(staged); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			logger.Debug("could not remove staging file", logging.String("path", staged), logging.Error(removeErr))
		}
		logging.WarnWithContext(logger, "error processing file", "transcode_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the file contains a decodable audio stream"),
			logging.String(logging.FieldImpact, "file skipped; track numbering continues without a gap"),
		)
		return Unit{}, err
	}

	attrs := []logging.Attr{logging.String("output_file", OutputName(ordinal))}
	if info, statErr := os.Stat(final); statErr == nil {
		attrs = append(attrs, logging.String("size", humanize.Bytes(uint64(info.Size()))))
	}
	logger.Info("converted", logging.Args(attrs...)...)
	return Unit{Source: src.Path, Ordinal: ordinal, Output: final}, nil
}
