package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"trackprep/internal/config"
	"trackprep/internal/ingest"
	"trackprep/internal/logging"
	"trackprep/internal/toolchain"
	"trackprep/internal/transcode"
	"trackprep/internal/workspace"
)

// ErrRunLocked reports that another run holds the lock file.
var ErrRunLocked = errors.New("another trackprep run is in progress")

const cleanupQuestion = "All tracks have been converted. Clear the input folder? [y/N]: "

// Toolchain resolves the FFmpeg location for a run.
type Toolchain interface {
	Ensure(ctx context.Context) (toolchain.Location, error)
}

// Ingester downloads manifest URLs into the input directory.
type Ingester interface {
	Ingest(ctx context.Context, inputDir string) ingest.Report
}

// Transcoder converts the input directory into numbered tracks.
type Transcoder interface {
	Run(ctx context.Context, inputDir, outputDir string) transcode.Report
}

// TranscoderFactory builds a Transcoder once the toolchain location is known.
type TranscoderFactory func(loc toolchain.Location) Transcoder

// Runner executes pipeline runs.
type Runner struct {
	cfg           *config.Config
	logger        *slog.Logger
	toolchain     Toolchain
	ingester      Ingester
	newTranscoder TranscoderFactory
	prompter      Prompter
	summaryOut    io.Writer
}

// Option customizes a Runner.
type Option func(*Runner)

// WithToolchain replaces the toolchain manager.
func WithToolchain(tc Toolchain) Option {
	return func(r *Runner) {
		r.toolchain = tc
	}
}

// WithIngester replaces the manifest ingester.
func WithIngester(ing Ingester) Option {
	return func(r *Runner) {
		r.ingester = ing
	}
}

// WithTranscoderFactory replaces the batch transcoder constructor.
func WithTranscoderFactory(factory TranscoderFactory) Option {
	return func(r *Runner) {
		r.newTranscoder = factory
	}
}

// WithPrompter sets how the input cleanup question is answered. A nil
// prompter skips the question and keeps the input.
func WithPrompter(p Prompter) Option {
	return func(r *Runner) {
		r.prompter = p
	}
}

// WithSummaryOutput sets where the summary table is written.
func WithSummaryOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.summaryOut = w
	}
}

// NewRunner wires the default components from cfg.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one pipeline run. The returned error is non-nil for the
// gating failures (lock, toolchain, directories) and for cancellation; the
// Result is populated as far as the run got.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	result := Result{RunID: uuid.NewString(), Started: time.Now()}
	logger := logging.NewComponentLogger(logging.WithRunID(r.logger, result.RunID), "pipeline")
	if err := r.cfg.EnsureDirectories(); err != nil {
		return result, err
	}
	lock := flock.New(r.cfg.Paths.LockFile)
	locked, err := lock.TryLock()
	if err != nil {
		return result, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return result, fmt.Errorf("%w (lock file %s)", ErrRunLocked, r.cfg.Paths.LockFile)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug("release run lock", logging.Error(err))
		}
	}()

	logger.Info("run started", logging.String("input_dir", r.cfg.Paths.InputDir), logging.String("output_dir", r.cfg.Paths.OutputDir))

	tc := r.toolchain
	if tc == nil {
		tc = toolchain.NewManager(r.cfg, logging.WithRunID(r.logger, result.RunID))
	}
	loc, err := tc.Ensure(ctx)
	if err != nil {
		result.Status = StatusToolchainUnavailable
		return result, err
	}
	result.Toolchain = loc

	if err := workspace.Prepare(r.cfg.Paths.InputDir, r.cfg.Paths.OutputDir); err != nil {
		return result, err
	}

	stage := logger.With(logging.String(logging.FieldStage, "prepare"))
	stage.Info("clearing output folder", logging.String("dir", r.cfg.Paths.OutputDir))
	result.OutputCleared = workspace.ClearFiles(ctx, r.cfg.Paths.OutputDir, nil, stage)
	stage.Info("output folder cleared",
		logging.Int("removed", len(result.OutputCleared.Removed)),
		logging.Int("errors", len(result.OutputCleared.Errors)),
	)

	result.Ingest = r.ingesterFor(result.RunID).Ingest(ctx, r.cfg.Paths.InputDir)
	if err := ctx.Err(); err != nil {
		return r.finish(result, logger), err
	}

	result.Transcode = r.transcoderFor(loc, result.RunID).Run(ctx, r.cfg.Paths.InputDir, r.cfg.Paths.OutputDir)
	result = r.finish(result, logger)
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if result.Transcode.Err != nil {
		return result, result.Transcode.Err
	}

	result.InputCleared = r.cleanupInput(ctx, logger)
	return result, nil
}

func (r *Runner) finish(result Result, logger *slog.Logger) Result {
	result.Status = statusFor(result.Transcode)
	result.Duration = time.Since(result.Started)
	logger.Info("run finished",
		logging.String("status", string(result.Status)),
		logging.Int("tracks", result.Successes()),
		logging.Int("failed", result.Failures()),
		logging.Int("eligible", result.Eligible()),
		logging.Duration("duration", result.Duration),
	)
	RenderSummary(r.summaryOut, result)
	return result
}

func (r *Runner) ingesterFor(runID string) Ingester {
	if r.ingester != nil {
		return r.ingester
	}
	return ingest.New(r.cfg, logging.WithRunID(r.logger, runID))
}

func (r *Runner) transcoderFor(loc toolchain.Location, runID string) Transcoder {
	if r.newTranscoder != nil {
		return r.newTranscoder(loc)
	}
	return transcode.New(r.cfg, loc, logging.WithRunID(r.logger, runID))
}

// cleanupInput asks whether to clear the input folder. Any failure is logged
// and never changes the run outcome.
func (r *Runner) cleanupInput(ctx context.Context, logger *slog.Logger) *workspace.ClearResult {
	logger = logger.With(logging.String(logging.FieldStage, "cleanup"))
	if r.prompter == nil {
		logger.Info("input folder will not be cleared")
		return nil
	}

	confirmed, err := r.prompter.Confirm(ctx, cleanupQuestion)
	if err != nil {
		logging.WarnWithContext(logger, "could not read cleanup answer", "cleanup_prompt_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "input folder left untouched"),
		)
		return nil
	}
	if !confirmed {
		logger.Info("input folder will not be cleared")
		return nil
	}

	var keep workspace.KeepFunc
	if r.cfg.Cleanup.PreserveManifest {
		keep = workspace.KeepName(r.cfg.Ingest.ManifestName)
	}
	cleared := workspace.ClearFiles(ctx, r.cfg.Paths.InputDir, keep, logger)
	logger.Info("input folder cleared",
		logging.Int("removed", len(cleared.Removed)),
		logging.Int("kept", len(cleared.Kept)),
		logging.Int("errors", len(cleared.Errors)),
	)
	return &cleared
}
