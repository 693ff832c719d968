package ingest

import (
	"context"
	"log/slog"
	"path/filepath"

	"trackprep/internal/config"
	"trackprep/internal/logging"
)

// Outcome records the result of one manifest URL.
type Outcome struct {
	Index int
	URL   string
	Err   error
}

// Report aggregates one ingestion pass.
type Report struct {
	ManifestFound bool
	Outcomes      []Outcome
	// Err is set when the manifest exists but could not be read.
	Err error
}

// Succeeded counts URLs that downloaded without error.
func (r Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts URLs that returned an error.
func (r Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Ingester processes the manifest in an input directory.
type Ingester struct {
	cfg       config.Ingest
	extractor Extractor
	logger    *slog.Logger
}

// Option customizes an Ingester.
type Option func(*Ingester)

// WithExtractor replaces yt-dlp resolution with the given extractor.
func WithExtractor(extractor Extractor) Option {
	return func(i *Ingester) {
		i.extractor = extractor
	}
}

// New builds an Ingester from the ingest section of cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Ingester {
	i := &Ingester{
		cfg:    cfg.Ingest,
		logger: logging.NewComponentLogger(logger, "ingest"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ingest downloads every manifest URL into inputDir, one at a time. Missing
// manifests are a no-op. Cancellation stops before the next URL.
func (i *Ingester) Ingest(ctx context.Context, inputDir string) Report {
	path := filepath.Join(inputDir, i.cfg.ManifestName)
	manifest, found, err := LoadManifest(path)
	report := Report{ManifestFound: found}
	if err != nil {
		report.Err = err
		logging.ErrorWithContext(i.logger, "manifest unreadable; skipping URL processing", "manifest_read_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the manifest file permissions and encoding"),
		)
		return report
	}
	if !found {
		i.logger.Info("no manifest found; skipping URL processing", logging.String("manifest", i.cfg.ManifestName))
		return report
	}

	total := len(manifest.URLs)
	i.logger.Info("processing manifest", logging.String("manifest", i.cfg.ManifestName), logging.Int("urls", total))
	if total == 0 {
		return report
	}

	extractor, resolveErr := i.resolve(ctx)
	for idx, url := range manifest.URLs {
		if ctx.Err() != nil {
			i.logger.Info("ingestion cancelled", logging.Int("remaining", total-idx))
			break
		}
		outcome := Outcome{Index: idx + 1, URL: url}
		logger := i.logger.With(logging.Int(logging.FieldIndex, outcome.Index), logging.Int("total", total), logging.String(logging.FieldSource, url))
		logger.Info("downloading url")

		if resolveErr != nil {
			outcome.Err = resolveErr
		} else {
			outcome.Err = extractor.Extract(ctx, url, inputDir)
		}

		if outcome.Err != nil {
			logging.WarnWithContext(logger, "could not download url", "ingest_url_failed",
				logging.Error(outcome.Err),
				logging.String(logging.FieldErrorHint, "check the URL and that yt-dlp is up to date"),
				logging.String(logging.FieldImpact, "no audio for this URL"),
			)
		} else {
			logger.Info("audio downloaded")
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	i.logger.Info("manifest processed",
		logging.Int("succeeded", report.Succeeded()),
		logging.Int("failed", report.Failed()),
	)
	return report
}

func (i *Ingester) resolve(ctx context.Context) (Extractor, error) {
	if i.extractor != nil {
		return i.extractor, nil
	}
	extractor, err := ResolveExtractor(ctx, i.cfg, i.logger)
	if err != nil {
		logging.WarnWithContext(i.logger, "yt-dlp unavailable", "extractor_unavailable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install yt-dlp, set ingest.binary, or enable ingest.auto_install"),
			logging.String(logging.FieldImpact, "manifest URLs will not be downloaded"),
		)
		return nil, err
	}
	return extractor, nil
}
