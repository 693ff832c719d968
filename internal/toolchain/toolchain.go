package toolchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"trackprep/internal/config"
	"trackprep/internal/deps"
	"trackprep/internal/logging"
)

var (
	commandContext = exec.CommandContext
	hostOS         = runtime.GOOS
)

var (
	// ErrUnavailable wraps every failure to provide a usable FFmpeg.
	ErrUnavailable = errors.New("ffmpeg toolchain unavailable")
	// ErrInstallIncomplete reports an install that finished without producing the binary.
	ErrInstallIncomplete = errors.New("ffmpeg binary missing after installation")
	// ErrUnsupportedBundle reports the default Windows bundle requested on another system.
	ErrUnsupportedBundle = errors.New("default ffmpeg bundle only contains Windows binaries")
)

// Source names the probe that resolved a Location.
type Source string

const (
	SourcePath      Source = "path"
	SourceLocal     Source = "local"
	SourceInstalled Source = "installed"
)

// Location identifies where the FFmpeg binaries live.
type Location struct {
	// Dir is empty when binaries resolve through PATH.
	Dir    string
	Source Source
	// ProbeMissing is set when output verification is enabled and ffprobe
	// cannot be launched from this location.
	ProbeMissing bool
}

// Binary returns the command to launch for name.
func (l Location) Binary(name string) string {
	if l.Dir == "" {
		return name
	}
	return filepath.Join(l.Dir, deps.ExecutableName(name))
}

// Manager resolves or installs FFmpeg for a run.
type Manager struct {
	installDir      string
	downloadURL     string
	folderPrefix    string
	downloadTimeout time.Duration
	checkProbe      bool
	client          *http.Client
	progressOut     *os.File
	logger          *slog.Logger
}

// Option customizes a Manager.
type Option func(*Manager)

// WithHTTPClient overrides the client used to download the bundle.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		if client != nil {
			m.client = client
		}
	}
}

// WithProgressOutput sets the terminal that receives the download progress bar.
// When out is nil or not a terminal, progress is logged instead.
func WithProgressOutput(out *os.File) Option {
	return func(m *Manager) {
		m.progressOut = out
	}
}

// NewManager builds a Manager from the toolchain section of cfg.
func NewManager(cfg *config.Config, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		installDir:      cfg.Toolchain.InstallDir,
		downloadURL:     cfg.Toolchain.DownloadURL,
		folderPrefix:    cfg.Toolchain.FolderPrefix,
		downloadTimeout: cfg.DownloadTimeout(),
		checkProbe:      cfg.Transcode.VerifyOutput,
		client:          &http.Client{},
		progressOut:     os.Stderr,
		logger:          logging.NewComponentLogger(logger, "toolchain"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Ensure returns a usable FFmpeg location, installing the bundle when neither
// PATH nor install_dir provides one. With output verification enabled it also
// checks ffprobe at the same location. Errors wrap ErrUnavailable.
func (m *Manager) Ensure(ctx context.Context) (Location, error) {
	loc, err := m.resolve(ctx)
	if err != nil {
		return Location{}, m.fail(err)
	}
	if m.checkProbe && !m.launchable(ctx, loc.Binary("ffprobe")) {
		loc.ProbeMissing = true
		logging.WarnWithContext(m.logger, "ffprobe not available; output verification disabled", "ffprobe_missing",
			logging.String("source", string(loc.Source)),
			logging.String("dir", loc.Dir),
			logging.String(logging.FieldImpact, "encoded tracks are not checked"),
		)
	}
	return loc, nil
}

func (m *Manager) resolve(ctx context.Context) (Location, error) {
	if m.launchable(ctx, "ffmpeg") {
		m.logger.Info("ffmpeg found on PATH", logging.String("source", string(SourcePath)))
		return Location{Source: SourcePath}, nil
	}

	loc, found, err := m.local()
	if err != nil {
		return Location{}, err
	}
	if found {
		m.logger.Info("ffmpeg already installed", logging.String("dir", loc.Dir))
		return loc, nil
	}

	if hostOS != "windows" && m.downloadURL == config.DefaultDownloadURL {
		return Location{}, fmt.Errorf("%w: install ffmpeg with the system package manager or set toolchain.download_url (running on %s)", ErrUnsupportedBundle, hostOS)
	}

	m.logger.Info("ffmpeg not found; starting automatic installation",
		logging.String("url", m.downloadURL),
		logging.String("install_dir", m.installDir),
	)
	if err := m.install(ctx); err != nil {
		return Location{}, err
	}

	if !deps.FileIsExecutable(m.binaryPath()) {
		return Location{}, fmt.Errorf("%w: expected %s", ErrInstallIncomplete, m.binaryPath())
	}
	loc = Location{Dir: m.binDir(), Source: SourceInstalled}
	m.logger.Info("ffmpeg installed successfully", logging.String("dir", loc.Dir))
	return loc, nil
}

// launchable reports whether "<binary> -version" can be started. A non-zero
// exit still proves the binary exists.
func (m *Manager) launchable(ctx context.Context, binary string) bool {
	cmd := commandContext(ctx, binary, "-version")
	err := cmd.Run()
	if err == nil {
		return true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		m.logger.Debug("-version exited non-zero", logging.String("binary", binary), logging.Error(err))
		return true
	}
	m.logger.Debug("binary not launchable", logging.String("binary", binary), logging.Error(err))
	return false
}

// local checks install_dir/bin for the binary. An install_dir that exists
// without it is an error so a broken install is never overwritten.
func (m *Manager) local() (Location, bool, error) {
	if deps.FileIsExecutable(m.binaryPath()) {
		return Location{Dir: m.binDir(), Source: SourceLocal}, true, nil
	}
	if _, err := os.Stat(m.installDir); err == nil {
		return Location{}, false, fmt.Errorf("%s exists but does not contain %s; remove it to reinstall", m.installDir, filepath.Join("bin", deps.ExecutableName("ffmpeg")))
	} else if !os.IsNotExist(err) {
		return Location{}, false, fmt.Errorf("stat install dir: %w", err)
	}
	return Location{}, false, nil
}

func (m *Manager) fail(err error) error {
	logging.ErrorWithContext(m.logger, "ffmpeg is not available", "toolchain_unavailable",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "install ffmpeg on PATH or check toolchain.download_url"),
	)
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func (m *Manager) binDir() string {
	return filepath.Join(m.installDir, "bin")
}

func (m *Manager) binaryPath() string {
	return filepath.Join(m.binDir(), deps.ExecutableName("ffmpeg"))
}
