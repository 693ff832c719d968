package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"trackprep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Prompting is disabled so runs never block on stdin.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LockFile = filepath.Join(base, ".trackprep.lock")
	cfgVal.Toolchain.InstallDir = filepath.Join(base, "ffmpeg")
	cfgVal.Cleanup.Prompt = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithLogDir enables the JSON log file under the temp base.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// WithStubbedBinaries writes stub executables that exit 0 and prepends their
// directory to PATH. If names is empty, ffmpeg and ffprobe are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		for _, name := range names {
			WriteStub(b.t, b.binDir(), name, "exit 0")
		}
		PrependPath(b.t, b.binDir())
	}
}

// WithLocalToolchain places a stub ffmpeg under install_dir/bin, as an
// earlier install would have left it.
func WithLocalToolchain() ConfigOption {
	return func(b *configBuilder) {
		WriteStub(b.t, b.cfg.FFmpegBinDir(), "ffmpeg", "exit 0")
	}
}

func (b *configBuilder) binDir() string {
	return filepath.Join(b.baseDir, "bin")
}

// WriteStub writes an executable shell script named name into dir with the
// given body and returns its path.
func WriteStub(t testing.TB, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	target := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// PrependPath puts dir first on PATH for the duration of the test.
func PrependPath(t testing.TB, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// IsolatePath replaces PATH with an empty directory so no real binaries are found.
func IsolatePath(t testing.TB) {
	t.Helper()
	t.Setenv("PATH", t.TempDir())
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
