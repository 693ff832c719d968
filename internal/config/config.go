package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the working folders used by a run.
type Paths struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	LockFile  string `toml:"lock_file"`
}

// Toolchain describes where FFmpeg is installed and where the bundle comes from.
type Toolchain struct {
	InstallDir      string `toml:"install_dir"`
	DownloadURL     string `toml:"download_url"`
	FolderPrefix    string `toml:"folder_prefix"`
	DownloadTimeout int    `toml:"download_timeout"`
}

// Ingest contains configuration for URL manifest ingestion.
type Ingest struct {
	ManifestName   string `toml:"manifest_name"`
	Binary         string `toml:"binary"`
	AutoInstall    bool   `toml:"auto_install"`
	AudioFormat    string `toml:"audio_format"`
	OutputTemplate string `toml:"output_template"`
}

// Transcode contains the eligible extensions and the normalized output profile.
type Transcode struct {
	Extensions   []string `toml:"extensions"`
	SampleRate   int      `toml:"sample_rate"`
	Channels     int      `toml:"channels"`
	SampleFormat string   `toml:"sample_format"`
	Codec        string   `toml:"codec"`
	VerifyOutput bool     `toml:"verify_output"`
}

// Cleanup controls the post-run input folder prompt.
type Cleanup struct {
	Prompt           bool `toml:"prompt"`
	PreserveManifest bool `toml:"preserve_manifest"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for trackprep.
//
// Configuration sections by subsystem:
//   - Paths: input/output folders, optional log directory, run lock
//   - Toolchain: FFmpeg install location and bundle source
//   - Ingest: URL manifest and yt-dlp settings
//   - Transcode: eligible extensions and output profile
//   - Cleanup: input folder prompt behaviour
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Toolchain Toolchain `toml:"toolchain"`
	Ingest    Ingest    `toml:"ingest"`
	Transcode Transcode `toml:"transcode"`
	Cleanup   Cleanup   `toml:"cleanup"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultUserConfigSuffix)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultUserConfigSuffix)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(defaultProjectFileName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories needed before logging starts.
// Input and output folders are created by the pipeline once the toolchain gate passes.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.LockFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DownloadTimeout returns the toolchain download timeout as a duration.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Toolchain.DownloadTimeout) * time.Second
}

// ManifestPath returns the absolute path of the URL manifest inside the input folder.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Paths.InputDir, c.Ingest.ManifestName)
}

// FFmpegBinDir returns the conventional binary directory of a local toolchain install.
func (c *Config) FFmpegBinDir() string {
	return filepath.Join(c.Toolchain.InstallDir, "bin")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
