package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"trackprep/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantInput := filepath.Join(workDir, "input")
	if cfg.Paths.InputDir != wantInput {
		t.Fatalf("unexpected input dir: got %q want %q", cfg.Paths.InputDir, wantInput)
	}
	if cfg.Paths.OutputDir != filepath.Join(workDir, "output") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Toolchain.InstallDir != filepath.Join(workDir, "ffmpeg") {
		t.Fatalf("unexpected install dir: %q", cfg.Toolchain.InstallDir)
	}
	if cfg.FFmpegBinDir() != filepath.Join(workDir, "ffmpeg", "bin") {
		t.Fatalf("unexpected bin dir: %q", cfg.FFmpegBinDir())
	}
	if cfg.ManifestPath() != filepath.Join(wantInput, "url_list.txt") {
		t.Fatalf("unexpected manifest path: %q", cfg.ManifestPath())
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected empty log dir, got %q", cfg.Paths.LogDir)
	}
	if cfg.Transcode.SampleRate != 44100 || cfg.Transcode.Channels != 1 {
		t.Fatalf("unexpected profile: %+v", cfg.Transcode)
	}
	if len(cfg.Transcode.Extensions) != 12 {
		t.Fatalf("expected 12 default extensions, got %v", cfg.Transcode.Extensions)
	}
	if !cfg.Cleanup.PreserveManifest {
		t.Fatal("expected manifest to be preserved by default")
	}
	if cfg.DownloadTimeout().Seconds() != 600 {
		t.Fatalf("unexpected download timeout: %v", cfg.DownloadTimeout())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	configPath := filepath.Join(tempDir, "trackprep.toml")

	type payload struct {
		Paths struct {
			InputDir  string `toml:"input_dir"`
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Transcode struct {
			Extensions []string `toml:"extensions"`
		} `toml:"transcode"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.InputDir = "~/music/in"
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Transcode.Extensions = []string{"MP3", ".Flac", "mp3", " "}
	custom.Logging.Level = "DEBUG"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.InputDir != filepath.Join(tempDir, "music", "in") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.InputDir)
	}
	want := []string{".mp3", ".flac"}
	if strings.Join(cfg.Transcode.Extensions, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected extensions: %v", cfg.Transcode.Extensions)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected level to be normalized, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "trackprep.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nnot_a_field = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected parse error for unknown field")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("TRACKPREP_YTDLP", "/opt/yt-dlp")
	t.Setenv("TRACKPREP_FFMPEG_URL", "https://mirror.example.com/ffmpeg.zip")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Ingest.Binary != "/opt/yt-dlp" {
		t.Fatalf("expected yt-dlp override, got %q", cfg.Ingest.Binary)
	}
	if cfg.Toolchain.DownloadURL != "https://mirror.example.com/ffmpeg.zip" {
		t.Fatalf("expected download url override, got %q", cfg.Toolchain.DownloadURL)
	}
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"same dirs", func(c *config.Config) { c.Paths.OutputDir = c.Paths.InputDir }},
		{"bad url scheme", func(c *config.Config) { c.Toolchain.DownloadURL = "ftp://example.com/x.zip" }},
		{"manifest with dir", func(c *config.Config) { c.Ingest.ManifestName = "sub/urls.txt" }},
		{"no extensions", func(c *config.Config) { c.Transcode.Extensions = nil }},
		{"zero rate", func(c *config.Config) { c.Transcode.SampleRate = 0 }},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.InputDir = "/tmp/in"
			cfg.Paths.OutputDir = "/tmp/out"
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Ingest.ManifestName != "url_list.txt" {
		t.Fatalf("unexpected manifest name: %q", cfg.Ingest.ManifestName)
	}
}
