package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeToolchain(); err != nil {
		return err
	}
	c.normalizeIngest()
	c.normalizeTranscode()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile
	}
	if c.Paths.LockFile, err = expandPath(strings.TrimSpace(c.Paths.LockFile)); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeToolchain() error {
	var err error
	if strings.TrimSpace(c.Toolchain.InstallDir) == "" {
		c.Toolchain.InstallDir = defaultInstallDir
	}
	if c.Toolchain.InstallDir, err = expandPath(strings.TrimSpace(c.Toolchain.InstallDir)); err != nil {
		return fmt.Errorf("toolchain.install_dir: %w", err)
	}
	if value, ok := os.LookupEnv("TRACKPREP_FFMPEG_URL"); ok && strings.TrimSpace(value) != "" {
		c.Toolchain.DownloadURL = value
	}
	c.Toolchain.DownloadURL = strings.TrimSpace(c.Toolchain.DownloadURL)
	if c.Toolchain.DownloadURL == "" {
		c.Toolchain.DownloadURL = DefaultDownloadURL
	}
	c.Toolchain.FolderPrefix = strings.TrimSpace(c.Toolchain.FolderPrefix)
	if c.Toolchain.FolderPrefix == "" {
		c.Toolchain.FolderPrefix = defaultFolderPrefix
	}
	if c.Toolchain.DownloadTimeout == 0 {
		c.Toolchain.DownloadTimeout = defaultDownloadTimeout
	}
	return nil
}

func (c *Config) normalizeIngest() {
	c.Ingest.ManifestName = strings.TrimSpace(c.Ingest.ManifestName)
	if c.Ingest.ManifestName == "" {
		c.Ingest.ManifestName = defaultManifestName
	}
	if value, ok := os.LookupEnv("TRACKPREP_YTDLP"); ok && strings.TrimSpace(value) != "" {
		c.Ingest.Binary = value
	}
	c.Ingest.Binary = strings.TrimSpace(c.Ingest.Binary)
	if c.Ingest.Binary == "" {
		c.Ingest.Binary = defaultYTDLPBinary
	}
	c.Ingest.AudioFormat = strings.ToLower(strings.TrimSpace(c.Ingest.AudioFormat))
	if c.Ingest.AudioFormat == "" {
		c.Ingest.AudioFormat = defaultAudioFormat
	}
	c.Ingest.OutputTemplate = strings.TrimSpace(c.Ingest.OutputTemplate)
	if c.Ingest.OutputTemplate == "" {
		c.Ingest.OutputTemplate = defaultOutputTemplate
	}
}

func (c *Config) normalizeTranscode() {
	if len(c.Transcode.Extensions) == 0 {
		c.Transcode.Extensions = DefaultExtensions()
	}
	seen := make(map[string]struct{}, len(c.Transcode.Extensions))
	exts := make([]string, 0, len(c.Transcode.Extensions))
	for _, ext := range c.Transcode.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	c.Transcode.Extensions = exts
	c.Transcode.SampleFormat = strings.ToLower(strings.TrimSpace(c.Transcode.SampleFormat))
	if c.Transcode.SampleFormat == "" {
		c.Transcode.SampleFormat = defaultSampleFormat
	}
	c.Transcode.Codec = strings.TrimSpace(c.Transcode.Codec)
	if c.Transcode.Codec == "" {
		c.Transcode.Codec = defaultCodec
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
