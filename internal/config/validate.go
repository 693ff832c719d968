package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateToolchain(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == "" {
		return errors.New("paths.input_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if filepath.Clean(c.Paths.InputDir) == filepath.Clean(c.Paths.OutputDir) {
		return errors.New("paths.input_dir and paths.output_dir must differ")
	}
	return nil
}

func (c *Config) validateToolchain() error {
	parsed, err := url.Parse(c.Toolchain.DownloadURL)
	if err != nil {
		return fmt.Errorf("toolchain.download_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("toolchain.download_url must use http or https, got %q", c.Toolchain.DownloadURL)
	}
	if c.Toolchain.DownloadTimeout < 0 {
		return errors.New("toolchain.download_timeout must be positive")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if strings.ContainsAny(c.Ingest.ManifestName, `/\`) {
		return fmt.Errorf("ingest.manifest_name must be a bare file name, got %q", c.Ingest.ManifestName)
	}
	if strings.ContainsAny(c.Ingest.OutputTemplate, `/\`) {
		return fmt.Errorf("ingest.output_template must not contain directories, got %q", c.Ingest.OutputTemplate)
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if len(c.Transcode.Extensions) == 0 {
		return errors.New("transcode.extensions must list at least one extension")
	}
	if c.Transcode.SampleRate <= 0 {
		return errors.New("transcode.sample_rate must be positive")
	}
	if c.Transcode.Channels <= 0 {
		return errors.New("transcode.channels must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
