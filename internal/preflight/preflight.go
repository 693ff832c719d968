package preflight

import (
	"context"
	"path/filepath"

	"trackprep/internal/config"
	"trackprep/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the directory checks and, when FFmpeg is not yet available,
// the toolchain download reachability check.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Input directory", cfg.Paths.InputDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	if !ffmpegPresent(cfg) {
		results = append(results, CheckDownloadURL(ctx, cfg.Toolchain.DownloadURL))
	}
	return results
}

// CheckSystemDeps evaluates the external binaries for the given config. FFmpeg
// and FFprobe resolve to the local install when present, else to PATH.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     toolchainCommand(cfg, "ffmpeg"),
			Description: "Required for transcoding",
		},
		{
			Name:        "FFprobe",
			Command:     toolchainCommand(cfg, "ffprobe"),
			Description: "Verifies encoded tracks",
			Optional:    !cfg.Transcode.VerifyOutput,
		},
		{
			Name:        "yt-dlp",
			Command:     cfg.Ingest.Binary,
			Description: "Downloads URLs listed in " + cfg.Ingest.ManifestName,
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}

func toolchainCommand(cfg *config.Config, name string) string {
	local := filepath.Join(cfg.FFmpegBinDir(), deps.ExecutableName(name))
	if deps.FileIsExecutable(local) {
		return local
	}
	return name
}

func ffmpegPresent(cfg *config.Config) bool {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "FFmpeg", Command: toolchainCommand(cfg, "ffmpeg")}})
	return statuses[0].Available
}
