package transcode

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"trackprep/internal/config"
	"trackprep/internal/media/ffprobe"
)

var commandContext = exec.CommandContext

// Encoder converts src into an OGG file at dst.
type Encoder interface {
	Encode(ctx context.Context, src, dst string) error
}

// Verifier checks an encoded file before it is published.
type Verifier interface {
	Verify(ctx context.Context, path string) error
}

// Profile is the fixed output audio shape.
type Profile struct {
	SampleRate   int
	Channels     int
	SampleFormat string
	Codec        string
}

// ProfileFromConfig extracts the output profile from the transcode section.
func ProfileFromConfig(cfg config.Transcode) Profile {
	return Profile{
		SampleRate:   cfg.SampleRate,
		Channels:     cfg.Channels,
		SampleFormat: cfg.SampleFormat,
		Codec:        cfg.Codec,
	}
}

// FFmpeg encodes with the ffmpeg CLI.
type FFmpeg struct {
	binary  string
	profile Profile
}

// NewFFmpeg builds an encoder that runs binary with profile.
func NewFFmpeg(binary string, profile Profile) *FFmpeg {
	return &FFmpeg{binary: binary, profile: profile}
}

// Args returns the ffmpeg arguments for one conversion. The first audio
// stream is kept; metadata is dropped and bit-exact flags are set so the same
// input always yields the same bytes.
func (f *FFmpeg) Args(src, dst string) []string {
	return []string{
		"-nostdin",
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", strconv.Itoa(f.profile.Channels),
		"-ar", strconv.Itoa(f.profile.SampleRate),
		"-af", "aformat=sample_fmts=" + f.profile.SampleFormat,
		"-c:a", f.profile.Codec,
		"-map_metadata", "-1",
		"-fflags", "+bitexact",
		"-flags:a", "+bitexact",
		"-f", "ogg",
		dst,
	}
}

// Encode runs ffmpeg and reports its output on failure.
func (f *FFmpeg) Encode(ctx context.Context, src, dst string) error {
	cmd := commandContext(ctx, f.binary, f.Args(src, dst)...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg encode: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg encode: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ProbeVerifier checks encoded files with ffprobe.
type ProbeVerifier struct {
	binary string
	want   ffprobe.Expectation
}

// NewProbeVerifier builds a verifier that expects profile from binary's report.
func NewProbeVerifier(binary string, profile Profile) *ProbeVerifier {
	return &ProbeVerifier{
		binary: binary,
		want: ffprobe.Expectation{
			Codec:      profile.Codec,
			SampleRate: profile.SampleRate,
			Channels:   profile.Channels,
		},
	}
}

// Verify inspects path and compares it with the expected profile.
func (v *ProbeVerifier) Verify(ctx context.Context, path string) error {
	result, err := ffprobe.Inspect(ctx, v.binary, path)
	if err != nil {
		return fmt.Errorf("verify output: %w", err)
	}
	if err := ffprobe.CheckAudio(result, v.want); err != nil {
		return fmt.Errorf("verify output: %w", err)
	}
	return nil
}
