package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	SampleFmt     string `json:"sample_fmt"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	ChannelLayout string `json:"channel_layout"`
	Duration      string `json:"duration"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// Expectation is the audio shape an inspected file must have.
type Expectation struct {
	Codec      string
	SampleRate int
	Channels   int
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := commandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// AudioStreams returns the audio streams in container order.
func (r Result) AudioStreams() []Stream {
	var streams []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			streams = append(streams, stream)
		}
	}
	return streams
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

// SampleRateHz parses the stream sample rate, returning 0 when unavailable.
func (s Stream) SampleRateHz() int {
	rate, err := strconv.Atoi(strings.TrimSpace(s.SampleRate))
	if err != nil {
		return 0
	}
	return rate
}

// CheckAudio reports an error unless the result holds exactly one audio
// stream and no other streams, matching want. Zero fields in want are not checked.
func CheckAudio(r Result, want Expectation) error {
	audio := r.AudioStreams()
	if len(audio) != 1 {
		return fmt.Errorf("expected 1 audio stream, found %d", len(audio))
	}
	if extra := len(r.Streams) - len(audio); extra > 0 {
		return fmt.Errorf("expected audio only, found %d other stream(s)", extra)
	}
	stream := audio[0]
	if want.Codec != "" && !codecMatches(stream.CodecName, want.Codec) {
		return fmt.Errorf("codec %q, expected %q", stream.CodecName, want.Codec)
	}
	if want.SampleRate > 0 && stream.SampleRateHz() != want.SampleRate {
		return fmt.Errorf("sample rate %s, expected %d", stream.SampleRate, want.SampleRate)
	}
	if want.Channels > 0 && stream.Channels != want.Channels {
		return fmt.Errorf("channels %d, expected %d", stream.Channels, want.Channels)
	}
	return nil
}

// codecMatches compares an ffprobe codec name with an encoder name, so that
// "vorbis" satisfies "libvorbis".
func codecMatches(probed, encoder string) bool {
	probed = strings.ToLower(strings.TrimSpace(probed))
	encoder = strings.ToLower(strings.TrimSpace(encoder))
	return probed == encoder || "lib"+probed == encoder
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
