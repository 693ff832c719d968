package ffprobe

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strings"
	"testing"
)

const vorbisMonoJSON = `{"streams":[{"index":0,"codec_name":"vorbis","codec_type":"audio","sample_fmt":"fltp","sample_rate":"44100","channels":1,"channel_layout":"mono"}],"format":{"filename":"track1.ogg","nb_streams":1,"duration":"3.500000","size":"20480","format_name":"ogg"}}`

func stubProbe(t *testing.T, mode string, captured *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append([]string{name}, args...)
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFPROBE_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestInspectDecodesJSON(t *testing.T) {
	var args []string
	stubProbe(t, "vorbis", &args)

	result, err := Inspect(context.Background(), "/opt/ffmpeg/bin/ffprobe", "/out/.track1.ogg.partial")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if args[0] != "/opt/ffmpeg/bin/ffprobe" || args[len(args)-1] != "/out/.track1.ogg.partial" {
		t.Fatalf("unexpected command: %v", args)
	}
	if len(result.AudioStreams()) != 1 {
		t.Fatalf("expected one audio stream, got %+v", result.Streams)
	}
	if result.DurationSeconds() != 3.5 || result.SizeBytes() != 20480 {
		t.Fatalf("unexpected format: %+v", result.Format)
	}
	if err := CheckAudio(result, Expectation{Codec: "libvorbis", SampleRate: 44100, Channels: 1}); err != nil {
		t.Fatalf("expected audio check to pass: %v", err)
	}
}

func TestInspectReportsStderr(t *testing.T) {
	stubProbe(t, "failure", nil)

	_, err := Inspect(context.Background(), "", "/missing.ogg")
	if err == nil || !strings.Contains(err.Error(), "Invalid data") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestCheckAudio(t *testing.T) {
	want := Expectation{Codec: "libvorbis", SampleRate: 44100, Channels: 1}
	mono := Stream{CodecType: "audio", CodecName: "vorbis", SampleRate: "44100", Channels: 1}
	tests := []struct {
		name    string
		streams []Stream
		wantErr bool
	}{
		{"match", []Stream{mono}, false},
		{"no audio", nil, true},
		{"two audio", []Stream{mono, mono}, true},
		{"extra video", []Stream{mono, {CodecType: "video"}}, true},
		{"stereo", []Stream{{CodecType: "audio", CodecName: "vorbis", SampleRate: "44100", Channels: 2}}, true},
		{"rate", []Stream{{CodecType: "audio", CodecName: "vorbis", SampleRate: "48000", Channels: 1}}, true},
		{"codec", []Stream{{CodecType: "audio", CodecName: "opus", SampleRate: "44100", Channels: 1}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckAudio(Result{Streams: tc.streams}, want)
			if (err != nil) != tc.wantErr {
				t.Fatalf("CheckAudio error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{Format: Format{Duration: "bad", Size: "-1"}}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if (Stream{SampleRate: "n/a"}).SampleRateHz() != 0 {
		t.Fatal("expected unparsable sample rate to be 0")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("FFPROBE_HELPER_MODE") {
	case "vorbis":
		fmt.Println(vorbisMonoJSON)
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "/missing.ogg: Invalid data found when processing input")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
