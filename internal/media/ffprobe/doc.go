// Package ffprobe wraps the ffprobe CLI to inspect encoded tracks.
//
// Inspect runs ffprobe with JSON output and decodes the streams and format
// sections. CheckAudio compares the result against the expected audio
// profile so the transcoder can reject an encode that produced the wrong
// shape before it is published under its final name.
package ffprobe
