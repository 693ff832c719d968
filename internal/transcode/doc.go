// Package transcode converts the eligible files of an input directory into a
// dense sequence of numbered OGG tracks.
//
// Enumerate captures the eligible inputs once, sorted by name. Batch.Run then
// encodes them one at a time into a hidden staging file, optionally verifies
// it with ffprobe and renames it to track{N}.ogg. The ordinal only advances on
// success, so a run with M successes always yields track1..trackM.
package transcode
