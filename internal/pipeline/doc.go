// Package pipeline runs one end-to-end conversion: toolchain gate, directory
// preparation, output clearing, URL ingestion, batch transcoding, a summary
// and the optional input cleanup prompt.
//
// Only the toolchain gate, the run lock and directory creation can abort a
// run. Per-URL and per-file problems are recorded in the Result and decide
// its Status.
package pipeline
