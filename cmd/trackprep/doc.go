// Package main hosts the trackprep CLI entrypoint and command graph.
//
// Running trackprep with no subcommand performs one pipeline run: resolve
// FFmpeg, download the URLs listed in the input manifest, transcode every
// eligible input file into numbered OGG tracks, then offer to clear the input
// folder. Subcommands cover diagnostics (status), configuration scaffolding
// (config) and installing the toolchain ahead of time (toolchain install).
//
// Keep this package lean: behaviour lives in the internal packages and is
// surfaced here through flags and exit codes.
package main
