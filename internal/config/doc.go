// Package config loads, normalizes, and validates trackprep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TRACKPREP_YTDLP. The Config type centralizes every knob the pipeline and CLI
// need so input/output folders, the toolchain bundle, and the output profile are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical extensions, and clear validation errors.
package config
