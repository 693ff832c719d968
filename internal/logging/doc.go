// Package logging assembles structured slog loggers and formatting helpers used
// across trackprep.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// tees records into an optional JSON log file, and tags every record of a run
// with its correlation id. The package also provides a no-op logger for tests
// and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the pipeline.
package logging
