// Package workspace prepares the input and output directories and clears the
// regular files inside them between runs.
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"trackprep/internal/logging"
)

// ClearResult contains the outcome of a directory clearing pass.
type ClearResult struct {
	Removed []string
	Kept    []string
	Errors  []ClearError
}

// ClearError pairs a path with its removal error.
type ClearError struct {
	Path  string
	Error error
}

// KeepFunc reports whether a file name must survive a clearing pass.
type KeepFunc func(name string) bool

// KeepName returns a KeepFunc that preserves name, compared case-insensitively.
func KeepName(name string) KeepFunc {
	return func(candidate string) bool {
		return strings.EqualFold(candidate, name)
	}
}

// Prepare creates each directory (and parents) when missing.
func Prepare(dirs ...string) error {
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ClearFiles removes the regular files directly inside dir. A symlink that
// resolves to a regular file is removed as a link; its target is untouched.
// Subdirectories, other symlinks and names accepted by keep are left alone.
// Failures are collected and logged; the pass continues with the next entry.
func ClearFiles(ctx context.Context, dir string, keep KeepFunc, logger *slog.Logger) ClearResult {
	result := ClearResult{}

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return result
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, ClearError{Path: dir, Error: err})
			warnClearFailure(logger, dir, err)
		}
		return result
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			result.Errors = append(result.Errors, ClearError{Path: dir, Error: ctx.Err()})
			return result
		}
		path := filepath.Join(dir, entry.Name())
		if !isFileEntry(path, entry) {
			continue
		}
		if keep != nil && keep(entry.Name()) {
			result.Kept = append(result.Kept, path)
			continue
		}
		if err := os.Remove(path); err != nil {
			result.Errors = append(result.Errors, ClearError{Path: path, Error: err})
			warnClearFailure(logger, path, err)
			continue
		}
		result.Removed = append(result.Removed, path)
		if logger != nil {
			logger.Debug("removed file", logging.String("path", path))
		}
	}
	return result
}

func isFileEntry(path string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func warnClearFailure(logger *slog.Logger, path string, err error) {
	logging.WarnWithContext(logger, "failed to remove file", "workspace_clear_failed",
		logging.String("path", path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check directory permissions"),
		logging.String(logging.FieldImpact, "stale file left in place"),
	)
}
