// Package fileutil holds small filesystem helpers shared by the installer and
// workspace code.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyDir recursively copies src into dst, preserving file modes. dst must not
// exist. Symlinks are skipped.
func CopyDir(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("copy dir: destination %s already exists", dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("copy dir: stat destination: %w", err)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case info.Mode().IsRegular():
			return CopyFileMode(path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
}

// MoveDir renames src to dst, falling back to copy and remove when the rename
// crosses filesystems.
func MoveDir(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("move dir: ensure parent: %w", err)
	}
	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(renameErr, &linkErr) {
		return fmt.Errorf("move dir: %w", renameErr)
	}
	if err := CopyDir(src, dst); err != nil {
		_ = os.RemoveAll(dst)
		return fmt.Errorf("move dir: rename failed (%v), copy failed: %w", renameErr, err)
	}
	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("move dir: remove source after copy: %w", err)
	}
	return nil
}
