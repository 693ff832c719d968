package toolchain

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"trackprep/internal/fileutil"
	"trackprep/internal/logging"
)

// install downloads the bundle into a temp dir beside install_dir, unpacks
// it and moves the prefixed top-level folder into place.
func (m *Manager) install(ctx context.Context) error {
	parent := filepath.Dir(m.installDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create install parent: %w", err)
	}
	tmpDir, err := os.MkdirTemp(parent, ".trackprep-ffmpeg-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archive := filepath.Join(tmpDir, "ffmpeg.zip")
	if err := m.download(ctx, archive); err != nil {
		return err
	}

	m.logger.Info("unpacking ffmpeg")
	extractDir := filepath.Join(tmpDir, "extract")
	if err := extractZip(ctx, archive, extractDir); err != nil {
		return err
	}

	folder, err := selectFolder(extractDir, m.folderPrefix)
	if err != nil {
		return err
	}
	if err := fileutil.MoveDir(folder, m.installDir); err != nil {
		return fmt.Errorf("move %s into place: %w", filepath.Base(folder), err)
	}
	return nil
}

func (m *Manager) download(ctx context.Context, dest string) error {
	if m.downloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.downloadTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.downloadURL, nil)
	if err != nil {
		return fmt.Errorf("download ffmpeg: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("download ffmpeg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download ffmpeg: unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}
	defer out.Close()

	progress := m.newProgress(resp.ContentLength)
	written, err := io.Copy(io.MultiWriter(out, progress), resp.Body)
	progress.Finish()
	if err != nil {
		return fmt.Errorf("download ffmpeg: %w", err)
	}
	if resp.ContentLength > 0 && written != resp.ContentLength {
		return fmt.Errorf("download ffmpeg: received %d of %d bytes", written, resp.ContentLength)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write archive file: %w", err)
	}

	m.logger.Info("ffmpeg bundle downloaded", logging.String("size", humanize.Bytes(uint64(written))))
	return nil
}

// extractZip unpacks archive into dest, keeping file modes. Entries that
// would land outside dest are rejected and symlinks are skipped.
func extractZip(ctx context.Context, archive, dest string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open ffmpeg archive: %w", err)
	}
	defer reader.Close()

	root := filepath.Clean(dest) + string(os.PathSeparator)
	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := filepath.Join(dest, filepath.FromSlash(file.Name))
		if !strings.HasPrefix(target+string(os.PathSeparator), root) {
			return fmt.Errorf("archive entry %q escapes extraction directory", file.Name)
		}
		mode := file.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", file.Name, err)
			}
		case mode&os.ModeSymlink != 0:
			continue
		default:
			if err := extractFile(file, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func extractFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(file.Name), err)
	}
	perm := file.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", file.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", file.Name, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", file.Name, err)
	}
	return out.Close()
}

// selectFolder returns the first top-level directory (in name order) whose
// name starts with prefix.
func selectFolder(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("archive is empty; no %s* folder found", prefix)
		}
		return "", fmt.Errorf("read extracted archive: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("could not find a %s* folder in the archive", prefix)
}
