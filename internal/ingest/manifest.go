package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Manifest is the ordered list of URLs read from the manifest file.
type Manifest struct {
	Path string
	URLs []string
}

// LoadManifest reads the manifest at path. Lines are trimmed; blank lines and
// lines starting with '#' are skipped; order is preserved. The boolean is
// false when the file does not exist.
func LoadManifest(path string) (Manifest, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{Path: path}, false, nil
		}
		return Manifest{Path: path}, false, fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()

	manifest := Manifest{Path: path}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		manifest.URLs = append(manifest.URLs, line)
	}
	if err := scanner.Err(); err != nil {
		return manifest, true, fmt.Errorf("read manifest: %w", err)
	}
	return manifest, true, nil
}
