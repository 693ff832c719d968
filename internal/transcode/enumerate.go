package transcode

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is an eligible input file.
type Source struct {
	Path string
	Name string
	Size int64
}

// Enumerate lists the regular files directly inside dir whose extension is in
// extensions (compared case-insensitively), excluding manifestName. The
// result is sorted by file name.
func Enumerate(dir string, extensions []string, manifestName string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var sources []Source
	for _, entry := range entries {
		name := entry.Name()
		if strings.EqualFold(name, manifestName) {
			continue
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		sources = append(sources, Source{Path: path, Name: name, Size: info.Size()})
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})
	return sources, nil
}
