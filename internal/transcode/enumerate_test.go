package transcode

import (
	"os"
	"path/filepath"
	"testing"

	"trackprep/internal/config"
	"trackprep/internal/testsupport"
)

func sourceNames(sources []Source) []string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
	}
	return names
}

func TestEnumerateFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, "b.flac", "a.mp3", "C.WAV", "notes.txt", "url_list.txt", "cover.jpg", "noext")
	if err := os.Mkdir(filepath.Join(dir, "folder.mp3"), 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteFiles(t, filepath.Join(dir, "nested"), "deep.mp3")

	sources, err := Enumerate(dir, config.DefaultExtensions(), "url_list.txt")
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	got := sourceNames(sources)
	want := []string{"C.WAV", "a.mp3", "b.flac"}
	if len(got) != len(want) {
		t.Fatalf("unexpected sources: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v want %v", got, want)
		}
	}
	if sources[1].Path != filepath.Join(dir, "a.mp3") || sources[1].Size != 16 {
		t.Fatalf("unexpected source metadata: %+v", sources[1])
	}
}

func TestEnumerateExcludesManifestCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, "URL_List.TXT", "song.txt")

	sources, err := Enumerate(dir, []string{".txt"}, "url_list.txt")
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if got := sourceNames(sources); len(got) != 1 || got[0] != "song.txt" {
		t.Fatalf("expected manifest to be excluded, got %v", got)
	}
}

func TestEnumerateFollowsFileSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.mp3")
	testsupport.WriteFile(t, target, 8)
	if err := os.Symlink(target, filepath.Join(dir, "link.mp3")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(t.TempDir(), filepath.Join(dir, "dirlink.mp3")); err != nil {
		t.Fatal(err)
	}

	sources, err := Enumerate(dir, config.DefaultExtensions(), "url_list.txt")
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if got := sourceNames(sources); len(got) != 1 || got[0] != "link.mp3" {
		t.Fatalf("expected only the file symlink, got %v", got)
	}
}

func TestEnumerateMissingDirectory(t *testing.T) {
	if _, err := Enumerate(filepath.Join(t.TempDir(), "absent"), config.DefaultExtensions(), "url_list.txt"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
