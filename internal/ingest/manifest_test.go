package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "url_list.txt")
	content := "\ufeffhttps://a.example/1\n\n   \n# comment\n  https://b.example/2  \r\nhttps://a.example/1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	manifest, found, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !found {
		t.Fatal("expected manifest to be found")
	}
	want := []string{"https://a.example/1", "https://b.example/2", "https://a.example/1"}
	if !reflect.DeepEqual(manifest.URLs, want) {
		t.Fatalf("unexpected urls: %q", manifest.URLs)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	manifest, found, err := LoadManifest(filepath.Join(t.TempDir(), "url_list.txt"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if found || len(manifest.URLs) != 0 {
		t.Fatalf("expected missing manifest, got found=%v %+v", found, manifest)
	}
}

func TestLoadManifestDirectoryIsError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "url_list.txt")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadManifest(dir); err == nil {
		t.Fatal("expected error reading a directory")
	}
}
