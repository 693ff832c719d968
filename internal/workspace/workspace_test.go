package workspace

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"trackprep/internal/logging"
	"trackprep/internal/testsupport"
)

func TestPrepareCreatesNestedDirectories(t *testing.T) {
	base := t.TempDir()
	in := filepath.Join(base, "a", "input")
	out := filepath.Join(base, "b", "output")

	if err := Prepare(in, "", out); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	for _, dir := range []string{in, out} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s, err=%v", dir, err)
		}
	}
	if err := Prepare(in); err != nil {
		t.Fatalf("Prepare should be idempotent: %v", err)
	}
}

func TestPrepareFailsWhenPathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	testsupport.WriteFile(t, file, 1)
	if err := Prepare(file); err == nil {
		t.Fatal("expected error when a file blocks the directory")
	}
}

func TestClearFilesRemovesOnlyRegularFiles(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, "track1.ogg", "track2.ogg", "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "keepdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteFiles(t, filepath.Join(dir, "keepdir"), "nested.ogg")

	result := ClearFiles(context.Background(), dir, nil, logging.NewNop())

	if len(result.Removed) != 3 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := testsupport.ListNames(t, dir); !reflect.DeepEqual(got, []string{"keepdir"}) {
		t.Fatalf("unexpected remaining entries: %v", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "keepdir", "nested.ogg")); err != nil {
		t.Fatalf("nested file should survive: %v", err)
	}
}

func TestClearFilesRemovesFileSymlinks(t *testing.T) {
	dir := t.TempDir()
	elsewhere := t.TempDir()
	target := filepath.Join(elsewhere, "song.mp3")
	testsupport.WriteFile(t, target, 8)
	if err := os.Symlink(target, filepath.Join(dir, "link.mp3")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(t.TempDir(), filepath.Join(dir, "dirlink")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(elsewhere, "gone.mp3"), filepath.Join(dir, "dangling.mp3")); err != nil {
		t.Fatal(err)
	}

	result := ClearFiles(context.Background(), dir, nil, logging.NewNop())

	if len(result.Removed) != 1 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := testsupport.ListNames(t, dir); !reflect.DeepEqual(got, []string{"dangling.mp3", "dirlink"}) {
		t.Fatalf("unexpected remaining entries: %v", got)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("symlink target should survive: %v", err)
	}
}

func TestClearFilesHonoursKeep(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, "URL_LIST.txt", "a.mp3")

	result := ClearFiles(context.Background(), dir, KeepName("url_list.txt"), nil)

	if len(result.Kept) != 1 || len(result.Removed) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := testsupport.ListNames(t, dir); !reflect.DeepEqual(got, []string{"URL_LIST.txt"}) {
		t.Fatalf("expected manifest to survive, got %v", got)
	}
}

func TestClearFilesMissingDirectoryIsNoop(t *testing.T) {
	result := ClearFiles(context.Background(), filepath.Join(t.TempDir(), "absent"), nil, nil)
	if len(result.Removed) != 0 || len(result.Errors) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestClearFilesReportsErrors(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, "locked.ogg")
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	result := ClearFiles(context.Background(), dir, nil, logging.NewNop())
	if len(result.Errors) != 1 || len(result.Removed) != 0 {
		t.Fatalf("expected one error, got %+v", result)
	}
}
