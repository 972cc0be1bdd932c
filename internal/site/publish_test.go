package site

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPublish(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	for _, name := range PublishedFiles {
		if err := os.WriteFile(filepath.Join(src, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := Publish(src, dest)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(paths) != len(PublishedFiles) {
		t.Fatalf("published %d files, want %d", len(paths), len(PublishedFiles))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing published file %s: %v", p, err)
		}
	}

	want := filepath.Join(dest, "data", "processed", "cip_stem_index.json")
	if paths[0] != want {
		t.Errorf("path = %s, want %s", paths[0], want)
	}
}

func TestPublish_MissingSourceFails(t *testing.T) {
	if _, err := Publish(t.TempDir(), t.TempDir()); err == nil {
		t.Fatal("expected error when artifacts are missing")
	}
}
