// Package site publishes processed artifacts into the static-site data
// directory so GitHub Pages can serve them under stable paths.
package site

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PublishedFiles are the artifacts the frontend loads, relative to the
// processed-data directory.
var PublishedFiles = []string{
	"cip_stem_index.json",
	"cip_stem_index.manifest.json",
}

// Publish copies the published artifacts from srcDir into
// destDir/data/processed, keeping the UI's relative paths stable.
// Returns the destination paths written.
func Publish(srcDir, destDir string) ([]string, error) {
	out := make([]string, 0, len(PublishedFiles))
	for _, name := range PublishedFiles {
		src := filepath.Join(srcDir, name)
		dst := filepath.Join(destDir, "data", "processed", name)
		if err := copyFile(src, dst); err != nil {
			return nil, err
		}
		out = append(out, dst)
	}
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("missing source file %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(dst), err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("cannot copy %s: %w", src, err)
	}
	return out.Close()
}
