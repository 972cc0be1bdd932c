package index

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Manifest describes a written index artifact for integrity checks and
// stable diffing.
type Manifest struct {
	File         string `json:"file"`
	SHA256       string `json:"sha256"`
	Bytes        int    `json:"bytes"`
	GeneratedUTC string `json:"generated_utc"`
	RecordCount  int    `json:"record_count"`
}

// Write serializes the index to path and its manifest to the
// ".manifest.json" sibling. Parent directories are created.
func Write(idx *Index, path string) (*Manifest, error) {
	if len(idx.Records) == 0 {
		return nil, fmt.Errorf("refusing to write an empty index")
	}

	b, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, err
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create index dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write index %s: %w", path, err)
	}

	m := &Manifest{
		File:         filepath.ToSlash(path),
		SHA256:       fmt.Sprintf("%x", sha256.Sum256(b)),
		Bytes:        len(b),
		GeneratedUTC: time.Now().UTC().Format(time.RFC3339),
		RecordCount:  len(idx.Records),
	}
	mb, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(ManifestPath(path), mb, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write index manifest: %w", err)
	}
	return m, nil
}

// ManifestPath returns the manifest sibling for an index artifact:
// "cip_stem_index.json" -> "cip_stem_index.manifest.json".
func ManifestPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".manifest.json"
}

// ReadManifest loads a written index manifest.
func ReadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read index manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid index manifest %s: %w", path, err)
	}
	return &m, nil
}

// VerifyManifest recomputes the artifact hash and compares it with the
// manifest. Used by doctor-style integrity checks.
func VerifyManifest(indexPath, manifestPath string) error {
	m, err := ReadManifest(manifestPath)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("cannot read index %s: %w", indexPath, err)
	}
	if got := fmt.Sprintf("%x", sha256.Sum256(b)); got != m.SHA256 {
		return fmt.Errorf("index %s does not match its manifest (sha256 %s != %s)", indexPath, got, m.SHA256)
	}
	return nil
}
