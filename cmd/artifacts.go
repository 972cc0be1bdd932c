package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/config"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/fetch"
)

// detailURLsArtifact is the intermediate list of cipdetail URLs extracted
// from the browse page, stored between "fetch nces" and "build nces".
type detailURLsArtifact struct {
	SourceURL string   `json:"source_url"`
	Count     int      `json:"count"`
	URLs      []string `json:"urls"`
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory for %s: %w", path, err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s (run the preceding pipeline step first): %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}

// newFetcher builds the shared polite HTTP fetcher from config.
func newFetcher(cfg *config.Config) *fetch.Fetcher {
	opts := []fetch.Option{}
	if cfg.UserAgent != "" {
		opts = append(opts, fetch.WithUserAgent(cfg.UserAgent))
	}
	return fetch.New(cfg.RequestsPerSecond, opts...)
}
