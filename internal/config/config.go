// Package config holds runtime configuration for cipstem: where datasets
// live, where sources are fetched from, and how politely to fetch them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/dhs"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/nces"
)

// DefaultFile is the optional per-repo config file name.
const DefaultFile = "cipstem.yaml"

// Config is the in-memory representation of cipstem.yaml plus flag
// overrides.
type Config struct {
	// DataDir is the pipeline working tree (raw and processed artifacts).
	DataDir string `yaml:"data_dir"`
	// SiteDir is the static-site root that Publish copies into.
	SiteDir string `yaml:"site_dir"`

	NCESBrowseURL string `yaml:"nces_browse_url"`
	DHSPDFURL     string `yaml:"dhs_pdf_url"`

	// RequestsPerSecond throttles scraping; zero disables throttling.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	// Concurrency bounds parallel detail-page fetches.
	Concurrency int    `yaml:"concurrency"`
	UserAgent   string `yaml:"user_agent,omitempty"`

	// SearchLimit is the default result bound for the search command.
	SearchLimit int `yaml:"search_limit"`

	LogFormat string `yaml:"log_format,omitempty"` // "text" or "json"
}

// Default returns the configuration used when no cipstem.yaml exists.
func Default() *Config {
	return &Config{
		DataDir:           "data",
		SiteDir:           "docs",
		NCESBrowseURL:     nces.BrowseURL,
		DHSPDFURL:         dhs.PDFURL,
		RequestsPerSecond: 4,
		Concurrency:       4,
		SearchLimit:       20,
		LogFormat:         "text",
	}
}

// Load reads path (or DefaultFile when path is empty) and merges it over
// Default(). A missing default file is not an error; a missing explicit
// path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be positive")
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	return nil
}

// Artifact paths inside the data tree, named after the published files.

func (c *Config) RawNCESDir() string     { return filepath.Join(c.DataDir, "raw", "nces") }
func (c *Config) RawDHSDir() string      { return filepath.Join(c.DataDir, "raw", "dhs") }
func (c *Config) ProcessedDir() string   { return filepath.Join(c.DataDir, "processed") }
func (c *Config) DetailCacheDir() string { return filepath.Join(c.RawNCESDir(), "detail_cache") }

func (c *Config) BrowseHTMLPath() string { return filepath.Join(c.RawNCESDir(), "nces_cip2020_browse.html") }
func (c *Config) DetailURLsPath() string { return filepath.Join(c.RawNCESDir(), "nces_cip2020_detail_urls.json") }
func (c *Config) DHSPDFPath() string     { return filepath.Join(c.RawDHSDir(), "stem-list-latest.pdf") }

func (c *Config) NCESDatasetPath() string { return filepath.Join(c.ProcessedDir(), "nces_cip2020.json") }
func (c *Config) DHSListPath() string     { return filepath.Join(c.ProcessedDir(), "stem_dhs_latest.json") }
func (c *Config) OverlayPath() string     { return filepath.Join(c.ProcessedDir(), "cip_stem_overlay_latest.json") }
func (c *Config) IndexPath() string       { return filepath.Join(c.ProcessedDir(), "cip_stem_index.json") }

// LockPath is the flock target serializing pipeline runs over one data
// tree.
func (c *Config) LockPath() string { return filepath.Join(c.DataDir, ".cipstem.lock") }
