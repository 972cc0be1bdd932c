// Package fetch retrieves remote source artifacts (NCES pages, the DHS
// PDF) with polite throttling and records provenance for every download.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent identifies the project to upstream servers.
const DefaultUserAgent = "cip-stem-intelligence (open-source, educational use)"

// Provenance records where a downloaded artifact came from and what was
// received. It is written as a ".manifest.json" next to the artifact so
// every dataset build is traceable to exact source bytes.
type Provenance struct {
	RequestedURL string `json:"requested_url"`
	FinalURL     string `json:"final_url"`
	SHA256       string `json:"sha256"`
	Bytes        int    `json:"bytes"`
	FetchedUTC   string `json:"fetched_utc"`
	RunID        string `json:"run_id"`
	Note         string `json:"note,omitempty"`
}

// Fetcher is an HTTP client with a shared rate limiter. A zero requests-
// per-second value disables throttling.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	runID     string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient overrides the underlying HTTP client (used by tests).
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// New creates a Fetcher limited to rps requests per second with a burst
// of one.
func New(rps float64, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		runID:     uuid.NewString(),
	}
	if rps > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RunID identifies this fetcher's lifetime; every Provenance it produces
// carries it so artifacts from one run can be correlated.
func (f *Fetcher) RunID() string { return f.runID }

// Get downloads url and returns the body along with its provenance.
// Non-2xx responses are errors.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, *Provenance, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", url, err)
	}

	prov := &Provenance{
		RequestedURL: url,
		FinalURL:     resp.Request.URL.String(),
		SHA256:       fmt.Sprintf("%x", sha256.Sum256(body)),
		Bytes:        len(body),
		FetchedUTC:   time.Now().UTC().Format(time.RFC3339),
		RunID:        f.runID,
	}
	return body, prov, nil
}

// Save writes body to path and its provenance to path's manifest sibling,
// creating parent directories as needed.
func Save(path string, body []byte, prov *Provenance) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return WriteManifest(ManifestPath(path), prov)
}

// ManifestPath returns the manifest sibling for an artifact path:
// "x.html" -> "x.manifest.json", "x.pdf" -> "x.manifest.json".
func ManifestPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".manifest.json"
}

// WriteManifest serializes prov as indented JSON at path.
func WriteManifest(path string, prov *Provenance) error {
	b, err := json.MarshalIndent(prov, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a previously written provenance manifest.
func ReadManifest(path string) (*Provenance, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest %s: %w", path, err)
	}
	var p Provenance
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON %s: %w", path, err)
	}
	return &p, nil
}
