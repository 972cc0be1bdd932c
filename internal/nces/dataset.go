package nces

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/fetch"
)

// BuildOptions controls dataset assembly.
type BuildOptions struct {
	// CacheDir holds raw detail-page HTML keyed by cipid, so re-runs and
	// debugging never re-hit NCES for pages already seen.
	CacheDir string
	// Concurrency bounds parallel detail-page fetches. The fetcher's
	// shared rate limiter still applies across workers. Defaults to 4.
	Concurrency int
}

// BuildDataset fetches and parses every detail URL into a Dataset.
// Cached pages are read from disk; fresh pages are fetched politely and
// cached. Malformed URLs produce warning records rather than failing the
// whole build.
func BuildDataset(ctx context.Context, f *fetch.Fetcher, log zerolog.Logger, urls []string, opts BuildOptions) (*Dataset, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("no detail URLs to build from")
	}
	if opts.CacheDir != "" {
		if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create cache dir: %w", err)
		}
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	records := make([]Record, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		g.Go(func() error {
			rec, err := buildOne(gctx, f, u, opts.CacheDir)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	warnings := 0
	for _, r := range records {
		if r.ParseWarning {
			warnings++
		}
	}
	log.Info().
		Int("records", len(records)).
		Int("parse_warnings", warnings).
		Msg("nces dataset assembled")

	return &Dataset{
		Source: Source{
			Publisher:    "NCES (IPEDS CIP site)",
			CIPVersion:   "2020",
			BrowseURL:    BrowseURL,
			GeneratedUTC: time.Now().UTC().Format(time.RFC3339),
			Note:         "Scraped cipdetail pages referenced from the NCES CIP 2020 browse page (y=56).",
		},
		RecordCount: len(records),
		Records:     records,
	}, nil
}

func buildOne(ctx context.Context, f *fetch.Fetcher, url, cacheDir string) (Record, error) {
	cipid := CIPIDFromURL(url)
	if cipid == "" {
		return Record{
			SourceURL:    url,
			Examples:     nil,
			ParseWarning: true,
			Error:        "invalid_cipid_in_url",
		}, nil
	}

	var cachePath string
	if cacheDir != "" {
		cachePath = filepath.Join(cacheDir, "cipdetail_"+cipid+".html")
		if b, err := os.ReadFile(cachePath); err == nil {
			return ParseDetail(string(b), url), nil
		}
	}

	body, _, err := f.Get(ctx, url)
	if err != nil {
		return Record{}, fmt.Errorf("detail page cipid=%s: %w", cipid, err)
	}
	if cachePath != "" {
		if err := os.WriteFile(cachePath, body, 0o644); err != nil {
			return Record{}, fmt.Errorf("cache detail page cipid=%s: %w", cipid, err)
		}
	}
	return ParseDetail(string(body), url), nil
}
