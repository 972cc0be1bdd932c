package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// StatusError reports a non-success HTTP response while fetching a remote
// index document.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch index %s: HTTP %d", e.URL, e.StatusCode)
}

// Load reads and decodes an index document from a local file.
func Load(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read index %s: %w", path, err)
	}
	return decode(b, path)
}

// Fetch retrieves and decodes an index document over HTTP. Non-2xx
// responses return a *StatusError; there is no retry.
func Fetch(ctx context.Context, client *http.Client, url string) (*Index, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch index %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read index body %s: %w", url, err)
	}
	return decode(b, url)
}

func decode(b []byte, src string) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(b, &idx); err != nil {
		return nil, fmt.Errorf("invalid index JSON %s: %w", src, err)
	}
	for i := range idx.Records {
		idx.Records[i].ApplyDefaults()
	}
	return &idx, nil
}
