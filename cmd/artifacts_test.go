package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/exitcode"
)

func TestWriteReadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "urls.json")
	in := detailURLsArtifact{
		SourceURL: "https://nces.ed.gov/ipeds/cipcode/browse.aspx?y=56",
		Count:     2,
		URLs: []string{
			"https://nces.ed.gov/ipeds/cipcode/cipdetail.aspx?y=56&cipid=91001",
			"https://nces.ed.gov/ipeds/cipcode/cipdetail.aspx?y=56&cipid=91002",
		},
	}
	if err := writeJSON(path, in); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}

	var out detailURLsArtifact
	if err := readJSON(path, &out); err != nil {
		t.Fatalf("readJSON: %v", err)
	}
	if out.Count != 2 || len(out.URLs) != 2 || out.URLs[1] != in.URLs[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestReadJSONMissingFile(t *testing.T) {
	var out detailURLsArtifact
	err := readJSON(filepath.Join(t.TempDir(), "absent.json"), &out)
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestWithCode(t *testing.T) {
	if withCode(exitcode.FetchError, nil) != nil {
		t.Fatal("nil error must stay nil")
	}

	wrapped := withCode(exitcode.ValidationError, fmt.Errorf("bad artifact"))
	var ce *codedError
	if !errors.As(wrapped, &ce) {
		t.Fatalf("expected codedError, got %T", wrapped)
	}
	if ce.code != exitcode.ValidationError {
		t.Fatalf("code = %d, want %d", ce.code, exitcode.ValidationError)
	}
	if wrapped.Error() != "bad artifact" {
		t.Fatalf("message = %q", wrapped.Error())
	}
}

func TestLoadIndexFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"meta":{"name":"idx"},"records":[{"cip":"14.0901","title":"Computer Engineering, General","stemEligible":true}]}`)
	}))
	defer srv.Close()

	idx, err := loadIndexFrom(t.Context(), srv.URL)
	if err != nil {
		t.Fatalf("loadIndexFrom: %v", err)
	}
	if len(idx.Records) != 1 || idx.Records[0].Code != "14.0901" {
		t.Fatalf("unexpected index: %+v", idx)
	}
	if idx.Records[0].CodeFamily != "14" {
		t.Fatalf("defaults not applied: %+v", idx.Records[0])
	}
}
