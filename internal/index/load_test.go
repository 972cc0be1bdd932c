package index

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleIndex = `{
  "meta": {"record_count": 2, "cip_version": "2020"},
  "records": [
    {"cip": "14.0901", "cipFamily": "14", "title": "Computer Engineering,  General", "definition": "def", "stemEligible": true},
    {"cip": "26.0101", "title": "Biology"}
  ]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cip_stem_index.json")
	if err := os.WriteFile(path, []byte(sampleIndex), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	idx, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(idx.Records) != 2 {
		t.Fatalf("got %d records", len(idx.Records))
	}

	r := idx.Records[0]
	if r.NormalizedTitle != "computer engineering, general" {
		t.Errorf("normalized title = %q", r.NormalizedTitle)
	}

	// Missing optional fields default rather than dropping the record.
	r = idx.Records[1]
	if r.CodeFamily != "26" {
		t.Errorf("family not derived: %q", r.CodeFamily)
	}
	if r.Definition != "" || r.STEMEligible {
		t.Errorf("defaults wrong: %+v", r)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/index.json"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0o644)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	idx, err := Fetch(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(idx.Records) != 2 || idx.Records[0].Code != "14.0901" {
		t.Fatalf("unexpected index: %+v", idx.Records)
	}
}

func TestFetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d", se.StatusCode)
	}
}

func TestNormalizeText(t *testing.T) {
	if got := NormalizeText("  Computer\tEngineering,\n GENERAL  "); got != "computer engineering, general" {
		t.Errorf("NormalizeText = %q", got)
	}
}
