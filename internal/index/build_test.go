package index

import (
	"path/filepath"
	"testing"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/overlay"
)

func sampleOverlay() *overlay.Document {
	return &overlay.Document{
		Records: []overlay.Record{
			{CIP: "26.0101", CIPYear: 2020, Title: "Biology", Definition: "Living organisms.", TitleSource: "NCES"},
			{CIP: "14.0901", CIPYear: 2020, Title: "Computer Engineering, General", Definition: "Hardware.", STEMEligible: true, TitleSource: "NCES", Examples: []string{"x"}},
			{CIP: "15.9999", Title: "Orphan", STEMEligible: true, TitleSource: "DHS PDF (fallback)"},
		},
	}
}

func TestBuild(t *testing.T) {
	idx, err := Build(sampleOverlay())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := []string{idx.Records[0].Code, idx.Records[1].Code, idx.Records[2].Code}; got[0] != "14.0901" || got[1] != "15.9999" || got[2] != "26.0101" {
		t.Fatalf("records not code-sorted: %v", got)
	}

	r := idx.Records[0]
	if r.CodeFamily != "14" || !r.STEMEligible || r.STEMSource != "DHS" {
		t.Errorf("14.0901 = %+v", r)
	}
	if !r.HasDefinition || !r.HasExamples {
		t.Errorf("presence flags wrong: %+v", r)
	}
	if r.NormalizedTitle != "computer engineering, general" {
		t.Errorf("normalized title = %q", r.NormalizedTitle)
	}

	if idx.Records[1].STEMSource != "DHS" || idx.Records[2].STEMSource != "" {
		t.Error("stem source derivation wrong")
	}
	if idx.Meta["record_count"] != 3 || idx.Meta["stem_count"] != 2 {
		t.Errorf("meta = %+v", idx.Meta)
	}
}

func TestBuild_RejectsBadCodes(t *testing.T) {
	ov := sampleOverlay()
	ov.Records = append(ov.Records, overlay.Record{CIP: "garbage"})
	if _, err := Build(ov); err == nil {
		t.Fatal("expected error for non-canonicalizable code")
	}
}

func TestBuild_Empty(t *testing.T) {
	if _, err := Build(&overlay.Document{}); err == nil {
		t.Fatal("expected error for empty overlay")
	}
}

func TestWrite_RoundTripAndManifest(t *testing.T) {
	idx, err := Build(sampleOverlay())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path := filepath.Join(t.TempDir(), "data", "processed", "cip_stem_index.json")
	m, err := Write(idx, path)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.RecordCount != 3 || m.Bytes == 0 || m.SHA256 == "" {
		t.Errorf("manifest = %+v", m)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Write: %v", err)
	}
	if len(loaded.Records) != 3 || loaded.Records[0].Code != "14.0901" {
		t.Fatalf("round trip mismatch: %+v", loaded.Records)
	}
	// Derived fields come back at load time.
	if loaded.Records[0].NormalizedTitle != "computer engineering, general" {
		t.Errorf("normalized title lost: %q", loaded.Records[0].NormalizedTitle)
	}

	if err := VerifyManifest(path, ManifestPath(path)); err != nil {
		t.Errorf("VerifyManifest: %v", err)
	}
}
