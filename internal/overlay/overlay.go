// Package overlay merges the NCES CIP dataset with the DHS STEM list
// into the overlay document the frontend index is built from.
package overlay

import (
	"sort"
	"time"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/cip"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/dhs"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/fetch"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/nces"
)

// Record is one merged CIP entry. NCES is the base; DHS contributes the
// STEM flag and a title fallback.
type Record struct {
	CIP          string   `json:"cip"`
	CIPYear      int      `json:"cipYear"`
	Title        string   `json:"title"`
	Definition   string   `json:"definition"`
	Action       string   `json:"action"`
	Examples     []string `json:"illustrative_examples"`
	STEMEligible bool     `json:"stemEligible"`
	NCESSourceURL string  `json:"ncesSourceUrl"`
	TitleSource  string   `json:"titleSource"`

	// MissingInNCES marks DHS STEM codes absent from the current NCES
	// snapshot; they are carried anyway so the STEM list stays complete.
	MissingInNCES bool `json:"missingInNcesSnapshot,omitempty"`
}

// Meta summarizes a merge run.
type Meta struct {
	Name               string `json:"name"`
	GeneratedUTC       string `json:"generated_utc"`
	CIPVersion         string `json:"cip_version"`
	NCESRecordCount    int    `json:"nces_record_count"`
	DHSStemRecordCount int    `json:"dhs_stem_record_count"`
	OverlayRecordCount int    `json:"overlay_record_count"`
	MissingStemInNCES  int    `json:"missing_stem_in_nces_snapshot"`
}

// DHSSource carries DHS provenance into the overlay document.
type DHSSource struct {
	Publisher    string `json:"publisher"`
	FinalURL     string `json:"final_url"`
	RequestedURL string `json:"requested_url"`
	SHA256       string `json:"sha256"`
	FetchedUTC   string `json:"fetched_utc"`
	Note         string `json:"note"`
}

// Sources pairs the provenance of both inputs.
type Sources struct {
	NCES nces.Source `json:"nces"`
	DHS  DHSSource   `json:"dhs"`
}

// Document is the full overlay artifact.
type Document struct {
	Meta    Meta     `json:"meta"`
	Sources Sources  `json:"sources"`
	Records []Record `json:"records"`
}

// Build merges the NCES dataset with the DHS STEM list. All keying is by
// canonical CIP. NCES duplicates resolve toward the more complete record
// (title and definition presence). DHS codes missing from the NCES
// snapshot are appended as flagged records with the DHS title.
func Build(ncesDS *nces.Dataset, stemList *dhs.List, dhsProv *fetch.Provenance) *Document {
	base := indexNCES(ncesDS.Records)

	stemSet := map[string]struct{}{}
	dhsTitle := map[string]string{}
	for _, r := range stemList.Records {
		code := cip.Canonical(r.CIP)
		if code == "" {
			continue
		}
		stemSet[code] = struct{}{}
		if r.Title != "" {
			if _, ok := dhsTitle[code]; !ok {
				dhsTitle[code] = r.Title
			}
		}
	}

	records := make([]Record, 0, len(base)+8)
	for code, r := range base {
		_, stem := stemSet[code]
		title := r.Title
		titleSource := "NCES"
		if title == "" {
			title = dhsTitle[code]
			titleSource = "DHS PDF (fallback)"
		}
		records = append(records, Record{
			CIP:           code,
			CIPYear:       2020,
			Title:         title,
			Definition:    r.Definition,
			Action:        r.Action,
			Examples:      r.Examples,
			STEMEligible:  stem,
			NCESSourceURL: r.SourceURL,
			TitleSource:   titleSource,
		})
	}

	missing := 0
	for code := range stemSet {
		if _, ok := base[code]; ok {
			continue
		}
		missing++
		records = append(records, Record{
			CIP:           code,
			CIPYear:       2020,
			Title:         dhsTitle[code],
			STEMEligible:  true,
			MissingInNCES: true,
			TitleSource:   "DHS PDF (fallback)",
		})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].CIP < records[j].CIP })

	doc := &Document{
		Meta: Meta{
			Name:               "CIP STEM Intelligence Overlay",
			GeneratedUTC:       time.Now().UTC().Format(time.RFC3339),
			CIPVersion:         "2020",
			NCESRecordCount:    len(base),
			DHSStemRecordCount: len(stemSet),
			OverlayRecordCount: len(records),
			MissingStemInNCES:  missing,
		},
		Sources: Sources{NCES: ncesDS.Source},
		Records: records,
	}
	if dhsProv != nil {
		doc.Sources.DHS = DHSSource{
			Publisher:    "DHS/ICE",
			FinalURL:     dhsProv.FinalURL,
			RequestedURL: dhsProv.RequestedURL,
			SHA256:       dhsProv.SHA256,
			FetchedUTC:   dhsProv.FetchedUTC,
			Note:         "DHS STEM Designated Degree Program List (latest pinned PDF)",
		}
	}
	return doc
}

// indexNCES keys NCES records by canonical CIP, preferring the more
// complete record when a code appears twice.
func indexNCES(records []nces.Record) map[string]nces.Record {
	out := map[string]nces.Record{}
	for _, r := range records {
		code := cip.Canonical(r.CIP)
		if code == "" {
			continue
		}
		existing, ok := out[code]
		if !ok || completeness(r) > completeness(existing) {
			out[code] = r
		}
	}
	return out
}

func completeness(r nces.Record) int {
	score := 0
	if r.Title != "" {
		score++
	}
	if r.Definition != "" {
		score++
	}
	return score
}
