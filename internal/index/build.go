package index

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/cip"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/overlay"
)

// Build produces the frontend index from a merged overlay document.
// Canonical CIP format is enforced here: any record whose code does not
// canonicalize to NN.NNNN fails the build with samples for debugging.
// Records come out in ascending code order so rebuilt artifacts diff
// cleanly.
func Build(ov *overlay.Document) (*Index, error) {
	records := make([]Record, 0, len(ov.Records))
	var badCIPs []string

	for _, r := range ov.Records {
		code := cip.Canonical(r.CIP)
		if !cip.IsCanonical(code) {
			badCIPs = append(badCIPs, r.CIP)
			continue
		}

		// The STEM list is DHS-published; the source field stays
		// explicit so other authorities can be added later.
		stemSource := ""
		if r.STEMEligible {
			stemSource = "DHS"
		}

		titleSource := r.TitleSource
		if titleSource == "" {
			if r.Definition != "" {
				titleSource = "NCES"
			} else {
				titleSource = "Unknown"
			}
		}

		rec := Record{
			Code:          code,
			CodeFamily:    cip.Family(code),
			CIPYear:       cipYearOrDefault(r.CIPYear),
			Title:         strings.TrimSpace(r.Title),
			TitleSource:   titleSource,
			Definition:    strings.TrimSpace(r.Definition),
			STEMEligible:  r.STEMEligible,
			STEMSource:    stemSource,
			HasDefinition: strings.TrimSpace(r.Definition) != "",
			HasExamples:   len(r.Examples) > 0,
		}
		rec.ApplyDefaults()
		records = append(records, rec)
	}

	if len(badCIPs) > 0 {
		sample := badCIPs
		if len(sample) > 20 {
			sample = sample[:20]
		}
		return nil, fmt.Errorf("invalid CIP format while building index: count=%d sample=%v", len(badCIPs), sample)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to index")
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Code < records[j].Code })

	stemCount := 0
	for _, r := range records {
		if r.STEMEligible {
			stemCount++
		}
	}

	return &Index{
		Meta: map[string]any{
			"name":          "CIP STEM frontend index",
			"generated_utc": time.Now().UTC().Format(time.RFC3339),
			"cip_version":   "2020",
			"record_count":  len(records),
			"stem_count":    stemCount,
			"source":        ov.Sources,
		},
		Records: records,
	}, nil
}

func cipYearOrDefault(year int) int {
	if year == 0 {
		return 2020
	}
	return year
}
