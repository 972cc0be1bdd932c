// Package index defines the frontend search index document: the compact,
// fully-client-loadable JSON artifact the static site serves, plus its
// loading, building, and manifest plumbing.
package index

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/cip"
)

// Record is one CIP entry in the frontend index. Field names mirror the
// published JSON exactly.
type Record struct {
	Code         string `json:"cip"`
	CodeFamily   string `json:"cipFamily"`
	CIPYear      int    `json:"cipYear"`
	Title        string `json:"title"`
	TitleSource  string `json:"titleSource,omitempty"`
	Definition   string `json:"definition"`
	STEMEligible bool   `json:"stemEligible"`
	STEMSource   string `json:"stemSource,omitempty"`
	HasDefinition bool  `json:"hasDefinition"`
	HasExamples   bool  `json:"hasIllustrativeExamples"`

	// NormalizedTitle is the case-folded, whitespace-collapsed title,
	// derived once at load time. Never serialized.
	NormalizedTitle string `json:"-"`
}

// Index is the full search index document: arbitrary generation metadata
// plus the ordered record list. Loaded once per session and treated as
// immutable afterwards.
type Index struct {
	Meta    map[string]any `json:"meta"`
	Records []Record       `json:"records"`
}

var multiSpace = regexp.MustCompile(`\s+`)

// NormalizeText case-folds, collapses whitespace, and trims the input.
func NormalizeText(s string) string {
	s = cases.Fold().String(strings.TrimSpace(s))
	return multiSpace.ReplaceAllString(s, " ")
}

// ApplyDefaults fills derived and defaulted fields on a freshly decoded
// record: a missing family is derived from the code and the normalized
// title is computed. Records are never dropped for missing optional
// fields; absent strings simply stay empty.
func (r *Record) ApplyDefaults() {
	if r.CodeFamily == "" {
		r.CodeFamily = cip.Family(r.Code)
	}
	r.NormalizedTitle = NormalizeText(r.Title)
}
