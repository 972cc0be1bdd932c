// Package search implements the CIP lookup engine: exact-code lookup,
// family and subfamily matching, and keyword search over titles and
// definitions, with deterministic result ordering.
package search

import (
	"sort"
	"strings"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/cip"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/index"
)

// Options are the inputs to a single search call.
type Options struct {
	// Query is the raw user-entered text: a CIP fragment ("14", "14.09",
	// "14.0903") or free-text keywords.
	Query string
	// STEMOnly restricts results to STEM-eligible records.
	STEMOnly bool
	// Limit bounds the result count. Limit <= 0 means unlimited.
	Limit int
}

// Engine answers search queries against a fixed record collection. It is
// read-only after construction; a call to Search never mutates anything.
type Engine struct {
	records []index.Record
	byCode  map[string]int // canonical code -> position in records
	blobs   []string       // folded title+definition text, parallel to records
}

// NewEngine builds an engine over the given records. The slice is copied,
// so later changes by the caller are not observed. The code lookup is
// last-write-wins on duplicate codes; the index builder guarantees
// uniqueness, but a duplicate must not fail here.
func NewEngine(records []index.Record) *Engine {
	e := &Engine{
		records: make([]index.Record, len(records)),
		byCode:  make(map[string]int, len(records)),
		blobs:   make([]string, len(records)),
	}
	copy(e.records, records)
	for i := range e.records {
		r := &e.records[i]
		r.ApplyDefaults()
		e.byCode[r.Code] = i
		e.blobs[i] = r.NormalizedTitle + "\n" + index.NormalizeText(r.Definition)
	}
	return e
}

// Search returns the records matching opts in ascending code order, except
// for empty-query browsing which preserves the stored order. An empty
// result is normal, not an error.
func (e *Engine) Search(opts Options) []index.Record {
	query := strings.TrimSpace(opts.Query)

	if query == "" {
		return e.browse(opts.STEMOnly, opts.Limit)
	}

	canon := cip.Canonical(query)

	// An exact 6-digit code resolves to at most one record and never
	// falls through to keyword or family matching. Family-level codes
	// (".0000") are deliberately excluded: "14.0000" means "everything
	// in family 14", not the family's own NCES row.
	if cip.IsCanonical(canon) && !cip.IsFamilyCode(canon) {
		if i, ok := e.byCode[canon]; ok {
			rec := e.records[i]
			if opts.STEMOnly && !rec.STEMEligible {
				return []index.Record{}
			}
			return []index.Record{rec}
		}
	}

	tokens := strings.Fields(index.NormalizeText(query))

	var out []index.Record
	for i := range e.records {
		rec := &e.records[i]
		if opts.STEMOnly && !rec.STEMEligible {
			continue
		}
		if e.matches(i, query, canon, tokens) {
			out = append(out, *rec)
			if opts.Limit > 0 && len(out) == opts.Limit {
				break
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if out == nil {
		out = []index.Record{}
	}
	return out
}

// matches reports whether the record at position i is a hit for the query.
func (e *Engine) matches(i int, query, canon string, tokens []string) bool {
	rec := &e.records[i]

	// 2-digit family fragment: "14" matches every record in family 14.
	if query == rec.CodeFamily {
		return true
	}

	// A fully-padded family code ("14.0000", or "14" after
	// canonicalization) is a family search too.
	if cip.IsFamilyCode(canon) && cip.Family(canon) == rec.CodeFamily {
		return true
	}

	// 4-digit rollup fragment as typed: "14.09" prefixes "14.09xx".
	if cip.IsSubfamily(query) && strings.HasPrefix(rec.Code, query) {
		return true
	}

	// Subfamily match through the canonical form: recovers rollups when
	// the user typed a fragment that canonicalization padded, e.g.
	// "14.9" -> "14.9000" matching every "14.90xx".
	if cip.IsCanonical(canon) && len(rec.Code) >= 5 && rec.Code[:5] == canon[:5] {
		return true
	}

	// Keyword search: every token must appear in the title+definition
	// text (AND semantics).
	if len(tokens) == 0 {
		return false
	}
	blob := e.blobs[i]
	for _, tok := range tokens {
		if !strings.Contains(blob, tok) {
			return false
		}
	}
	return true
}

// browse returns the first records in stored order, honoring the STEM
// filter but applying no code sorting.
func (e *Engine) browse(stemOnly bool, limit int) []index.Record {
	out := []index.Record{}
	for i := range e.records {
		if stemOnly && !e.records[i].STEMEligible {
			continue
		}
		out = append(out, e.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
