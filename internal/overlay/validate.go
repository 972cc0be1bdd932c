package overlay

import (
	"fmt"
	"regexp"
)

// cipShapeRe accepts 2/4/6-digit CIP formats.
var cipShapeRe = regexp.MustCompile(`^\d{2}(?:\.\d{2}(?:\d{2})?)?$`)

// minStemCount guards against a silently broken DHS parse or merge; the
// published STEM list is always well into the hundreds.
const minStemCount = 100

// ValidationSummary reports overlay health counters.
type ValidationSummary struct {
	Total        int
	STEMEligible int
	BadCIPFormat int
	MissingInNCES int
}

// Validate checks the merged overlay document. Missing STEM codes are
// surfaced in the summary but are not an error.
func Validate(doc *Document) (*ValidationSummary, error) {
	if doc == nil || len(doc.Records) == 0 {
		return nil, fmt.Errorf("overlay contains zero records")
	}

	s := &ValidationSummary{Total: len(doc.Records)}
	for _, r := range doc.Records {
		if !cipShapeRe.MatchString(r.CIP) {
			s.BadCIPFormat++
		}
		if r.STEMEligible {
			s.STEMEligible++
		}
		if r.MissingInNCES {
			s.MissingInNCES++
		}
	}

	if s.BadCIPFormat > 0 {
		return s, fmt.Errorf("overlay has %d invalid CIP formats", s.BadCIPFormat)
	}
	if s.STEMEligible < minStemCount {
		return s, fmt.Errorf("stem count %d is suspiciously low (min %d); DHS parsing or merge is likely broken", s.STEMEligible, minStemCount)
	}
	return s, nil
}
