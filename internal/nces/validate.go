package nces

import (
	"fmt"
	"regexp"
)

// cipShapeRe accepts 2-digit, 4-digit, and 6-digit CIP formats, the
// shapes a detail page may legitimately carry.
var cipShapeRe = regexp.MustCompile(`^\d{2}(?:\.\d{2}(?:\d{2})?)?$`)

// ValidationSummary reports dataset health counters.
type ValidationSummary struct {
	Total          int
	BadCIPFormat   int
	MissingCore    int // records without both title and definition
	ParseWarnings  int
}

// maxMissingCore is the tolerated number of records lacking title or
// definition before the dataset is considered broken.
const maxMissingCore = 50

// Validate checks the scraped dataset and returns its summary. An error
// means the dataset must not be used downstream.
func Validate(d *Dataset) (*ValidationSummary, error) {
	if d == nil || len(d.Records) == 0 {
		return nil, fmt.Errorf("dataset contains zero records")
	}

	s := &ValidationSummary{Total: len(d.Records)}
	for _, r := range d.Records {
		if !cipShapeRe.MatchString(r.CIP) {
			s.BadCIPFormat++
		}
		if r.Title == "" || r.Definition == "" {
			s.MissingCore++
		}
		if r.ParseWarning {
			s.ParseWarnings++
		}
	}

	if s.BadCIPFormat > 0 {
		return s, fmt.Errorf("%d records have invalid CIP format", s.BadCIPFormat)
	}
	if s.MissingCore > maxMissingCore {
		return s, fmt.Errorf("%d records missing title/definition (max %d)", s.MissingCore, maxMissingCore)
	}
	return s, nil
}
