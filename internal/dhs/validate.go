package dhs

import (
	"fmt"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/cip"
)

// Validate checks a parsed STEM list: non-empty, canonical code format,
// and no duplicates.
func Validate(l *List) error {
	if l == nil || len(l.Records) == 0 {
		return fmt.Errorf("stem list contains zero records; parsing likely failed")
	}

	seen := map[string]struct{}{}
	var bad []string
	dupes := 0

	for _, r := range l.Records {
		if !cip.IsCanonical(r.CIP) {
			bad = append(bad, r.CIP)
		}
		if _, ok := seen[r.CIP]; ok {
			dupes++
		}
		seen[r.CIP] = struct{}{}
	}

	if len(bad) > 0 {
		sample := bad
		if len(sample) > 20 {
			sample = sample[:20]
		}
		return fmt.Errorf("invalid CIP formats: %v (showing up to 20 of %d)", sample, len(bad))
	}
	if dupes > 0 {
		return fmt.Errorf("%d duplicate CIP codes in stem list", dupes)
	}
	return nil
}
