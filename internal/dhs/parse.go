package dhs

import (
	"regexp"
	"sort"
	"strings"
)

// cipRe finds full 6-digit CIP codes anywhere in the extracted text.
var cipRe = regexp.MustCompile(`\b(\d{2}\.\d{4})\b`)

var spacesRe = regexp.MustCompile(`\s+`)

// noiseMarkers start text runs that are page furniture, not titles.
var noiseMarkers = []string{"page ", "department of homeland", "stem designated"}

// ParseText parses CIP codes and their titles out of extracted PDF text.
// DHS PDFs vary in layout, so the parser keys off the code pattern alone:
// the title is the text run between one code and the next. Duplicate
// codes keep the first non-empty title. Results are sorted by code for
// stable diffs.
func ParseText(text string) []Row {
	matches := cipRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	byCIP := map[string]Row{}
	order := make([]string, 0, len(matches))

	for i, m := range matches {
		code := text[m[2]:m[3]]

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		title := cleanTitle(text[m[1]:end])

		existing, seen := byCIP[code]
		switch {
		case !seen:
			byCIP[code] = Row{CIP: code, Title: title}
			order = append(order, code)
		case existing.Title == "" && title != "":
			byCIP[code] = Row{CIP: code, Title: title}
		}
	}

	sort.Strings(order)
	out := make([]Row, 0, len(order))
	for _, code := range order {
		out = append(out, byCIP[code])
	}
	return out
}

// cleanTitle collapses whitespace and drops header/footer noise that can
// bleed into the run after a code.
func cleanTitle(s string) string {
	s = strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
	s = strings.Trim(s, "-–— .")

	low := strings.ToLower(s)
	for _, marker := range noiseMarkers {
		if strings.HasPrefix(low, marker) {
			return ""
		}
		if i := strings.Index(low, " "+strings.TrimSpace(marker)); i >= 0 {
			// Noise appended after the real title: cut it off.
			s = strings.TrimSpace(s[:i])
			low = strings.ToLower(s)
		}
	}
	if len(s) < 3 {
		return ""
	}
	return s
}
