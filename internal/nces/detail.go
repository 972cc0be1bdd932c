package nces

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cipCaptureRe matches the detail-page header, e.g. "Detail for CIP Code
// 14.0903". Supports 2-digit, 4-digit, and 6-digit formats.
var cipCaptureRe = regexp.MustCompile(`Detail for CIP Code\s+(\d{2}(?:\.\d{2}(?:\d{2})?)?)`)

var spacesRe = regexp.MustCompile(`\s+`)

// sectionLabels are the markers observed on cipdetail pages, in the order
// they act as stop markers for section slicing.
var sectionLabels = []string{"Title:", "Definition:", "Action:", "Illustrative Examples", "Crosswalk", "Browse", "Print"}

// ParseDetail extracts a Record from one cipdetail page.
func ParseDetail(html, sourceURL string) Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Record{SourceURL: sourceURL, ParseWarning: true, Error: "unparseable_html"}
	}

	pageText := renderText(doc)

	rec := Record{
		CIP:        parseCIPCode(doc, pageText),
		Title:      sectionText(pageText, "Title:"),
		Definition: sectionText(pageText, "Definition:"),
		Action:     sectionText(pageText, "Action:"),
		Examples:   parseExamples(pageText),
		SourceURL:  sourceURL,
	}

	if rec.CIP == "" || rec.Title == "" || rec.Definition == "" {
		rec.ParseWarning = true
	}
	return rec
}

// renderText flattens the page into newline-separated text blocks, the
// form the section slicers work against.
func renderText(doc *goquery.Document) string {
	var b strings.Builder
	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Length() > 0 {
			return
		}
		if t := normalizeSpaces(sel.Text()); t != "" {
			b.WriteString(t)
			b.WriteByte('\n')
		}
	})
	if b.Len() == 0 {
		return normalizeSpaces(doc.Text())
	}
	return b.String()
}

// sectionText extracts the text after "Label:" up to the nearest next
// known section label.
func sectionText(pageText, label string) string {
	start := strings.Index(pageText, label)
	if start < 0 {
		return ""
	}
	start += len(label)

	end := len(pageText)
	for _, next := range sectionLabels {
		if next == label {
			continue
		}
		if pos := strings.Index(pageText[start:], next); pos >= 0 && start+pos < end {
			end = start + pos
		}
	}
	return normalizeSpaces(pageText[start:end])
}

// parseCIPCode prefers structured header elements, falling back to a
// whole-page search. NCES markup changes over time, so this stays loose.
func parseCIPCode(doc *goquery.Document, pageText string) string {
	var candidates []string
	for _, selector := range []string{"h1", "h2", "div.cipdetail h1", "div.cipdetail h2", "#cipHeader"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			candidates = append(candidates, normalizeSpaces(sel.Text()))
		}
	}
	candidates = append(candidates, pageText)

	for _, c := range candidates {
		if m := cipCaptureRe.FindStringSubmatch(c); m != nil {
			return strings.TrimRight(m[1], ").,;:")
		}
	}
	return ""
}

// parseExamples best-effort extracts the illustrative-examples list.
// Pages vary; some have none or say "None available".
func parseExamples(pageText string) []string {
	idx := strings.Index(pageText, "Illustrative Examples")
	if idx < 0 {
		return nil
	}

	window := pageText[idx:]
	if len(window) > 3000 {
		window = window[:3000]
	}

	var cleaned []string
	for _, ln := range strings.Split(window, "\n") {
		ln = normalizeSpaces(ln)
		if ln == "" || ln == "Illustrative Examples" || ln == "Help" {
			continue
		}
		if strings.HasPrefix(ln, "Browse") || strings.HasPrefix(ln, "Crosswalk") || strings.HasPrefix(ln, "Print") {
			break
		}
		cleaned = append(cleaned, ln)
	}

	for _, ln := range cleaned {
		if strings.Contains(ln, "None available") {
			return nil
		}
	}

	out := cleaned[:0]
	for _, ln := range cleaned {
		if len(ln) > 2 {
			out = append(out, ln)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}
