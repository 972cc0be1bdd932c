package nces

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractDetailURLs parses the browse-page HTML and returns every
// cipdetail URL for CIP 2020 in canonical form, deduplicated and sorted.
// Handles HTML-encoded ampersands and either query-parameter order.
func ExtractDetailURLs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse browse HTML: %w", err)
	}

	seen := map[string]struct{}{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if norm := NormalizeDetailURL(href); norm != "" {
			seen[norm] = struct{}{}
		}
	})

	out := make([]string, 0, len(seen))
	for u := range seen {
		out = append(out, u)
	}
	sort.Strings(out)
	return out, nil
}

// NormalizeDetailURL canonicalizes a browse-page href into
// "https://nces.ed.gov/ipeds/cipcode/cipdetail.aspx?y=56&cipid=XXXX".
// Returns "" when href is not a CIP 2020 detail link with a numeric cipid.
func NormalizeDetailURL(href string) string {
	if href == "" || !strings.Contains(strings.ToLower(href), "cipdetail.aspx") {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)

	q := abs.Query()
	if q.Get("y") != "56" {
		return ""
	}
	cipid := q.Get("cipid")
	if !isDigits(cipid) {
		return ""
	}

	// Fixed parameter order (y, then cipid) keeps the URL set stable
	// across scrapes for diffing.
	return fmt.Sprintf("%s://%s%s?y=56&cipid=%s", abs.Scheme, abs.Host, abs.Path, cipid)
}

// CIPIDFromURL extracts the cipid query parameter regardless of
// parameter order. Returns "" for malformed URLs.
func CIPIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	cipid := u.Query().Get("cipid")
	if !isDigits(cipid) {
		return ""
	}
	return cipid
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
