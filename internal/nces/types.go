// Package nces scrapes and parses the NCES IPEDS CIP 2020 site: the
// browse listing, the per-code detail pages, and the dataset assembled
// from them.
package nces

// BrowseURL is the CIP 2020 "Browse all CIP codes" listing (y=56).
const BrowseURL = "https://nces.ed.gov/ipeds/cipcode/browse.aspx?y=56"

const baseURL = "https://nces.ed.gov/ipeds/cipcode/"

// Record is one scraped CIP detail page. The detail page is the
// authoritative definition source for each code.
type Record struct {
	CIP       string   `json:"cip"`
	Title     string   `json:"title"`
	Definition string  `json:"definition"`
	Action    string   `json:"action"`
	Examples  []string `json:"illustrative_examples"`
	SourceURL string   `json:"source_url"`

	// ParseWarning flags records whose page markup did not yield a
	// complete cip/title/definition triple.
	ParseWarning bool   `json:"parse_warning,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Source describes where and when a dataset was scraped.
type Source struct {
	Publisher    string `json:"publisher"`
	CIPVersion   string `json:"cip_version"`
	BrowseURL    string `json:"browse_url"`
	GeneratedUTC string `json:"generated_utc"`
	Note         string `json:"note,omitempty"`
}

// Dataset is the assembled NCES CIP 2020 dataset document.
type Dataset struct {
	Source      Source   `json:"source"`
	RecordCount int      `json:"record_count"`
	Records     []Record `json:"records"`
}
