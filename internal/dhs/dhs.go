// Package dhs handles the DHS/ICE STEM Designated Degree Program List:
// downloading the PDF, extracting its text, and parsing CIP codes with
// their program titles.
package dhs

// PDFURL is the pinned DHS STEM list publication.
const PDFURL = "https://www.ice.gov/doclib/sevis/pdf/stemList2024.pdf"

// Row is one CIP entry parsed from the STEM list.
type Row struct {
	CIP   string `json:"cip"`
	Title string `json:"title_from_pdf"`
}

// Source identifies the parsed publication.
type Source struct {
	Publisher string `json:"publisher"`
	Type      string `json:"type"`
	PDFFile   string `json:"pdf_file"`
}

// List is the parsed STEM list document.
type List struct {
	Source      Source `json:"source"`
	Records     []Row  `json:"records"`
	RecordCount int    `json:"record_count"`
}
