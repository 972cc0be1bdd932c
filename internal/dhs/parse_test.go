package dhs

import (
	"reflect"
	"testing"
)

func TestParseText(t *testing.T) {
	text := `STEM Designated Degree Program List
14.0901 Computer Engineering, General
14.0903 Computer Software Engineering
26.0101 Biology/Biological Sciences, General
Page 2
Department of Homeland Security
11.0101 Computer and Information Sciences, General`

	rows := ParseText(text)
	want := []Row{
		{CIP: "11.0101", Title: "Computer and Information Sciences, General"},
		{CIP: "14.0901", Title: "Computer Engineering, General"},
		{CIP: "14.0903", Title: "Computer Software Engineering"},
		{CIP: "26.0101", Title: "Biology/Biological Sciences, General"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v,\nwant %v", rows, want)
	}
}

func TestParseText_FlowedTextWithoutLineBreaks(t *testing.T) {
	// Some extractors flow a whole page into one run of text.
	text := `14.0901 Computer Engineering, General 14.0903 Computer Software Engineering`

	rows := ParseText(text)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Title != "Computer Engineering, General" {
		t.Errorf("title = %q", rows[0].Title)
	}
}

func TestParseText_DuplicateKeepsFirstNonEmptyTitle(t *testing.T) {
	text := "14.0901\nPage 3 14.0901 Computer Engineering, General\n"
	// First occurrence has no usable title; the duplicate supplies one.
	rows := ParseText(text)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Title != "Computer Engineering, General" {
		t.Errorf("title = %q, want the non-empty duplicate title", rows[0].Title)
	}
}

func TestParseText_NoCodes(t *testing.T) {
	if rows := ParseText("no codes here"); rows != nil {
		t.Errorf("expected nil, got %v", rows)
	}
}

func TestValidate(t *testing.T) {
	ok := &List{Records: []Row{{CIP: "14.0901"}, {CIP: "26.0101"}}}
	if err := Validate(ok); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if err := Validate(&List{}); err == nil {
		t.Error("expected error for empty list")
	}
	if err := Validate(&List{Records: []Row{{CIP: "14.09"}}}); err == nil {
		t.Error("expected error for non-canonical code")
	}
	if err := Validate(&List{Records: []Row{{CIP: "14.0901"}, {CIP: "14.0901"}}}); err == nil {
		t.Error("expected error for duplicates")
	}
}
