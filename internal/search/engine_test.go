package search

import (
	"reflect"
	"testing"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/index"
)

// testRecords is deliberately NOT in code order so stored-order vs.
// code-order behavior is observable.
func testRecords() []index.Record {
	return []index.Record{
		{Code: "14.0901", Title: "Computer Engineering, General", Definition: "A program that prepares individuals to apply engineering principles to computer hardware.", STEMEligible: true},
		{Code: "14.0903", Title: "Computer Software Engineering", Definition: "Software development and engineering methods.", STEMEligible: true},
		{Code: "14.0902", Title: "Computer Hardware Engineering", Definition: "See also 14.0901 for the general program.", STEMEligible: false},
		{Code: "14.1001", Title: "Electrical Engineering", Definition: "Circuits and systems.", STEMEligible: true},
		{Code: "26.0101", Title: "Biology, General", Definition: "The study of living organisms.", STEMEligible: true},
		{Code: "30.0000", Title: "Multi-/Interdisciplinary Studies", Definition: "", STEMEligible: false},
		{Code: "52.0201", Title: "Business Administration", Definition: "General management of organizations. Mentions computer literacy.", STEMEligible: false},
	}
}

func codes(recs []index.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Code
	}
	return out
}

func TestSearch_ExactCodeShortCircuits(t *testing.T) {
	e := NewEngine(testRecords())

	// "14.0901" appears as text in 14.0902's definition; only the exact
	// record may come back.
	got := e.Search(Options{Query: "14.0901", Limit: 10})
	if want := []string{"14.0901"}; !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("exact search returned %v, want %v", codes(got), want)
	}
}

func TestSearch_ExactCodeSTEMFiltered(t *testing.T) {
	e := NewEngine(testRecords())

	got := e.Search(Options{Query: "14.0902", STEMOnly: true, Limit: 10})
	if len(got) != 0 {
		t.Fatalf("exact match on non-eligible record with STEM filter should be empty, got %v", codes(got))
	}
}

func TestSearch_FamilyFragment(t *testing.T) {
	e := NewEngine(testRecords())

	got := e.Search(Options{Query: "14", Limit: 10})
	want := []string{"14.0901", "14.0902", "14.0903", "14.1001"}
	if !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("family search returned %v, want %v", codes(got), want)
	}
}

func TestSearch_FamilyCodeMatchesWholeFamily(t *testing.T) {
	e := NewEngine(testRecords())

	// "14.0000" canonicalizes to a family code and must match every
	// record in family 14, not just codes prefixed "14.00".
	got := e.Search(Options{Query: "14.0000", Limit: 10})
	want := []string{"14.0901", "14.0902", "14.0903", "14.1001"}
	if !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("family-code search returned %v, want %v", codes(got), want)
	}
}

func TestSearch_FamilyCodeWithOwnRecord(t *testing.T) {
	// Family 30 has its own "30.0000" record; a family query still takes
	// the family path, never the exact-match branch.
	e := NewEngine(testRecords())
	got := e.Search(Options{Query: "30", Limit: 10})
	if want := []string{"30.0000"}; !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("family 30 search returned %v, want %v", codes(got), want)
	}
}

func TestSearch_SubfamilyRollup(t *testing.T) {
	e := NewEngine(testRecords())

	got := e.Search(Options{Query: "14.09", Limit: 10})
	want := []string{"14.0901", "14.0902", "14.0903"}
	if !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("subfamily search returned %v, want %v", codes(got), want)
	}
}

func TestSearch_PaddedFragmentRecoversSubfamily(t *testing.T) {
	e := NewEngine(testRecords())

	// "14.1" pads to "14.1000"; the canonical prefix recovers 14.10xx.
	got := e.Search(Options{Query: "14.1", Limit: 10})
	if want := []string{"14.1001"}; !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("padded fragment search returned %v, want %v", codes(got), want)
	}
}

func TestSearch_KeywordANDSemantics(t *testing.T) {
	e := NewEngine(testRecords())

	got := e.Search(Options{Query: "computer engineering", Limit: 10})
	want := []string{"14.0901", "14.0902", "14.0903"}
	if !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("keyword search returned %v, want %v", codes(got), want)
	}

	// 52.0201 contains "computer" but not "engineering": excluded above,
	// included for the single token.
	got = e.Search(Options{Query: "computer", Limit: 10})
	want = []string{"14.0901", "14.0902", "14.0903", "52.0201"}
	if !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("single-keyword search returned %v, want %v", codes(got), want)
	}
}

func TestSearch_KeywordCaseInsensitive(t *testing.T) {
	e := NewEngine(testRecords())

	got := e.Search(Options{Query: "BIOLOGY", Limit: 10})
	if want := []string{"26.0101"}; !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("case-insensitive search returned %v, want %v", codes(got), want)
	}
}

func TestSearch_STEMSubsetProperty(t *testing.T) {
	e := NewEngine(testRecords())

	for _, q := range []string{"", "14", "14.09", "computer", "engineering", "14.0901"} {
		all := e.Search(Options{Query: q, Limit: 100})
		stem := e.Search(Options{Query: q, STEMOnly: true, Limit: 100})

		inAll := map[string]bool{}
		for _, r := range all {
			inAll[r.Code] = true
		}
		for _, r := range stem {
			if !r.STEMEligible {
				t.Errorf("query %q: non-eligible record %s in STEM results", q, r.Code)
			}
			if !inAll[r.Code] {
				t.Errorf("query %q: STEM result %s not in unfiltered results", q, r.Code)
			}
		}
	}
}

func TestSearch_LimitBound(t *testing.T) {
	e := NewEngine(testRecords())

	for _, q := range []string{"", "14", "engineering"} {
		for _, limit := range []int{1, 2, 3} {
			got := e.Search(Options{Query: q, Limit: limit})
			if len(got) > limit {
				t.Errorf("query %q limit %d: got %d results", q, limit, len(got))
			}
		}
	}
}

func TestSearch_EmptyQueryBrowsesStoredOrder(t *testing.T) {
	e := NewEngine(testRecords())

	got := e.Search(Options{Query: "", Limit: 3})
	// Stored order, not code order: 14.0901, 14.0903, 14.0902.
	want := []string{"14.0901", "14.0903", "14.0902"}
	if !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("empty query returned %v, want stored order %v", codes(got), want)
	}
}

func TestSearch_EmptyQuerySTEMOnly(t *testing.T) {
	e := NewEngine(testRecords())

	got := e.Search(Options{Query: "", STEMOnly: true, Limit: 10})
	want := []string{"14.0901", "14.0903", "14.1001", "26.0101"}
	if !reflect.DeepEqual(codes(got), want) {
		t.Fatalf("empty STEM query returned %v, want %v", codes(got), want)
	}
}

func TestSearch_NoResultsIsEmptyNotNil(t *testing.T) {
	e := NewEngine(testRecords())

	got := e.Search(Options{Query: "underwater basket weaving", Limit: 10})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	e := NewEngine(testRecords())

	first := e.Search(Options{Query: "engineering", Limit: 10})
	for i := 0; i < 5; i++ {
		again := e.Search(Options{Query: "engineering", Limit: 10})
		if !reflect.DeepEqual(codes(first), codes(again)) {
			t.Fatalf("run %d differed: %v vs %v", i, codes(first), codes(again))
		}
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	recs := testRecords()
	e := NewEngine(recs)
	if recs[0].NormalizedTitle != "" {
		t.Fatal("NewEngine mutated the caller's records")
	}
	_ = e.Search(Options{Query: "computer", Limit: 10})
	if recs[0].NormalizedTitle != "" {
		t.Fatal("Search mutated the caller's records")
	}
}

func TestNewEngine_DuplicateCodesLastWriteWins(t *testing.T) {
	recs := []index.Record{
		{Code: "14.0901", Title: "Old"},
		{Code: "14.0901", Title: "New"},
	}
	e := NewEngine(recs)
	got := e.Search(Options{Query: "14.0901", Limit: 10})
	if len(got) != 1 || got[0].Title != "New" {
		t.Fatalf("duplicate codes: got %v, want the later record", got)
	}
}
