package diet

import (
	"encoding/json"
	"testing"
)

func TestSummarizeSplitsQuantitiesInHalf(t *testing.T) {
	items := []LineItem{
		{FeedID: "f1", FeedName: "Maize Silage", QuantityKgPerDay: 10.0},
		{FeedID: "f2", FeedName: "Cottonseed Cake", QuantityKgPerDay: 3.5},
	}

	s := Summarize(items, nil)

	if len(s.Morning) != 2 || len(s.Evening) != 2 {
		t.Fatalf("got %d morning / %d evening entries, want 2 / 2", len(s.Morning), len(s.Evening))
	}
	if s.Morning[0].QuantityKg != 5.0 {
		t.Errorf("morning[0] quantity = %v, want 5.0", s.Morning[0].QuantityKg)
	}
	if s.Evening[0].QuantityKg != 5.0 {
		t.Errorf("evening[0] quantity = %v, want 5.0", s.Evening[0].QuantityKg)
	}
	if s.Morning[1].QuantityKg != 1.8 {
		t.Errorf("morning[1] quantity = %v, want 1.8 (3.5/2 rounded)", s.Morning[1].QuantityKg)
	}
}

func TestSummarizeRoundsToOneDecimal(t *testing.T) {
	items := []LineItem{
		{FeedID: "f1", FeedName: "Straw", QuantityKgPerDay: 7.77},
	}

	s := Summarize(items, nil)

	if got := s.Morning[0].QuantityKg; got != 3.9 {
		t.Fatalf("quantity = %v, want 3.9", got)
	}
}

func TestSummarizeEnrichesFromCatalog(t *testing.T) {
	items := []LineItem{
		{FeedID: "f1", FeedName: "raw name", QuantityKgPerDay: 4},
		{FeedID: "f2", FeedName: "Berseem", QuantityKgPerDay: 2},
		{FeedID: "f3", QuantityKgPerDay: 2},
	}
	catalog := Catalog{
		"f1": {EnglishName: "Maize Silage", LocalName: "makka", Type: "roughage"},
	}

	s := Summarize(items, catalog)

	if got := s.Morning[0].Name; got != "Maize Silage" {
		t.Errorf("catalog name = %q, want %q", got, "Maize Silage")
	}
	if got := s.Morning[0].LocalName; got != "makka" {
		t.Errorf("local name = %q, want %q", got, "makka")
	}
	if got := s.Morning[0].Type; got != "roughage" {
		t.Errorf("type = %q, want %q", got, "roughage")
	}
	if got := s.Morning[1].Name; got != "Berseem" {
		t.Errorf("fallback name = %q, want the line item name %q", got, "Berseem")
	}
	if got := s.Morning[2].Name; got != "Unknown" {
		t.Errorf("missing name = %q, want %q", got, "Unknown")
	}
}

func TestSummarizeCatalogNameOnlyOverridesWhenSet(t *testing.T) {
	items := []LineItem{
		{FeedID: "f1", FeedName: "Wheat Bran", QuantityKgPerDay: 2},
	}
	catalog := Catalog{
		"f1": {LocalName: "choker"},
	}

	s := Summarize(items, catalog)

	if got := s.Morning[0].Name; got != "Wheat Bran" {
		t.Fatalf("name = %q, want line item name kept when catalog has no english name", got)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := Summarize(nil, nil)

	if !s.Empty() {
		t.Fatal("expected empty summary")
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"morning":[],"evening":[]}` {
		t.Fatalf("marshal = %s, want empty arrays, not null", got)
	}
}

func TestSummaryJSONRoundTrip(t *testing.T) {
	raw := `{"morning":[{"name":"Maize Silage","english_name":"Maize Silage","local_name":"makka","quantity_kg":5,"fd_type":"roughage"}],"evening":[{"name":"Maize Silage","english_name":"Maize Silage","quantity_kg":5}]}`

	var s Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(s.Morning) != 1 || len(s.Evening) != 1 {
		t.Fatalf("got %d/%d entries, want 1/1", len(s.Morning), len(s.Evening))
	}
	if s.Morning[0].LocalName != "makka" {
		t.Errorf("local name = %q, want %q", s.Morning[0].LocalName, "makka")
	}
	if s.Morning[0].QuantityKg != 5 {
		t.Errorf("quantity = %v, want 5", s.Morning[0].QuantityKg)
	}
}
