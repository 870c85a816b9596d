// Package diet derives farmer-facing feeding summaries from raw diet
// optimization results. The derivation is pure: identical inputs produce
// identical summaries regardless of catalog map ordering.
package diet

import "math"

// Entry is one feed line in a feeding period.
type Entry struct {
	Name        string  `json:"name"`
	EnglishName string  `json:"english_name"`
	LocalName   string  `json:"local_name,omitempty"`
	QuantityKg  float64 `json:"quantity_kg"`
	Type        string  `json:"fd_type,omitempty"`
}

// Summary is the morning/evening feeding breakdown attached to a generated
// diet and stored with saved diet records. Morning and Evening always have
// the same length: one entry per optimization line item, each carrying half
// the daily quantity.
type Summary struct {
	Morning []Entry `json:"morning"`
	Evening []Entry `json:"evening"`
}

// Empty reports whether the summary contains no entries.
func (s Summary) Empty() bool {
	return len(s.Morning) == 0 && len(s.Evening) == 0
}

// LineItem is one feed-quantity row of a raw optimization result. The
// JSON tags match the optimizer's least_cost_diet wire shape so results
// decode straight into it.
type LineItem struct {
	FeedID           string  `json:"feed_id"`
	FeedName         string  `json:"feed_name"`
	QuantityKgPerDay float64 `json:"quantity_kg_per_day"`
}

// CatalogEntry carries the display fields of a master feed used to enrich
// summary entries.
type CatalogEntry struct {
	EnglishName string
	LocalName   string
	Type        string
}

// Catalog maps feed ids to display metadata.
type Catalog map[string]CatalogEntry

// Summarize splits each line item in half across morning and evening,
// rounding quantities to one decimal place. Names come from the catalog when
// the feed id is known there, falling back to the line item's own name and
// then to "Unknown".
func Summarize(items []LineItem, catalog Catalog) Summary {
	morning := make([]Entry, 0, len(items))
	evening := make([]Entry, 0, len(items))

	for _, item := range items {
		name := item.FeedName
		if name == "" {
			name = "Unknown"
		}
		var localName, feedType string
		if meta, ok := catalog[item.FeedID]; ok {
			if meta.EnglishName != "" {
				name = meta.EnglishName
			}
			localName = meta.LocalName
			feedType = meta.Type
		}

		half := round1(item.QuantityKgPerDay / 2)
		entry := Entry{
			Name:        name,
			EnglishName: name,
			LocalName:   localName,
			QuantityKg:  half,
			Type:        feedType,
		}
		morning = append(morning, entry)
		evening = append(evening, entry)
	}

	return Summary{Morning: morning, Evening: evening}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
