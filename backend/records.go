// Package backend is the HTTP client for the RationSmart backend API.
// It exposes the backend's records as typed structs and keeps every
// non-2xx response as an *APIError so handlers can branch on status.
package backend

import (
	"encoding/json"
	"fmt"

	"github.com/rationsmart/rationsmart/diet"
)

// StringID is a backend identifier. Some deployments return ids as JSON
// numbers, others as strings; StringID accepts both and renders the
// numeric form digit-for-digit.
type StringID string

func (id *StringID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("backend: id must be a string or number: %w", err)
	}
	*id = StringID(n.String())
	return nil
}

func (id StringID) String() string { return string(id) }

// Country is one entry of the backend's country listing.
type Country struct {
	ID       StringID `json:"id"`
	Name     string   `json:"name"`
	Code     string   `json:"country_code"`
	Currency string   `json:"currency"`
	IsActive bool     `json:"is_active"`
}

// Breed is one entry of a country's breed listing.
type Breed struct {
	ID   StringID `json:"id"`
	Name string   `json:"name"`
}

// Location is the geocoding result for a latitude/longitude pair. The
// full response document is kept verbatim so callers can pass it
// through untouched.
type Location struct {
	CountryCode string
	CountryName string

	raw json.RawMessage
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var fields struct {
		CountryCode string `json:"country_code"`
		CountryName string `json:"country_name"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	l.CountryCode = fields.CountryCode
	l.CountryName = fields.CountryName
	l.raw = append(l.raw[:0], data...)
	return nil
}

// Raw returns the backend's response document as received.
func (l *Location) Raw() json.RawMessage { return l.raw }

// CowProfile is a cow profile record. Fields whose absence means
// something different from zero are pointers; the generation workflow
// substitutes its defaults for nil.
type CowProfile struct {
	ID                 StringID `json:"id"`
	Name               string   `json:"name"`
	Breed              string   `json:"breed"`
	BodyWeight         *float64 `json:"body_weight"`
	Lactating          *bool    `json:"lactating"`
	MilkProduction     *float64 `json:"milk_production"`
	TargetMilkYield    float64  `json:"target_milk_yield"`
	DaysInMilk         *int     `json:"days_in_milk"`
	Parity             *int     `json:"parity"`
	DaysOfPregnancy    int      `json:"days_of_pregnancy"`
	MilkFatPercent     *float64 `json:"milk_fat_percent"`
	MilkProteinPercent *float64 `json:"milk_protein_percent"`
}

// Feed is one entry of a country's master feed listing.
type Feed struct {
	FeedID        StringID `json:"feed_id"`
	ID            StringID `json:"id"`
	EnglishName   string   `json:"fd_name"`
	Name          string   `json:"name"`
	LocalName     string   `json:"local_name"`
	Type          string   `json:"fd_type"`
	Category      string   `json:"fd_category"`
	BaselinePrice float64  `json:"baseline_price"`
}

// Key returns the identifier used to reference the feed in a diet
// request, preferring feed_id over id. Empty when the record carries
// neither.
func (f Feed) Key() string {
	if f.FeedID != "" {
		return string(f.FeedID)
	}
	return string(f.ID)
}

// DisplayName returns the feed's English name, falling back to the
// generic name and then "Unknown".
func (f Feed) DisplayName() string {
	if f.EnglishName != "" {
		return f.EnglishName
	}
	if f.Name != "" {
		return f.Name
	}
	return "Unknown"
}

// PricePerKg returns the baseline price, or 1.0 when the record has
// none.
func (f Feed) PricePerKg() float64 {
	if f.BaselinePrice == 0 {
		return defaultFeedPrice
	}
	return f.BaselinePrice
}

// DeleteResult is the backend's acknowledgement of a delete.
type DeleteResult struct {
	Message string `json:"message"`
}

// DietRecord is a saved diet-history record.
type DietRecord struct {
	ID              StringID     `json:"id"`
	Name            string       `json:"name"`
	Status          string       `json:"status"`
	IsActive        bool         `json:"is_active"`
	DietSummary     diet.Summary `json:"diet_summary"`
	TotalCostPerDay float64      `json:"total_cost_per_day"`
	Currency        string       `json:"currency"`
}

type breedList struct {
	Breeds []Breed `json:"breeds"`
}

type cowProfileList struct {
	CowProfiles []CowProfile `json:"cow_profiles"`
}

type dietHistory struct {
	Diets []DietRecord `json:"diets"`
}
