package backend

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/rationsmart/rationsmart/diet"
)

// ErrNoFeeds is returned when a country's master feed list yields no
// usable feed ids. The text is surfaced to the caller verbatim.
var ErrNoFeeds = errors.New("No feeds available for this country")

// GeneratedDiet is the outcome of one diet optimization run, with the
// feeding summary already derived from the raw result.
type GeneratedDiet struct {
	LeastCostDiet   []diet.LineItem
	DietSummary     diet.Summary
	TotalCostPerDay float64
	Currency        string

	raw map[string]any
}

// FullResult returns the optimizer's response document with the
// derived summary, daily cost, and currency attached.
func (g *GeneratedDiet) FullResult() map[string]any {
	full := make(map[string]any, len(g.raw)+3)
	for k, v := range g.raw {
		full[k] = v
	}
	full["diet_summary"] = g.DietSummary
	full["total_cost_per_day"] = g.TotalCostPerDay
	full["currency"] = g.Currency
	return full
}

// GenerateDietForCow runs the full diet recommendation workflow for
// one cow: fetch the profile, fetch the country's feeds, build the
// optimization request, and derive the feeding summary from the
// result.
func (c *Client) GenerateDietForCow(ctx context.Context, cowID, deviceID, countryID string) (*GeneratedDiet, error) {
	cow, err := c.GetCow(ctx, cowID, deviceID)
	if err != nil {
		return nil, err
	}
	feeds, err := c.Feeds(ctx, countryID)
	if err != nil {
		return nil, err
	}

	selection := make([]map[string]any, 0, len(feeds))
	catalog := make(diet.Catalog, len(feeds))
	for _, f := range feeds {
		key := f.Key()
		if key == "" {
			continue
		}
		selection = append(selection, map[string]any{
			"feed_id":      key,
			"price_per_kg": f.PricePerKg(),
		})
		catalog[key] = diet.CatalogEntry{
			EnglishName: f.DisplayName(),
			LocalName:   f.LocalName,
			Type:        f.Type,
		}
	}
	if len(selection) == 0 {
		return nil, ErrNoFeeds
	}

	payload := map[string]any{
		"simulation_id":  newSimulationID(),
		"user_id":        deviceID,
		"cattle_info":    cattleInfo(cow),
		"feed_selection": selection,
	}

	body, err := c.doRaw(ctx, "generate diet", http.MethodPost, "/diet-recommendation-working/", nil, payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		LeastCostDiet []diet.LineItem `json:"least_cost_diet"`
		TotalDietCost float64         `json:"total_diet_cost"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("backend: decode generate diet response: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("backend: decode generate diet response: %w", err)
	}

	return &GeneratedDiet{
		LeastCostDiet:   result.LeastCostDiet,
		DietSummary:     diet.Summarize(result.LeastCostDiet, catalog),
		TotalCostPerDay: result.TotalDietCost,
		Currency:        "INR",
		raw:             raw,
	}, nil
}

// SaveDietParams are the inputs for SaveDiet. Name and Status default
// to "Generated Diet" and "saved".
type SaveDietParams struct {
	DeviceID    string
	CowID       string
	Name        string
	Status      string
	IsActive    bool
	DietSummary diet.Summary
	FullResult  map[string]any
	TotalCost   float64
	Currency    string
}

// SaveDiet stores a generated diet in the device's history.
func (c *Client) SaveDiet(ctx context.Context, params SaveDietParams) (*DietRecord, error) {
	name := params.Name
	if name == "" {
		name = "Generated Diet"
	}
	status := params.Status
	if status == "" {
		status = "saved"
	}
	payload := map[string]any{
		"telegram_user_id":   params.DeviceID,
		"cow_profile_id":     params.CowID,
		"simulation_id":      "mcp-" + shortID(params.CowID),
		"name":               name,
		"status":             status,
		"is_active":          params.IsActive,
		"diet_summary":       params.DietSummary,
		"full_result":        params.FullResult,
		"total_cost_per_day": params.TotalCost,
		"currency":           params.Currency,
	}
	var out DietRecord
	if err := c.do(ctx, "save diet", http.MethodPost, "/bot-diet-history/", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// cattleInfo maps a cow profile onto the optimizer's cattle_info
// payload, substituting herd-standard defaults for missing fields. The
// milk production target prefers the profile's target yield when one
// is set.
func cattleInfo(cow *CowProfile) map[string]any {
	milkYield := orDefault(cow.MilkProduction, 10)
	if cow.TargetMilkYield != 0 {
		milkYield = cow.TargetMilkYield
	}
	return map[string]any{
		"body_weight":       orDefault(cow.BodyWeight, 400),
		"breed":             cow.Breed,
		"lactating":         orDefault(cow.Lactating, true),
		"milk_production":   milkYield,
		"days_in_milk":      orDefault(cow.DaysInMilk, 100),
		"parity":            orDefault(cow.Parity, 2),
		"days_of_pregnancy": cow.DaysOfPregnancy,
		"tp_milk":           orDefault(cow.MilkProteinPercent, 3.5),
		"fat_milk":          orDefault(cow.MilkFatPercent, 4.0),
		"temperature":       25,
		"topography":        "Flat",
		"distance":          1,
		"calving_interval":  370,
		"bw_gain":           0.2,
		"bc_score":          3,
	}
}

func orDefault[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func newSimulationID() string {
	u := uuid.New()
	return "mcp-" + hex.EncodeToString(u[:4])
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
