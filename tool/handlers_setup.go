package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

func (d *Dispatcher) listCountries(ctx context.Context, args Arguments) (string, error) {
	countries, err := d.client.Countries(ctx)
	if err != nil {
		return "", err
	}
	lines := []string{"Available countries:\n"}
	for _, c := range countries {
		currency := c.Currency
		if currency == "" {
			currency = "N/A"
		}
		lines = append(lines, fmt.Sprintf("- %s (ID: %s, Currency: %s)", c.Name, c.ID, currency))
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) listBreeds(ctx context.Context, args Arguments) (string, error) {
	breeds, err := d.client.Breeds(ctx, args.String("country_id"))
	if err != nil {
		return "", err
	}
	if len(breeds) == 0 {
		return "No breeds found.", nil
	}
	lines := []string{"Available breeds:\n"}
	for _, b := range breeds {
		lines = append(lines, "- "+b.Name)
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) resolveLocation(ctx context.Context, args Arguments) (string, error) {
	loc, err := d.client.ResolveLocation(ctx, args.Float("latitude", 0), args.Float("longitude", 0))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, loc.Raw()); err != nil {
		return "", fmt.Errorf("tool: compact location response: %w", err)
	}
	return buf.String(), nil
}

func (d *Dispatcher) resolveCountry(ctx context.Context, args Arguments) (string, error) {
	code := args.String("country_code")
	name := args.String("country_name")
	if code == "" && name == "" {
		if !args.Has("latitude") || !args.Has("longitude") {
			return "Error: provide country_code/country_name or latitude/longitude", nil
		}
		loc, err := d.client.ResolveLocation(ctx, args.Float("latitude", 0), args.Float("longitude", 0))
		if err != nil {
			return "", err
		}
		code = loc.CountryCode
		name = loc.CountryName
	}

	countryID, err := d.resolver.Resolve(ctx, code, name)
	if err != nil {
		return "", err
	}
	if countryID == "" {
		return "Error: unable to resolve country_id", nil
	}

	payload := struct {
		CountryID   string  `json:"country_id"`
		CountryCode *string `json:"country_code"`
		CountryName *string `json:"country_name"`
	}{CountryID: countryID, CountryCode: optString(code), CountryName: optString(name)}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
