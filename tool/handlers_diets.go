package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/rationsmart/rationsmart/backend"
	"github.com/rationsmart/rationsmart/diet"
)

const noActiveDietText = "No active diet. Generate a diet and use 'rationsmart.diets.follow' to start following it."

func (d *Dispatcher) generateDiet(ctx context.Context, args Arguments) (string, error) {
	deviceID := args.String("device_id")
	cowID := args.String("cow_id")

	countryID := args.String("country_id")
	if countryID == "" {
		code := args.String("country_code")
		name := args.String("country_name")
		if code == "" && name == "" && args.Has("latitude") && args.Has("longitude") {
			loc, err := d.client.ResolveLocation(ctx, args.Float("latitude", 0), args.Float("longitude", 0))
			if err != nil {
				return "", err
			}
			code = loc.CountryCode
			name = loc.CountryName
		}
		if code != "" || name != "" {
			id, err := d.resolver.Resolve(ctx, code, name)
			if err != nil {
				return "", err
			}
			countryID = id
		}
	}
	if countryID == "" {
		return "Error: country_id or country_code/latitude+longitude is required", nil
	}

	cow, err := d.client.GetCow(ctx, cowID, deviceID)
	if err != nil {
		return "", err
	}
	cowName := cow.Name
	if cowName == "" {
		cowName = "the cow"
	}

	gen, err := d.client.GenerateDietForCow(ctx, cowID, deviceID, countryID)
	if err != nil {
		return "", err
	}

	var dietID string
	if args.Bool("save_diet", true) {
		saved, err := d.client.SaveDiet(ctx, backend.SaveDietParams{
			DeviceID:    deviceID,
			CowID:       cowID,
			Name:        "Diet for " + cowName,
			DietSummary: gen.DietSummary,
			FullResult:  gen.FullResult(),
			TotalCost:   gen.TotalCostPerDay,
			Currency:    gen.Currency,
		})
		if err != nil {
			return "", err
		}
		dietID = string(saved.ID)
	}

	lines := []string{fmt.Sprintf("Diet for %s:\n", cowName)}
	lines = append(lines, diet.FormatSchedule(gen.DietSummary))
	if gen.TotalCostPerDay != 0 {
		lines = append(lines, fmt.Sprintf("\nDaily Cost: %s %.2f", currencyOr(gen.Currency), gen.TotalCostPerDay))
	}
	if dietID != "" {
		lines = append(lines, fmt.Sprintf("\nDiet saved (ID: %s)", dietID))
		lines = append(lines, "Use 'rationsmart.diets.follow' to start following this diet.")
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) getSchedule(ctx context.Context, args Arguments) (string, error) {
	deviceID := args.String("device_id")
	cowID := args.String("cow_id")

	rec, err := d.client.ActiveDiet(ctx, cowID, deviceID)
	if err != nil {
		if backend.IsNotFound(err) {
			return noActiveDietText, nil
		}
		return "", err
	}
	cow, err := d.client.GetCow(ctx, cowID, deviceID)
	if err != nil {
		if backend.IsNotFound(err) {
			return noActiveDietText, nil
		}
		return "", err
	}

	costLine := ""
	if rec.TotalCostPerDay != 0 {
		costLine = fmt.Sprintf("\nDaily Cost: %s %.2f", currencyOr(rec.Currency), rec.TotalCostPerDay)
	}
	cowName := cow.Name
	if cowName == "" {
		cowName = "cow"
	}
	return fmt.Sprintf("Schedule for %s:\n\n%s%s", cowName, diet.FormatSchedule(rec.DietSummary), costLine), nil
}

func (d *Dispatcher) listHistory(ctx context.Context, args Arguments) (string, error) {
	diets, err := d.client.DietHistory(ctx, args.String("device_id"), args.String("cow_id"))
	if err != nil {
		return "", err
	}
	if len(diets) == 0 {
		return "No diet history.", nil
	}
	lines := []string{fmt.Sprintf("Found %d diet(s):\n", len(diets))}
	for _, rec := range diets {
		name := rec.Name
		if name == "" {
			name = "Unnamed"
		}
		active := ""
		if rec.IsActive {
			active = " (ACTIVE)"
		}
		costStr := ""
		if rec.TotalCostPerDay != 0 {
			costStr = fmt.Sprintf(", %s %.2f/day", currencyOr(rec.Currency), rec.TotalCostPerDay)
		}
		lines = append(lines, fmt.Sprintf("- %s%s\n  ID: %s%s", name, active, rec.ID, costStr))
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) followDiet(ctx context.Context, args Arguments) (string, error) {
	rec, err := d.client.FollowDiet(ctx, args.String("diet_id"), args.String("device_id"))
	if err != nil {
		return "", err
	}
	name := rec.Name
	if name == "" {
		name = "diet"
	}
	return fmt.Sprintf("Now following: %s\nFollow-up reminders are now enabled.", name), nil
}

func (d *Dispatcher) unfollowDiet(ctx context.Context, args Arguments) (string, error) {
	if err := d.client.UnfollowDiet(ctx, args.String("diet_id"), args.String("device_id")); err != nil {
		return "", err
	}
	return "Stopped following the diet.", nil
}

func currencyOr(currency string) string {
	if currency == "" {
		return "INR"
	}
	return currency
}
