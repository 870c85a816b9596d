package tool

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rationsmart/rationsmart/backend"
)

func (d *Dispatcher) createCow(ctx context.Context, args Arguments) (string, error) {
	cow, err := d.client.CreateCow(ctx, backend.CreateCowParams{
		DeviceID:        args.String("device_id"),
		Name:            args.String("name"),
		Breed:           args.String("breed"),
		BodyWeight:      args.Float("body_weight", 400),
		Lactating:       args.Bool("lactating", true),
		MilkProduction:  args.Float("milk_production", 10),
		TargetMilkYield: args.Float("target_milk_yield", 0),
		DaysInMilk:      args.Int("days_in_milk", 100),
		Parity:          args.Int("parity", 2),
		DaysOfPregnancy: args.Int("days_of_pregnancy", 0),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created cow profile:\n"+
		"- Name: %s\n"+
		"- ID: %s\n"+
		"- Breed: %s\n"+
		"- Weight: %s kg\n"+
		"- Milk: %s L/day",
		cow.Name, cow.ID, breedOr(cow.Breed, "Not specified"),
		formatNumber(floatValue(cow.BodyWeight)),
		formatNumber(floatValue(cow.MilkProduction))), nil
}

func (d *Dispatcher) listCows(ctx context.Context, args Arguments) (string, error) {
	cows, err := d.client.ListCows(ctx, args.String("device_id"), args.Bool("include_inactive", false))
	if err != nil {
		return "", err
	}
	if len(cows) == 0 {
		return "No cows found.", nil
	}
	lines := []string{fmt.Sprintf("Found %d cow(s):\n", len(cows))}
	for _, cow := range cows {
		status := "Dry"
		milk := "N/A"
		if cow.Lactating != nil && *cow.Lactating {
			status = "Lactating"
			milk = formatNumber(floatValue(cow.MilkProduction)) + " L/day"
		}
		lines = append(lines, fmt.Sprintf("- %s (ID: %s)\n  Breed: %s | %s | Milk: %s",
			cow.Name, cow.ID, breedOr(cow.Breed, "Unknown"), status, milk))
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) getCow(ctx context.Context, args Arguments) (string, error) {
	cow, err := d.client.GetCow(ctx, args.String("cow_id"), args.String("device_id"))
	if err != nil {
		return "", err
	}
	lactating := "No"
	if cow.Lactating != nil && *cow.Lactating {
		lactating = "Yes"
	}
	target := "Not set"
	if cow.TargetMilkYield != 0 {
		target = formatNumber(cow.TargetMilkYield) + " L/day"
	}
	return fmt.Sprintf("Cow: %s\n"+
		"ID: %s\n"+
		"Breed: %s\n"+
		"Weight: %s kg\n"+
		"Lactating: %s\n"+
		"Milk: %s L/day\n"+
		"Target: %s\n"+
		"Days in Milk: %d\n"+
		"Parity: %d\n"+
		"Pregnancy: %d days",
		cow.Name, cow.ID, breedOr(cow.Breed, "Not specified"),
		formatNumber(floatValue(cow.BodyWeight)), lactating,
		formatNumber(floatValue(cow.MilkProduction)), target,
		intValue(cow.DaysInMilk), intValue(cow.Parity), cow.DaysOfPregnancy), nil
}

func (d *Dispatcher) updateCow(ctx context.Context, args Arguments) (string, error) {
	updates := make(map[string]any)
	for k, v := range args {
		if k == "device_id" || k == "cow_id" || v == nil {
			continue
		}
		updates[k] = v
	}
	if len(updates) == 0 {
		return "No updates provided.", nil
	}
	cow, err := d.client.UpdateCow(ctx, args.String("cow_id"), args.String("device_id"), updates)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated %s successfully.", cow.Name), nil
}

func (d *Dispatcher) deleteCow(ctx context.Context, args Arguments) (string, error) {
	res, err := d.client.DeleteCow(ctx, args.String("cow_id"), args.String("device_id"), args.Bool("permanent", false))
	if err != nil {
		return "", err
	}
	if res.Message == "" {
		return "Cow deleted.", nil
	}
	return res.Message, nil
}

func breedOr(breed, fallback string) string {
	if breed == "" {
		return fallback
	}
	return breed
}

func floatValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// formatNumber renders a quantity the way a farmer reads it: whole
// numbers without a decimal point, fractional values in full.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
