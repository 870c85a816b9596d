package diet

import (
	"fmt"
	"strings"
)

// FormatSchedule renders a summary as a readable feeding schedule.
// Quantities of a kilogram or more print as kg with one decimal; smaller
// positive quantities print as whole grams; zero quantities are skipped.
// An empty schedule renders as "No schedule available".
func FormatSchedule(s Summary) string {
	var lines []string
	periods := []struct {
		title   string
		entries []Entry
	}{
		{"Morning", s.Morning},
		{"Evening", s.Evening},
	}

	for _, period := range periods {
		if len(period.entries) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s Feeding:", period.title))
		for _, entry := range period.entries {
			name := entry.EnglishName
			if name == "" {
				name = entry.Name
			}
			if name == "" {
				name = "Unknown"
			}
			switch {
			case entry.QuantityKg >= 1:
				lines = append(lines, fmt.Sprintf("  - %s: %.1f kg", name, entry.QuantityKg))
			case entry.QuantityKg > 0:
				lines = append(lines, fmt.Sprintf("  - %s: %.0f grams", name, entry.QuantityKg*1000))
			}
		}
		lines = append(lines, "")
	}

	out := strings.TrimSpace(strings.Join(lines, "\n"))
	if out == "" {
		return "No schedule available"
	}
	return out
}
