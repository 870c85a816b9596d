// Package country resolves loosely specified country signals, a name
// or an ISO code in whatever casing the caller has, to a backend
// country id.
package country

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rationsmart/rationsmart/backend"
)

// codeOverrides maps common two-letter codes onto the three-letter
// codes the backend stores.
var codeOverrides = map[string]string{
	"vn": "vnm",
	"in": "ind",
	"et": "eth",
	"id": "idn",
	"ph": "phl",
	"pk": "pak",
	"bd": "bgd",
	"np": "npl",
	"ke": "ken",
	"tz": "tza",
	"ug": "uga",
}

// Lister fetches the candidate countries. *backend.Client implements
// it.
type Lister interface {
	Countries(ctx context.Context) ([]backend.Country, error)
}

// Resolver matches country signals against the backend's country list.
// The list is fetched fresh on every call so newly activated countries
// resolve without a restart.
type Resolver struct {
	lister Lister
	logger *slog.Logger
}

// NewResolver creates a resolver over lister. A nil logger falls back
// to slog.Default().
func NewResolver(lister Lister, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{lister: lister, logger: logger}
}

// Resolve maps a code and/or name to a country id. Matching runs in
// strict priority order: exact name, exact code (after the override
// table), substring containment in either direction, first active
// country. It returns "" when nothing matches; the caller must not
// guess an id.
func (r *Resolver) Resolve(ctx context.Context, code, name string) (string, error) {
	countries, err := r.lister.Countries(ctx)
	if err != nil {
		return "", err
	}

	normName := normalizeName(name)
	mappedCode := mapCode(normalizeCode(code))

	if normName != "" {
		for _, c := range countries {
			if normalizeName(c.Name) == normName {
				r.logger.Debug("country resolved", "step", "exact_name", "country_id", c.ID, "country", c.Name)
				return string(c.ID), nil
			}
		}
	}
	if mappedCode != "" {
		for _, c := range countries {
			if normalizeCode(c.Code) == mappedCode {
				r.logger.Debug("country resolved", "step", "exact_code", "country_id", c.ID, "country", c.Name)
				return string(c.ID), nil
			}
		}
	}
	if normName != "" {
		for _, c := range countries {
			candidate := normalizeName(c.Name)
			if strings.Contains(candidate, normName) || strings.Contains(normName, candidate) {
				r.logger.Debug("country resolved", "step", "name_substring", "country_id", c.ID, "country", c.Name)
				return string(c.ID), nil
			}
		}
	}
	for _, c := range countries {
		if c.IsActive {
			r.logger.Debug("country resolved", "step", "first_active", "country_id", c.ID, "country", c.Name)
			return string(c.ID), nil
		}
	}

	r.logger.Debug("country resolution failed", "code", code, "name", name)
	return "", nil
}

// normalizeName lowercases and collapses interior whitespace.
func normalizeName(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

func normalizeCode(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func mapCode(code string) string {
	if mapped, ok := codeOverrides[code]; ok {
		return mapped
	}
	return code
}
