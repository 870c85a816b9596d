package country

import (
	"context"
	"errors"
	"testing"

	"github.com/rationsmart/rationsmart/backend"
)

type staticLister []backend.Country

func (l staticLister) Countries(ctx context.Context) ([]backend.Country, error) {
	return l, nil
}

type failingLister struct{ err error }

func (l failingLister) Countries(ctx context.Context) ([]backend.Country, error) {
	return nil, l.err
}

func TestResolvePrecedence(t *testing.T) {
	countries := staticLister{
		{ID: "1", Name: "India", Code: "ind", IsActive: true},
		{ID: "2", Name: "Indonesia", Code: "idn", IsActive: true},
		{ID: "3", Name: "Vietnam", Code: "vnm"},
	}
	r := NewResolver(countries, nil)

	tests := []struct {
		name    string
		code    string
		country string
		want    string
	}{
		{name: "exact name wins over matching code", code: "in", country: "Indonesia", want: "2"},
		{name: "two letter code mapped through overrides", code: "IN", want: "1"},
		{name: "unlisted code passes through", code: "vnm", want: "3"},
		{name: "substring in record name", country: "republic of india", want: "1"},
		{name: "substring of record name", country: "ind", want: "1"},
		{name: "normalized whitespace and case", country: "  InDoNeSiA  ", want: "2"},
		{name: "no match falls back to first active", country: "atlantis", want: "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.code, tt.country)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Resolve(%q, %q) = %q, want %q", tt.code, tt.country, got, tt.want)
			}
		})
	}
}

func TestResolveSubstringBeatsActiveFallback(t *testing.T) {
	countries := staticLister{
		{ID: "1", Name: "Atlantis", IsActive: true},
		{ID: "2", Name: "North India", IsActive: true},
	}
	r := NewResolver(countries, nil)

	got, err := r.Resolve(context.Background(), "", "india")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "2" {
		t.Fatalf("Resolve = %q, want the substring match 2, not the active fallback", got)
	}
}

func TestResolveNoMatchReturnsEmpty(t *testing.T) {
	countries := staticLister{
		{ID: "1", Name: "India", Code: "ind"},
		{ID: "2", Name: "Vietnam", Code: "vnm"},
	}
	r := NewResolver(countries, nil)

	got, err := r.Resolve(context.Background(), "xx", "atlantis")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "" {
		t.Fatalf("Resolve = %q, want no id when nothing matches and nothing is active", got)
	}
}

func TestResolveCollapsesNameWhitespace(t *testing.T) {
	countries := staticLister{
		{ID: "9", Name: "South Sudan", Code: "ssd", IsActive: true},
	}
	r := NewResolver(countries, nil)

	got, err := r.Resolve(context.Background(), "", " SOUTH   sudan ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "9" {
		t.Fatalf("Resolve = %q, want 9", got)
	}
}

func TestResolveListerError(t *testing.T) {
	wantErr := errors.New("backend down")
	r := NewResolver(failingLister{err: wantErr}, nil)

	_, err := r.Resolve(context.Background(), "in", "")
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want the lister error", err)
	}
}

func TestMapCode(t *testing.T) {
	if got := mapCode("in"); got != "ind" {
		t.Errorf("mapCode(in) = %q, want ind", got)
	}
	if got := mapCode("fr"); got != "fr" {
		t.Errorf("mapCode(fr) = %q, want unchanged fr", got)
	}
}
