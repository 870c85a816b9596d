package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
}

func TestCountriesSendsHeaders(t *testing.T) {
	var gotKey, gotAccept string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotAccept = r.Header.Get("Accept")
		if r.URL.Path != "/auth/countries" {
			t.Errorf("path = %q, want /auth/countries", r.URL.Path)
		}
		w.Write([]byte(`[{"id":1,"name":"India","country_code":"ind","currency":"INR","is_active":true}]`))
	}))

	countries, err := client.Countries(context.Background())
	if err != nil {
		t.Fatalf("Countries: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("X-API-Key = %q, want %q", gotKey, "test-key")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
	if len(countries) != 1 {
		t.Fatalf("got %d countries, want 1", len(countries))
	}
	if countries[0].ID != "1" {
		t.Errorf("numeric id decoded as %q, want %q", countries[0].ID, "1")
	}
	if !countries[0].IsActive {
		t.Error("IsActive = false, want true")
	}
}

func TestBreedsUnwrapsList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/breeds/7" {
			t.Errorf("path = %q, want /auth/breeds/7", r.URL.Path)
		}
		w.Write([]byte(`{"breeds":[{"id":"b1","name":"Gir"},{"id":"b2","name":"Sahiwal"}]}`))
	}))

	breeds, err := client.Breeds(context.Background(), "7")
	if err != nil {
		t.Fatalf("Breeds: %v", err)
	}
	if len(breeds) != 2 {
		t.Fatalf("got %d breeds, want 2", len(breeds))
	}
	if breeds[1].Name != "Sahiwal" {
		t.Errorf("breeds[1].Name = %q, want %q", breeds[1].Name, "Sahiwal")
	}
}

func TestResolveLocationKeepsRawDocument(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("latitude"); got != "12.97" {
			t.Errorf("latitude = %q, want %q", got, "12.97")
		}
		if got := r.URL.Query().Get("longitude"); got != "77.59" {
			t.Errorf("longitude = %q, want %q", got, "77.59")
		}
		w.Write([]byte(`{"country_code":"in","country_name":"India","region":"Karnataka"}`))
	}))

	loc, err := client.ResolveLocation(context.Background(), 12.97, 77.59)
	if err != nil {
		t.Fatalf("ResolveLocation: %v", err)
	}
	if loc.CountryCode != "in" || loc.CountryName != "India" {
		t.Errorf("got %q/%q, want in/India", loc.CountryCode, loc.CountryName)
	}
	if !strings.Contains(string(loc.Raw()), `"region":"Karnataka"`) {
		t.Errorf("raw document lost fields: %s", loc.Raw())
	}
}

func TestCreateCowPayload(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/cow-profiles/" {
			t.Errorf("got %s %s, want POST /cow-profiles/", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"id":"cow-1","name":"Ganga","body_weight":400,"milk_production":10}`))
	}))

	cow, err := client.CreateCow(context.Background(), CreateCowParams{
		DeviceID:       "dev-1",
		Name:           "Ganga",
		BodyWeight:     400,
		Lactating:      true,
		MilkProduction: 10,
		DaysInMilk:     100,
		Parity:         2,
	})
	if err != nil {
		t.Fatalf("CreateCow: %v", err)
	}
	if cow.Name != "Ganga" || cow.ID != "cow-1" {
		t.Errorf("got %q/%q, want Ganga/cow-1", cow.Name, cow.ID)
	}
	if payload["telegram_user_id"] != "dev-1" {
		t.Errorf("telegram_user_id = %v, want dev-1", payload["telegram_user_id"])
	}
	if v, ok := payload["breed"]; !ok || v != nil {
		t.Errorf("breed = %v (present %v), want explicit null", v, ok)
	}
	if v, ok := payload["target_milk_yield"]; !ok || v != nil {
		t.Errorf("target_milk_yield = %v (present %v), want explicit null", v, ok)
	}
	if payload["milk_fat_percent"] != 4.0 {
		t.Errorf("milk_fat_percent = %v, want 4.0", payload["milk_fat_percent"])
	}
	if payload["milk_protein_percent"] != 3.5 {
		t.Errorf("milk_protein_percent = %v, want 3.5", payload["milk_protein_percent"])
	}
}

func TestListCowsQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cow-profiles/user/dev-1" {
			t.Errorf("path = %q, want /cow-profiles/user/dev-1", r.URL.Path)
		}
		if got := r.URL.Query().Get("include_inactive"); got != "true" {
			t.Errorf("include_inactive = %q, want %q", got, "true")
		}
		w.Write([]byte(`{"cow_profiles":[{"id":"cow-1","name":"Ganga"}]}`))
	}))

	cows, err := client.ListCows(context.Background(), "dev-1", true)
	if err != nil {
		t.Fatalf("ListCows: %v", err)
	}
	if len(cows) != 1 || cows[0].Name != "Ganga" {
		t.Fatalf("got %+v, want one cow named Ganga", cows)
	}
}

func TestUpdateCowForwardsUpdates(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/cow-profiles/cow-1" {
			t.Errorf("got %s %s, want PUT /cow-profiles/cow-1", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("telegram_user_id"); got != "dev-1" {
			t.Errorf("telegram_user_id = %q, want dev-1", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"id":"cow-1","name":"Gauri"}`))
	}))

	updated, err := client.UpdateCow(context.Background(), "cow-1", "dev-1", map[string]any{
		"name":        "Gauri",
		"body_weight": 420.0,
	})
	if err != nil {
		t.Fatalf("UpdateCow: %v", err)
	}
	if updated.Name != "Gauri" {
		t.Errorf("updated name = %q, want Gauri", updated.Name)
	}
	if payload["name"] != "Gauri" || payload["body_weight"] != 420.0 {
		t.Errorf("payload = %v, want name and body_weight forwarded", payload)
	}
}

func TestDeleteCowQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		q := r.URL.Query()
		if q.Get("telegram_user_id") != "dev-1" || q.Get("hard_delete") != "true" {
			t.Errorf("query = %v, want telegram_user_id=dev-1 hard_delete=true", q)
		}
		w.Write([]byte(`{"message":"Cow removed permanently."}`))
	}))

	res, err := client.DeleteCow(context.Background(), "cow-1", "dev-1", true)
	if err != nil {
		t.Fatalf("DeleteCow: %v", err)
	}
	if res.Message != "Cow removed permanently." {
		t.Errorf("message = %q, want backend message", res.Message)
	}
}

func TestAPIErrorCarriesStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	}))

	_, err := client.GetCow(context.Background(), "missing", "dev-1")
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound = false, want true")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error text %q should mention the status", err)
	}
}

func TestIsNotFoundIgnoresOtherStatuses(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validation failed", http.StatusUnprocessableEntity)
	}))

	_, err := client.GetCow(context.Background(), "cow-1", "dev-1")
	if err == nil {
		t.Fatal("expected an error for a 422 response")
	}
	if IsNotFound(err) {
		t.Error("IsNotFound = true for a 422, want false")
	}
}

func TestDietHistoryQuery(t *testing.T) {
	var gotCowFilter []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCowFilter = append(gotCowFilter, r.URL.Query().Get("cow_profile_id"))
		w.Write([]byte(`{"diets":[{"id":"d1","name":"Diet for Ganga","is_active":true,"total_cost_per_day":245.5,"currency":"INR"}]}`))
	}))

	diets, err := client.DietHistory(context.Background(), "dev-1", "cow-1")
	if err != nil {
		t.Fatalf("DietHistory: %v", err)
	}
	if len(diets) != 1 || !diets[0].IsActive {
		t.Fatalf("got %+v, want one active diet", diets)
	}
	if _, err := client.DietHistory(context.Background(), "dev-1", ""); err != nil {
		t.Fatalf("DietHistory without cow filter: %v", err)
	}
	if len(gotCowFilter) != 2 || gotCowFilter[0] != "cow-1" || gotCowFilter[1] != "" {
		t.Errorf("cow_profile_id params = %v, want [cow-1 \"\"]", gotCowFilter)
	}
}

func TestFollowAndUnfollowPayloads(t *testing.T) {
	var payloads []map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/bot-diet-history/d1" {
			t.Errorf("got %s %s, want PUT /bot-diet-history/d1", r.Method, r.URL.Path)
		}
		var p map[string]any
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		payloads = append(payloads, p)
		w.Write([]byte(`{"id":"d1","name":"Diet for Ganga"}`))
	}))

	rec, err := client.FollowDiet(context.Background(), "d1", "dev-1")
	if err != nil {
		t.Fatalf("FollowDiet: %v", err)
	}
	if rec.Name != "Diet for Ganga" {
		t.Errorf("name = %q, want Diet for Ganga", rec.Name)
	}
	if err := client.UnfollowDiet(context.Background(), "d1", "dev-1"); err != nil {
		t.Fatalf("UnfollowDiet: %v", err)
	}

	if len(payloads) != 2 {
		t.Fatalf("got %d requests, want 2", len(payloads))
	}
	if payloads[0]["status"] != "following" || payloads[0]["is_active"] != true {
		t.Errorf("follow payload = %v", payloads[0])
	}
	if payloads[1]["status"] != "saved" || payloads[1]["is_active"] != false {
		t.Errorf("unfollow payload = %v", payloads[1])
	}
}
