package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production backend address.
	DefaultBaseURL = "https://ration-smart-backend-production.up.railway.app"
	// DefaultTimeout bounds a single backend call. Diet optimization
	// runs a solver server-side and can take a while.
	DefaultTimeout = 60 * time.Second

	defaultFeedPrice = 1.0
)

// Config holds the connection settings for a Client. Zero values fall
// back to the production defaults.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls the RationSmart backend API. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates a backend client from cfg, applying defaults for
// any unset field.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.httpc.CloseIdleConnections()
}

// Countries lists all countries known to the backend.
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	var out []Country
	if err := c.do(ctx, "list countries", http.MethodGet, "/auth/countries", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Breeds lists the breeds available in a country.
func (c *Client) Breeds(ctx context.Context, countryID string) ([]Breed, error) {
	var out breedList
	path := "/auth/breeds/" + url.PathEscape(countryID)
	if err := c.do(ctx, "list breeds", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Breeds, nil
}

// ResolveLocation geocodes a latitude/longitude pair into a country.
func (c *Client) ResolveLocation(ctx context.Context, latitude, longitude float64) (*Location, error) {
	query := url.Values{}
	query.Set("latitude", formatFloat(latitude))
	query.Set("longitude", formatFloat(longitude))
	var out Location
	if err := c.do(ctx, "resolve location", http.MethodGet, "/auth/resolve-location", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCowParams are the inputs for CreateCow. Zero MilkFatPercent
// and MilkProteinPercent fall back to the standard milk composition.
type CreateCowParams struct {
	DeviceID           string
	Name               string
	Breed              string
	BodyWeight         float64
	Lactating          bool
	MilkProduction     float64
	TargetMilkYield    float64
	DaysInMilk         int
	Parity             int
	DaysOfPregnancy    int
	MilkFatPercent     float64
	MilkProteinPercent float64
}

// CreateCow creates a cow profile for a device.
func (c *Client) CreateCow(ctx context.Context, params CreateCowParams) (*CowProfile, error) {
	fat := params.MilkFatPercent
	if fat == 0 {
		fat = 4.0
	}
	protein := params.MilkProteinPercent
	if protein == 0 {
		protein = 3.5
	}
	var breed any
	if params.Breed != "" {
		breed = params.Breed
	}
	var target any
	if params.TargetMilkYield != 0 {
		target = params.TargetMilkYield
	}
	payload := map[string]any{
		"telegram_user_id":     params.DeviceID,
		"name":                 params.Name,
		"breed":                breed,
		"body_weight":          params.BodyWeight,
		"lactating":            params.Lactating,
		"milk_production":      params.MilkProduction,
		"target_milk_yield":    target,
		"days_in_milk":         params.DaysInMilk,
		"parity":               params.Parity,
		"days_of_pregnancy":    params.DaysOfPregnancy,
		"milk_fat_percent":     fat,
		"milk_protein_percent": protein,
	}
	var out CowProfile
	if err := c.do(ctx, "create cow profile", http.MethodPost, "/cow-profiles/", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCows lists the cow profiles registered for a device.
func (c *Client) ListCows(ctx context.Context, deviceID string, includeInactive bool) ([]CowProfile, error) {
	query := url.Values{}
	query.Set("include_inactive", strconv.FormatBool(includeInactive))
	path := "/cow-profiles/user/" + url.PathEscape(deviceID)
	var out cowProfileList
	if err := c.do(ctx, "list cow profiles", http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out.CowProfiles, nil
}

// GetCow fetches one cow profile.
func (c *Client) GetCow(ctx context.Context, cowID, deviceID string) (*CowProfile, error) {
	query := url.Values{}
	query.Set("telegram_user_id", deviceID)
	path := "/cow-profiles/detail/" + url.PathEscape(cowID)
	var out CowProfile
	if err := c.do(ctx, "get cow profile", http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCow applies a partial update to a cow profile and returns the
// updated record. Keys in updates are sent to the backend as-is.
func (c *Client) UpdateCow(ctx context.Context, cowID, deviceID string, updates map[string]any) (*CowProfile, error) {
	query := url.Values{}
	query.Set("telegram_user_id", deviceID)
	path := "/cow-profiles/" + url.PathEscape(cowID)
	var out CowProfile
	if err := c.do(ctx, "update cow profile", http.MethodPut, path, query, updates, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCow deactivates a cow profile, or removes it permanently when
// hardDelete is set.
func (c *Client) DeleteCow(ctx context.Context, cowID, deviceID string, hardDelete bool) (*DeleteResult, error) {
	query := url.Values{}
	query.Set("telegram_user_id", deviceID)
	query.Set("hard_delete", strconv.FormatBool(hardDelete))
	path := "/cow-profiles/" + url.PathEscape(cowID)
	var out DeleteResult
	if err := c.do(ctx, "delete cow profile", http.MethodDelete, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Feeds lists the master feeds available in a country.
func (c *Client) Feeds(ctx context.Context, countryID string) ([]Feed, error) {
	var out []Feed
	path := "/feeds/master-feeds/" + url.PathEscape(countryID)
	if err := c.do(ctx, "list feeds", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DietHistory lists the saved diets for a device, optionally filtered
// to one cow.
func (c *Client) DietHistory(ctx context.Context, deviceID, cowID string) ([]DietRecord, error) {
	var query url.Values
	if cowID != "" {
		query = url.Values{}
		query.Set("cow_profile_id", cowID)
	}
	path := "/bot-diet-history/user/" + url.PathEscape(deviceID)
	var out dietHistory
	if err := c.do(ctx, "list diet history", http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out.Diets, nil
}

// ActiveDiet fetches the diet currently being followed for a cow. The
// backend answers 404 when no diet is active.
func (c *Client) ActiveDiet(ctx context.Context, cowID, deviceID string) (*DietRecord, error) {
	query := url.Values{}
	query.Set("telegram_user_id", deviceID)
	path := "/bot-diet-history/active/" + url.PathEscape(cowID)
	var out DietRecord
	if err := c.do(ctx, "get active diet", http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FollowDiet marks a saved diet as the one being followed.
func (c *Client) FollowDiet(ctx context.Context, dietID, deviceID string) (*DietRecord, error) {
	payload := map[string]any{"status": "following", "is_active": true}
	rec, err := c.updateDiet(ctx, "follow diet", dietID, deviceID, payload)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UnfollowDiet clears the followed state of a saved diet.
func (c *Client) UnfollowDiet(ctx context.Context, dietID, deviceID string) error {
	payload := map[string]any{"status": "saved", "is_active": false}
	_, err := c.updateDiet(ctx, "unfollow diet", dietID, deviceID, payload)
	return err
}

func (c *Client) updateDiet(ctx context.Context, op, dietID, deviceID string, payload map[string]any) (*DietRecord, error) {
	query := url.Values{}
	query.Set("telegram_user_id", deviceID)
	path := "/bot-diet-history/" + url.PathEscape(dietID)
	var out DietRecord
	if err := c.do(ctx, op, http.MethodPut, path, query, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload, out any) error {
	body, err := c.doRaw(ctx, op, method, path, query, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("backend: decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, op, method, path string, query url.Values, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("backend: encode %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("backend: build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %s: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: read %s response: %w", op, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
