package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/config"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Client fetches current conditions from an Open-Meteo compatible API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	now        func() time.Time
}

// NewClient creates a new weather API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiKey: apiKey,
		now:    time.Now,
	}
}

// NewClientWithConfig creates a new weather client from configuration
func NewClientWithConfig(cfg *config.FitHeroConfig) *Client {
	c := NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey)
	c.httpClient.Timeout = 10 * time.Second
	return c
}

// currentResponse mirrors the subset of the API payload the engine reads.
type currentResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		UVIndex     float64 `json:"uv_index"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// Current fetches the current conditions for a coordinate pair. Missing
// derived fields (heat index, UV outside API coverage) are estimated locally.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (models.EnvironmentalData, error) {
	endpoint := fmt.Sprintf("/forecast?latitude=%.4f&longitude=%.4f&current=%s",
		latitude, longitude,
		url.QueryEscape("temperature_2m,relative_humidity_2m,wind_speed_10m,uv_index,weather_code"))

	resp, err := c.makeRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return models.EnvironmentalData{}, fmt.Errorf("failed to fetch current conditions: %w", err)
	}
	defer resp.Body.Close()

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.EnvironmentalData{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	env := models.EnvironmentalData{
		Temperature: payload.Current.Temperature,
		Humidity:    payload.Current.Humidity,
		WindSpeed:   payload.Current.WindSpeed,
		UVIndex:     payload.Current.UVIndex,
	}

	if env.UVIndex == 0 {
		env.UVIndex = EstimateUVIndex(skyFromCode(payload.Current.WeatherCode), c.now().Hour())
	}
	env.HeatIndex = HeatIndex(env.Temperature, env.Humidity)

	return env, nil
}

// makeRequest makes an HTTP request to the weather API
func (c *Client) makeRequest(ctx context.Context, method, endpoint string) (*http.Response, error) {
	path, query, _ := strings.Cut(endpoint, "?")
	requestURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if query != "" {
		requestURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "fithero-cli/1.0.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}

// skyFromCode maps WMO weather codes to the coarse sky buckets used by the
// local UV estimator.
func skyFromCode(code int) SkyCondition {
	switch {
	case code == 0:
		return SkyClear
	case code >= 1 && code <= 3:
		return SkyClouds
	case code >= 51:
		return SkyRain
	default:
		return SkyUnknown
	}
}
