package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// WeatherReport is the typed projection of an OpenWeatherMap response.
// Optional upstream fields stay pointers so consumers can tell "missing"
// from zero; Raw carries the full provider payload for passthrough.
type WeatherReport struct {
	City         string          `json:"city"`
	Country      string          `json:"country"`
	TemperatureC *float64        `json:"temperature_c"`
	FeelsLikeC   *float64        `json:"feels_like_c"`
	Description  string          `json:"description"`
	Humidity     *int            `json:"humidity"`
	Raw          json.RawMessage `json:"raw"`
}

type owmPayload struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// FetchWeather returns the current weather for a city, in metric units.
// Results are cached for the configured TTL keyed by the normalized city
// name; a valid cache hit is returned without any upstream call.
func (g *Gateway) FetchWeather(ctx context.Context, city string) (*WeatherReport, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, &WeatherError{Kind: KindInvalidInput, Message: "city must not be empty"}
	}

	cacheKey := "weather:" + strings.ToLower(city)
	if payload, ok := g.cache.Get(ctx, cacheKey); ok {
		var report WeatherReport
		if err := json.Unmarshal(payload, &report); err == nil {
			return &report, nil
		}
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", g.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.weatherURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &WeatherError{Kind: KindNetwork, Message: fmt.Sprintf("Network error while calling weather API: %v", err), Err: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &WeatherError{Kind: KindNetwork, Message: fmt.Sprintf("Network error while calling weather API: %v", err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &WeatherError{Kind: KindNetwork, Message: fmt.Sprintf("Network error while calling weather API: %v", err), Err: err}
	}

	// OpenWeatherMap returns 404 when the city is not found.
	if resp.StatusCode == http.StatusNotFound {
		return nil, &WeatherError{Kind: KindNotFound, Message: fmt.Sprintf("City '%s' not found.", city)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &WeatherError{Kind: KindBadStatus, Message: fmt.Sprintf("Weather API error (status %d): %s", resp.StatusCode, string(body))}
	}

	var payload owmPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &WeatherError{Kind: KindBadStatus, Message: "Weather API returned an unreadable response", Err: err}
	}

	report := WeatherReport{
		City:         payload.Name,
		Country:      payload.Sys.Country,
		TemperatureC: payload.Main.Temp,
		FeelsLikeC:   payload.Main.FeelsLike,
		Description:  "N/A",
		Humidity:     payload.Main.Humidity,
		Raw:          json.RawMessage(body),
	}
	if report.City == "" {
		report.City = city
	}
	if len(payload.Weather) > 0 && payload.Weather[0].Description != "" {
		report.Description = payload.Weather[0].Description
	}

	if encoded, err := json.Marshal(report); err == nil {
		g.cache.Set(ctx, cacheKey, encoded)
	}
	return &report, nil
}
