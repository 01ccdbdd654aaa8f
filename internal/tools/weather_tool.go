package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dileep-u-k/agent-fetch/internal/gateway"
)

// WeatherFetcher is the slice of the gateway the weather tool needs.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, city string) (*gateway.WeatherReport, error)
}

// WeatherTool exposes current conditions for a city to the agent.
type WeatherTool struct {
	source WeatherFetcher
}

var _ Executor = (*WeatherTool)(nil)

func NewWeatherTool(source WeatherFetcher) *WeatherTool {
	return &WeatherTool{source: source}
}

func (t *WeatherTool) Definition() Tool {
	return NewFunctionTool(
		"get_weather",
		"Get current weather conditions for a city.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"city": {
					Type:        "string",
					Description: "Name of the city (e.g. 'Hyderabad', 'London').",
				},
			},
			Required: []string{"city"},
		},
	)
}

// Execute fetches weather for the requested city. Gateway failures are
// reported back to the model as ok=false payloads with the domain error
// message intact, so the model can tell the user what went wrong.
func (t *WeatherTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		City string `json:"city"`
	}
	// Malformed argument JSON is treated the same as a missing argument.
	_ = json.Unmarshal([]byte(arguments), &args)
	if args.City == "" {
		return errorPayload("get_weather", "InternalError", "Missing required argument: city"), nil
	}

	report, err := t.source.FetchWeather(ctx, args.City)
	if err != nil {
		var werr *gateway.WeatherError
		if errors.As(err, &werr) {
			return errorPayload("get_weather", "WeatherError", werr.Message), nil
		}
		return errorPayload("get_weather", "InternalError", err.Error()), nil
	}

	return resultPayload("get_weather", map[string]string{"city": args.City}, report), nil
}
