package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/agent-fetch/internal/gateway"
	"github.com/dileep-u-k/agent-fetch/internal/llm"
	"github.com/dileep-u-k/agent-fetch/internal/tools"
)

// scriptedClient replays one canned result per Chat call and records what
// it was asked.
type scriptedClient struct {
	results []*llm.Result
	errs    []error
	calls   [][]llm.Message
	toolSet [][]tools.Tool
}

func (c *scriptedClient) Chat(_ context.Context, messages []llm.Message, availableTools []tools.Tool) (*llm.Result, error) {
	n := len(c.calls)
	c.calls = append(c.calls, messages)
	c.toolSet = append(c.toolSet, availableTools)
	if n < len(c.errs) && c.errs[n] != nil {
		return nil, c.errs[n]
	}
	return c.results[n], nil
}

type stubWeather struct {
	report *gateway.WeatherReport
	err    error
}

func (s *stubWeather) FetchWeather(_ context.Context, _ string) (*gateway.WeatherReport, error) {
	return s.report, s.err
}

func floatPtr(v float64) *float64 { return &v }

func newToolbox(source *stubWeather) *tools.Registry {
	r := tools.NewRegistry()
	r.Register(tools.NewWeatherTool(source))
	return r
}

func weatherCall(id, city string) *tools.ToolCall {
	return &tools.ToolCall{
		ID:   id,
		Type: tools.ToolTypeFunction,
		Function: tools.ToolCallFunction{
			Name:      "get_weather",
			Arguments: `{"city":"` + city + `"}`,
		},
	}
}

func TestRunWithoutToolCalls(t *testing.T) {
	client := &scriptedClient{results: []*llm.Result{{Content: "Bitcoin is a decentralized digital currency."}}}
	a := New(client, newToolbox(&stubWeather{}))

	answer, err := a.Run(context.Background(), "What is Bitcoin?")
	require.NoError(t, err)
	require.Equal(t, "Bitcoin is a decentralized digital currency.", answer)

	// One round only, tools offered on the first call.
	require.Len(t, client.calls, 1)
	require.Len(t, client.toolSet[0], 1)
	require.Equal(t, llm.RoleSystem, client.calls[0][0].Role)
	require.Equal(t, llm.RoleUser, client.calls[0][1].Role)
	require.Equal(t, "What is Bitcoin?", client.calls[0][1].Content)
}

func TestRunExecutesToolCalls(t *testing.T) {
	client := &scriptedClient{results: []*llm.Result{
		{ToolCalls: []*tools.ToolCall{weatherCall("call-1", "Hyderabad")}},
		{Content: "It is 28.4°C and hazy in Hyderabad."},
	}}
	source := &stubWeather{report: &gateway.WeatherReport{
		City:         "Hyderabad",
		TemperatureC: floatPtr(28.4),
		Description:  "haze",
	}}
	a := New(client, newToolbox(source))

	answer, err := a.Run(context.Background(), "Weather in Hyderabad?")
	require.NoError(t, err)
	require.Equal(t, "It is 28.4°C and hazy in Hyderabad.", answer)
	require.Len(t, client.calls, 2)

	// Second round carries the assistant tool request plus the tool result,
	// and offers no tools.
	second := client.calls[1]
	require.Len(t, second, 4)
	require.Equal(t, llm.RoleAssistant, second[2].Role)
	require.Len(t, second[2].ToolCalls, 1)
	require.Equal(t, llm.RoleTool, second[3].Role)
	require.Equal(t, "call-1", second[3].ToolCallID)
	require.Contains(t, second[3].Content, `"ok":true`)
	require.Contains(t, second[3].Content, "Hyderabad")
	require.Nil(t, client.toolSet[1])
}

func TestRunFeedsToolErrorsBack(t *testing.T) {
	client := &scriptedClient{results: []*llm.Result{
		{ToolCalls: []*tools.ToolCall{weatherCall("call-9", "Atlantis")}},
		{Content: "I couldn't find weather data for Atlantis."},
	}}
	source := &stubWeather{err: &gateway.WeatherError{
		Kind:    gateway.KindNotFound,
		Message: "City 'Atlantis' not found.",
	}}
	a := New(client, newToolbox(source))

	answer, err := a.Run(context.Background(), "Weather in Atlantis?")
	require.NoError(t, err)
	require.Equal(t, "I couldn't find weather data for Atlantis.", answer)

	toolMsg := client.calls[1][3]
	require.Contains(t, toolMsg.Content, `"ok":false`)
	require.Contains(t, toolMsg.Content, "City 'Atlantis' not found.")
}

func TestRunHandlesEmptyArguments(t *testing.T) {
	call := &tools.ToolCall{
		ID:       "call-2",
		Type:     tools.ToolTypeFunction,
		Function: tools.ToolCallFunction{Name: "get_weather"},
	}
	client := &scriptedClient{results: []*llm.Result{
		{ToolCalls: []*tools.ToolCall{call}},
		{Content: "I need a city name to check the weather."},
	}}
	a := New(client, newToolbox(&stubWeather{}))

	answer, err := a.Run(context.Background(), "Weather?")
	require.NoError(t, err)
	require.Equal(t, "I need a city name to check the weather.", answer)
	require.Contains(t, client.calls[1][3].Content, "Missing required argument: city")
}

func TestRunPropagatesModelErrors(t *testing.T) {
	client := &scriptedClient{
		results: []*llm.Result{nil},
		errs:    []error{errors.New("LLM API error: upstream down")},
	}
	a := New(client, newToolbox(&stubWeather{}))

	_, err := a.Run(context.Background(), "Weather in London?")
	require.Error(t, err)
	require.Contains(t, err.Error(), "agent first call")
}
