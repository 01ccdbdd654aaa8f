package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dileep-u-k/agent-fetch/internal/tools"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient talks to the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

var _ Client = (*OpenAIClient)(nil)

func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key cannot be empty")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, availableTools []tools.Tool) (*Result, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
	}
	if len(availableTools) > 0 {
		req.Tools = toOpenAITools(availableTools)
		req.ToolChoice = "auto"
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("LLM rate limit / quota error from OpenAI: you may need to add billing or use a key with credits: %w", err)
		}
		return nil, fmt.Errorf("LLM API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response choices returned from OpenAI")
	}

	msg := resp.Choices[0].Message
	result := &Result{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, &tools.ToolCall{
			ID:   tc.ID,
			Type: string(tc.Type),
			Function: tools.ToolCallFunction{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return result, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		converted := openai.ChatCompletionMessage{
			Role:       string(msg.Role),
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, tc := range msg.ToolCalls {
			converted.ToolCalls = append(converted.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		out = append(out, converted)
	}
	return out
}

func toOpenAITools(availableTools []tools.Tool) []openai.Tool {
	out := make([]openai.Tool, 0, len(availableTools))
	for _, t := range availableTools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				Parameters:  t.Function.Parameters,
			},
		})
	}
	return out
}
