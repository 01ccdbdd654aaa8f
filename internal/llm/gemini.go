package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/dileep-u-k/agent-fetch/internal/tools"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiClient talks to Google's Gemini models through the genai SDK.
type GeminiClient struct {
	model *genai.GenerativeModel
}

var _ Client = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	if modelID == "" {
		modelID = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{model: client.GenerativeModel(modelID)}, nil
}

func (c *GeminiClient) Chat(ctx context.Context, messages []Message, availableTools []tools.Tool) (*Result, error) {
	if len(messages) == 0 {
		return nil, errors.New("no messages to send to Gemini")
	}

	if len(availableTools) > 0 {
		c.model.Tools = toGeminiTools(availableTools)
	} else {
		c.model.Tools = nil
	}

	chat := c.model.StartChat()
	chat.History = toGeminiHistory(messages)

	last := messages[len(messages)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(geminiText(last)))
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	return parseGeminiResponse(resp)
}

// toGeminiTools converts the internal tool catalog to the genai SDK format.
func toGeminiTools(availableTools []tools.Tool) []*genai.Tool {
	var out []*genai.Tool
	for _, t := range availableTools {
		out = append(out, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				Parameters:  convertSchema(t.Function.Parameters),
			}},
		})
	}
	return out
}

func convertSchema(s tools.JSONSchema) *genai.Schema {
	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
	}
	switch s.Type {
	case "object":
		out.Type = genai.TypeObject
	case "string":
		out.Type = genai.TypeString
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*genai.Schema)
		for k, v := range s.Properties {
			out.Properties[k] = convertSchema(*v)
		}
	}
	return out
}

// toGeminiHistory converts all but the last message into genai history.
// Gemini has no separate system or tool roles here, so system prompts and
// tool results travel as user-role text.
func toGeminiHistory(messages []Message) []*genai.Content {
	var history []*genai.Content
	for _, msg := range messages[:len(messages)-1] {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(geminiText(msg))},
		})
	}
	return history
}

// geminiText labels tool results so the model can tell them apart from
// ordinary user input.
func geminiText(msg Message) string {
	if msg.Role == RoleTool {
		return fmt.Sprintf("Tool result for call %s:\n%s", msg.ToolCallID, msg.Content)
	}
	return msg.Content
}

func parseGeminiResponse(resp *genai.GenerateContentResponse) (*Result, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no content returned from Gemini")
	}

	var contentBuilder strings.Builder
	var toolCalls []*tools.ToolCall

	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			contentBuilder.WriteString(string(v))
		case genai.FunctionCall:
			args, err := json.Marshal(v.Args)
			if err != nil {
				log.Printf("WARNING: could not marshal Gemini tool call args: %v", err)
				continue
			}
			toolCalls = append(toolCalls, &tools.ToolCall{
				ID:   fmt.Sprintf("gemini-toolcall-%s", v.Name),
				Type: tools.ToolTypeFunction,
				Function: tools.ToolCallFunction{
					Name:      v.Name,
					Arguments: string(args),
				},
			})
		}
	}

	return &Result{
		Content:   strings.TrimSpace(contentBuilder.String()),
		ToolCalls: toolCalls,
	}, nil
}
