// Package agent runs the stateless tool-calling loop: one model call to
// decide on tools, tool execution, then one follow-up call for the final
// answer. Each Run starts from a fresh conversation.
package agent

import (
	"context"
	"fmt"

	"github.com/dileep-u-k/agent-fetch/internal/llm"
	"github.com/dileep-u-k/agent-fetch/internal/tools"
)

// Toolbox is the slice of the tool registry the agent needs.
type Toolbox interface {
	Definitions() []tools.Tool
	Dispatch(ctx context.Context, name, arguments string) string
}

// Agent answers one user message at a time.
type Agent struct {
	client  llm.Client
	toolbox Toolbox
}

func New(client llm.Client, toolbox Toolbox) *Agent {
	return &Agent{client: client, toolbox: toolbox}
}

// Run sends the user message to the model with the tool catalog, executes
// any requested tool calls, and returns the model's final answer. The second
// round offers no tools, so the model has to answer in text.
func (a *Agent) Run(ctx context.Context, userMessage string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: userMessage},
	}

	first, err := a.client.Chat(ctx, messages, a.toolbox.Definitions())
	if err != nil {
		return "", fmt.Errorf("agent first call: %w", err)
	}

	if len(first.ToolCalls) == 0 {
		return first.Content, nil
	}

	messages = append(messages, llm.Message{
		Role:      llm.RoleAssistant,
		Content:   first.Content,
		ToolCalls: first.ToolCalls,
	})

	for _, call := range first.ToolCalls {
		arguments := call.Function.Arguments
		if arguments == "" {
			arguments = "{}"
		}
		payload := a.toolbox.Dispatch(ctx, call.Function.Name, arguments)
		messages = append(messages, llm.Message{
			Role:       llm.RoleTool,
			ToolCallID: call.ID,
			Content:    payload,
		})
	}

	second, err := a.client.Chat(ctx, messages, nil)
	if err != nil {
		return "", fmt.Errorf("agent second call: %w", err)
	}
	return second.Content, nil
}
