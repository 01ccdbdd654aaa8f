// Package llm abstracts the language model providers behind a single Chat
// interface so the agent loop does not care whether OpenAI, Gemini or a
// mock is answering.
package llm

import (
	"context"

	"github.com/dileep-u-k/agent-fetch/internal/tools"
)

// Role represents the originator of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single message in a conversation history. Tool result
// messages carry the ToolCallID of the call they answer; assistant messages
// carry the ToolCalls the model requested.
type Message struct {
	Role       Role              `json:"role"`
	Content    string            `json:"content"`
	ToolCallID string            `json:"tool_call_id,omitempty"`
	ToolCalls  []*tools.ToolCall `json:"tool_calls,omitempty"`
}

// Result is the complete output of one model call.
type Result struct {
	Content   string
	ToolCalls []*tools.ToolCall
}

// Client is the interface every model provider implements. A nil or empty
// availableTools slice means the model must answer in plain text.
type Client interface {
	Chat(ctx context.Context, messages []Message, availableTools []tools.Tool) (*Result, error)
}
