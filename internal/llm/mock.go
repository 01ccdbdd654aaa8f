package llm

import (
	"context"

	"github.com/dileep-u-k/agent-fetch/internal/tools"
)

const mockAnswer = "Mock agent answer: in real mode I would call the weather and crypto tools and summarize the results. (LLM_MODE=mock)"

// MockClient returns a canned answer without any network calls. It keeps the
// whole agent flow runnable without an API key.
type MockClient struct{}

var _ Client = (*MockClient)(nil)

func NewMockClient() *MockClient { return &MockClient{} }

func (c *MockClient) Chat(_ context.Context, _ []Message, _ []tools.Tool) (*Result, error) {
	return &Result{Content: mockAnswer}, nil
}
