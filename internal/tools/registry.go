package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Registry holds every tool available to the agent.
type Registry struct {
	tools map[string]Executor
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Executor)}
}

// Register adds a tool under its declared function name.
func (r *Registry) Register(tool Executor) {
	name := tool.Definition().Function.Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Definitions returns all tool schemas in registration order.
func (r *Registry) Definitions() []Tool {
	defs := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	return len(r.tools)
}

// Dispatch executes the named tool and always returns a JSON payload the
// model can read. Unknown tools and internal faults become ok=false payloads
// rather than errors, so a confused model gets an explanation it can relay.
func (r *Registry) Dispatch(ctx context.Context, name, arguments string) string {
	tool, ok := r.tools[name]
	if !ok {
		return errorPayload(name, "", fmt.Sprintf("Unknown tool: %s", name))
	}
	payload, err := tool.Execute(ctx, arguments)
	if err != nil {
		return errorPayload(name, "InternalError", err.Error())
	}
	return payload
}

// resultPayload encodes a successful tool run together with the arguments
// that produced it.
func resultPayload(tool string, args, result any) string {
	return mustJSON(map[string]any{
		"ok":     true,
		"tool":   tool,
		"args":   args,
		"result": result,
	})
}

// errorPayload encodes a failed tool run. errorType is omitted when empty
// (unknown-tool responses carry no type).
func errorPayload(tool, errorType, message string) string {
	payload := map[string]any{
		"ok":    false,
		"tool":  tool,
		"error": message,
	}
	if errorType != "" {
		payload["error_type"] = errorType
	}
	return mustJSON(payload)
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Payload maps only hold strings and marshaled gateway structs.
		return fmt.Sprintf(`{"ok":false,"error":%q}`, err.Error())
	}
	return string(data)
}
