// Package tools defines the declarative tool catalog offered to the language
// model and the dispatcher that executes requested tool calls against the
// data gateway. The types are a provider-agnostic representation that each
// LLM client translates into its own wire format.
package tools

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool is the schema of a callable function as described to the LLM.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function holds a tool's name, description and parameter schema. The
// description matters: the model uses it to decide when to call the tool.
type Function struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// JSONSchema is a typed subset of JSON Schema used for tool parameters.
type JSONSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

// ToolCall is a request from the LLM to execute a tool. The ID must be
// echoed back with the result so the model can match call and answer.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction carries the requested function name and its arguments as
// a JSON-encoded string.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// NewFunctionTool builds a Tool with the correct "function" type.
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
