package tools

import "context"

// Executor is the interface every callable tool implements. Execute receives
// the LLM-generated arguments as a JSON string and returns a JSON payload to
// feed back to the model. Expected domain failures (bad city, unknown coin,
// provider outages) are encoded into the payload with ok=false so the model
// can explain them instead of fabricating data; a non-nil error is reserved
// for faults the conversation cannot recover from.
type Executor interface {
	Definition() Tool
	Execute(ctx context.Context, arguments string) (string, error)
}
