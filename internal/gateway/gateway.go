package gateway

import "context"

// Turn is one prior exchange in a conversation. Role is "user" or "model".
type Turn struct {
	Role    string
	Content string
}

// Request describes one text-generation call. When JSONOnly is set the model
// is asked for a JSON object, but the returned text is not guaranteed to be
// valid JSON; callers must parse defensively.
type Request struct {
	System   string
	History  []Turn
	Input    string
	JSONOnly bool
}

// Gateway is the external text-generation boundary. Errors are transport or
// quota failures; callers catch them and degrade to fixed fallbacks.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
}
