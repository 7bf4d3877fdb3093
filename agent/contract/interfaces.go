package contract

import "context"

// Dispatcher validates an intent call and routes it to exactly one handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, call IntentCall) ToolResult
}

// Searcher is the external web-search collaborator consulted by the
// consultation handler. Implementations must honor ctx cancellation and
// return a structured error instead of hanging the turn.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// ModelClient produces the raw text this core parses. The chat loop owns the
// conversation; this core only consumes the output.
type ModelClient interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
