package generate

import "context"

// Completion is a single provider response before cleanup.
type Completion struct {
	Text       string
	TokensUsed *int
}

// Provider produces a chat completion for a prompt. Implementations must be
// safe for concurrent use; the service shares them across requests.
type Provider interface {
	ID() string
	Complete(ctx context.Context, prompt string) (Completion, error)
}
