package llm

import "context"

// Message is one turn of conversation context sent to a provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider defines the interface for chat completion providers. The
// concrete provider is swappable without touching endpoint logic.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// IsConfigured checks if the provider has valid credentials
	IsConfigured() bool

	// Complete generates the assistant reply for the given ordered
	// message history. Called at most once per request; the caller
	// bounds ctx with a timeout.
	Complete(ctx context.Context, history []Message) (*Message, error)
}
