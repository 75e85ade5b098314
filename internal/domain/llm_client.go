package domain

import "context"

// LLMClient defines the capability to send a prompt to the language-model
// gateway and receive a textual completion. The gateway is synchronous from
// the core's perspective; sessions, streaming and retries live behind it.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (*LLMResponse, error)
	Version() string
}

// LLMResponse carries the completion text and whether generation finished.
type LLMResponse struct {
	Text string
	Done bool
}
