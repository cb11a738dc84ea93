// Package llm wraps the language-model client used for the optional
// label-mapping fallback.
package llm

import (
	"context"
)

// Provider is the interface for all language-model backends.
type Provider interface {
	// GenerateJSON sends a prompt and returns the model's raw response,
	// requesting a JSON object when the backend supports structured output.
	GenerateJSON(ctx context.Context, systemPrompt, prompt string) (string, error)
}
