package driven

import "context"

// GenerateOptions configures a single LLM completion.
type GenerateOptions struct {
	// MaxTokens caps the completion length. Required by some providers;
	// implementations apply a default when zero.
	MaxTokens int

	// Temperature controls sampling randomness. Zero for extraction.
	Temperature float64

	// Prefill seeds the assistant turn so the completion continues
	// from it (e.g. "{" to force a JSON object). The returned text
	// includes the prefill.
	Prefill string
}

// LLMService produces text completions for structured extraction.
type LLMService interface {
	// Generate produces a completion for a single user prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the model identifier in use.
	ModelName() string
}
