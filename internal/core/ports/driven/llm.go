package driven

import "context"

// TextGenerator produces a completion for a system/user prompt pair.
// Single blocking call, no streaming, no internal retry; a failure
// surfaces immediately to the caller.
//
// Implementations may include:
//   - Google Gemini
//   - Anthropic (Claude)
type TextGenerator interface {
	// Generate produces text conditioned on a fixed system instruction
	// and a user prompt.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to verify credentials before any
	// query is processed.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
