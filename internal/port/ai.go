package port

import "context"

// AIProvider abstracts the LLM backend used for code review.
// Implementations can target Groq, OpenAI, Ollama, or any compatible API.
type AIProvider interface {
	// ModelName returns the identifier of the model being used.
	ModelName() string

	// Chat sends a system and user prompt and returns the raw model response.
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
