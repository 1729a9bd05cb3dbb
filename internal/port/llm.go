package port

import "context"

// LLM represents a language model for text generation. The model always
// returns raw text; all structure recovery goes through the answer
// extractor.
type LLM interface {
	// Generate generates text based on the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
