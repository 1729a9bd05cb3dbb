package port

import "context"

// Embedder generates a vector embedding for text.
type Embedder interface {
	// Embed generates the embedding for the given text. Empty input is
	// an error; the ingestion pipeline filters empties beforehand.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
