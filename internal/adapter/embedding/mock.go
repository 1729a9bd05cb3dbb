package embedding

import (
	"context"
	"strings"

	"schedassist/internal/domain"
)

// MockEmbedder produces deterministic character-derived vectors for
// tests. Texts sharing characters at the same positions score closer.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}

	embedding := make([]float32, e.dimension)
	for j, r := range text {
		if j < e.dimension {
			embedding[j] = float32(r) / 1000.0
		}
	}
	return embedding, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
