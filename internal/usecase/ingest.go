package usecase

import (
	"context"
	"fmt"
	"strings"

	"schedassist/internal/port"
)

// Invalidator is notified after every successful ingestion so cached
// answers built over the old index are dropped.
type Invalidator interface {
	Invalidate() error
}

// IngestUseCase splits schedule documents into line chunks, embeds
// them, and writes them to the chunk store.
type IngestUseCase struct {
	embedder  port.Embedder
	store     port.ChunkStore
	extractor port.TextExtractor
	cache     Invalidator // optional

	// Progress, when set, is called after each chunk is indexed.
	Progress func(done, total int)
}

// NewIngestUseCase creates a new ingest use case. cache may be nil.
func NewIngestUseCase(embedder port.Embedder, store port.ChunkStore, extractor port.TextExtractor, cache Invalidator) *IngestUseCase {
	return &IngestUseCase{
		embedder:  embedder,
		store:     store,
		extractor: extractor,
		cache:     cache,
	}
}

// SplitChunks splits raw document text into indexable chunks: one per
// line, trimmed, dropping empties and `#` comment lines. Schedule
// sources carry one entry per line, so line granularity is the natural
// chunk; comment stripping lets the document carry human annotations
// without polluting the index.
func SplitChunks(text string) []string {
	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		chunks = append(chunks, line)
	}
	return chunks
}

// IngestText indexes the given document text and returns the number of
// chunks indexed. Zero is a valid result: an empty but well-formed
// document is not an error.
func (u *IngestUseCase) IngestText(ctx context.Context, text string) (int, error) {
	chunks := SplitChunks(text)

	for i, chunk := range chunks {
		embedding, err := u.embedder.Embed(ctx, chunk)
		if err != nil {
			return i, fmt.Errorf("failed to embed chunk %d: %w", i+1, err)
		}
		if _, err := u.store.Insert(ctx, chunk, embedding); err != nil {
			return i, fmt.Errorf("failed to store chunk %d: %w", i+1, err)
		}
		if u.Progress != nil {
			u.Progress(i+1, len(chunks))
		}
	}

	if u.cache != nil {
		if err := u.cache.Invalidate(); err != nil {
			return len(chunks), fmt.Errorf("failed to invalidate answer cache: %w", err)
		}
	}

	return len(chunks), nil
}

// IngestFile extracts text from the document at path and indexes it.
func (u *IngestUseCase) IngestFile(ctx context.Context, path string) (int, error) {
	text, err := u.extractor.ExtractText(ctx, path)
	if err != nil {
		return 0, err
	}
	return u.IngestText(ctx, text)
}
