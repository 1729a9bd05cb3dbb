// Package retriever ranks stored schedule chunks against a query by
// cosine similarity, restricting candidates to a detected weekday when
// one is mentioned.
package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"schedassist/internal/domain"
	"schedassist/internal/logger"
	"schedassist/internal/port"
)

// ScheduleRetriever implements port.Retriever over a chunk store.
type ScheduleRetriever struct {
	store    port.ChunkStore
	embedder port.Embedder
}

func NewScheduleRetriever(store port.ChunkStore, embedder port.Embedder) *ScheduleRetriever {
	return &ScheduleRetriever{store: store, embedder: embedder}
}

// Retrieve returns the top-k matching chunk texts joined by newline.
// When the query names a weekday and the store holds entries for it,
// only that day's entries are ranked, even if fewer than topK exist.
// Blending in other days' entries would corrupt the answer.
func (r *ScheduleRetriever) Retrieve(ctx context.Context, query string, topK int) (string, error) {
	ranked, err := r.Rank(ctx, query, topK)
	if err != nil {
		return "", err
	}

	texts := make([]string, len(ranked))
	for i, sc := range ranked {
		texts[i] = sc.Record.Text
	}
	return strings.Join(texts, "\n"), nil
}

// Rank returns the top-k chunks with their similarity scores, applying
// the same day-aware filtering as Retrieve.
func (r *ScheduleRetriever) Rank(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	if topK < 1 {
		topK = 1
	}

	targetDay, hasDay := DetectDay(query)

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	records, err := r.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNoScheduleData
	}

	if hasDay {
		logger.Debug("filtering for %s entries", targetDay)
		dayRecords := make([]domain.ChunkRecord, 0, len(records))
		for _, rec := range records {
			if strings.Contains(rec.Text, targetDay) {
				dayRecords = append(dayRecords, rec)
			}
		}
		// An empty day-filtered set falls through to unrestricted
		// ranking; a non-empty one never does, even below topK.
		if len(dayRecords) > 0 {
			return rankBySimilarity(dayRecords, queryVec, topK), nil
		}
		logger.Debug("no %s entries stored, falling back to unfiltered ranking", targetDay)
	}

	return rankBySimilarity(records, queryVec, topK), nil
}

// rankBySimilarity scores records against the query vector and returns
// the topK highest. The sort is stable, so equal scores keep insertion
// order. Zero-magnitude stored vectors are excluded rather than scored.
func rankBySimilarity(records []domain.ChunkRecord, queryVec []float32, topK int) []domain.ScoredChunk {
	scored := make([]domain.ScoredChunk, 0, len(records))
	for _, rec := range records {
		score, ok := cosineSimilarity(queryVec, rec.Embedding)
		if !ok {
			continue
		}
		scored = append(scored, domain.ScoredChunk{Record: rec, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// cosineSimilarity calculates the cosine similarity between two vectors.
// The second return is false when the score is undefined: mismatched
// lengths or a zero-magnitude vector.
func cosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, false
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
