// Package memstore provides an in-memory chunk store for tests.
package memstore

import (
	"context"
	"sync"

	"schedassist/internal/domain"
	"schedassist/internal/logger"
)

// MemoryStore implements port.ChunkStore without persistence. It mirrors
// the SQLite store's read-side filtering so retrieval behavior can be
// tested against it directly.
type MemoryStore struct {
	mu        sync.RWMutex
	records   []domain.ChunkRecord
	nextID    int64
	dimension int
}

func NewMemoryStore(dimension int) *MemoryStore {
	return &MemoryStore{nextID: 1, dimension: dimension}
}

func (s *MemoryStore) Insert(_ context.Context, text string, embedding []float32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	vec := make([]float32, len(embedding))
	copy(vec, embedding)
	s.records = append(s.records, domain.ChunkRecord{ID: id, Text: text, Embedding: vec})
	return id, nil
}

func (s *MemoryStore) ScanAll(_ context.Context) ([]domain.ChunkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.ChunkRecord, 0, len(s.records))
	for _, rec := range s.records {
		if len(rec.Embedding) != s.dimension {
			logger.Warn("skipping chunk %d: incompatible %d-dim vector (expected %d)", rec.ID, len(rec.Embedding), s.dimension)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
