package port

import (
	"context"

	"schedassist/internal/domain"
)

// ChunkStore persists chunk records. Records are append-only: never
// updated, never deleted. Insert must be durable before it returns.
//
// Readers may run concurrently; writers must not interleave. The store
// does not lock internally; the host serializes ingestions.
type ChunkStore interface {
	// Insert appends a new record and returns its assigned identifier.
	// Identifiers are monotonically increasing.
	Insert(ctx context.Context, text string, embedding []float32) (int64, error)

	// ScanAll returns every stored record whose embedding matches the
	// configured dimension. Mismatched rows are skipped with a logged
	// warning, not deleted; a later dimension change can reclaim them.
	ScanAll(ctx context.Context) ([]domain.ChunkRecord, error)

	// Count returns the number of stored records, including any whose
	// dimension no longer matches.
	Count(ctx context.Context) (int, error)

	Close() error
}
