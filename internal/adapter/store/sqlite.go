// Package store persists chunk records in SQLite. Embeddings are stored
// as raw little-endian float32 blobs so the schema survives embedding
// model changes: rows with a foreign dimension stay in place and are
// filtered out on read.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"schedassist/internal/domain"
	"schedassist/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	text      TEXT NOT NULL,
	embedding BLOB NOT NULL
)`

// SQLiteStore implements port.ChunkStore backed by modernc.org/sqlite.
//
// Writers must not interleave; the store relies on the host serializing
// ingestions. Readers may run concurrently.
type SQLiteStore struct {
	db        *sql.DB
	dimension int
}

// NewSQLiteStore opens (or creates) the chunk database at path. WAL mode
// keeps concurrent readers from blocking the single writer.
func NewSQLiteStore(path string, dimension int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating chunks table: %w", err)
	}

	return &SQLiteStore{db: db, dimension: dimension}, nil
}

// Insert appends a new record and returns its rowid. The write is
// committed before returning.
func (s *SQLiteStore) Insert(ctx context.Context, text string, embedding []float32) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO chunks (text, embedding) VALUES (?, ?)",
		text, EncodeEmbedding(embedding))
	if err != nil {
		return 0, fmt.Errorf("inserting chunk: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

// ScanAll returns all records with a valid embedding, in insertion
// order. Rows whose embedding does not decode to the configured
// dimension are skipped with a warning and left in place.
func (s *SQLiteStore) ScanAll(ctx context.Context) ([]domain.ChunkRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, text, embedding FROM chunks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("scanning chunks: %w", err)
	}
	defer rows.Close()

	var records []domain.ChunkRecord
	for rows.Next() {
		var (
			id   int64
			text string
			blob []byte
		)
		if err := rows.Scan(&id, &text, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}

		vec, err := DecodeEmbedding(blob)
		if err != nil {
			logger.Warn("skipping chunk %d: %v", id, err)
			continue
		}
		if len(vec) != s.dimension {
			logger.Warn("skipping chunk %d: incompatible %d-dim vector (expected %d)", id, len(vec), s.dimension)
			continue
		}

		records = append(records, domain.ChunkRecord{ID: id, Text: text, Embedding: vec})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning chunks: %w", err)
	}
	return records, nil
}

// Count returns the total number of stored rows, valid or not.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
