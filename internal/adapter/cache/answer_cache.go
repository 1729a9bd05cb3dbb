// Package cache provides a persistent answer cache so repeated
// availability questions skip the model call. Entries are invalidated
// as a whole when the schedule index changes.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"schedassist/internal/domain"
)

var (
	bucketAnswers = []byte("answers")
	bucketMeta    = []byte("meta")
	keyGeneration = []byte("generation")
)

// AnswerCache stores query->answer pairs in BoltDB with a TTL and a
// generation counter. Ingesting new schedule data bumps the generation,
// which turns every existing entry into a miss.
type AnswerCache struct {
	db  *bbolt.DB
	ttl time.Duration
}

type cachedAnswer struct {
	Answer     domain.Answer `json:"answer"`
	CreatedAt  int64         `json:"created_at"`
	Generation uint64        `json:"generation"`
}

// Open opens (or creates) the answer cache database at path.
func Open(path string, ttl time.Duration) (*AnswerCache, error) {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening answer cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAnswers); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache buckets: %w", err)
	}

	return &AnswerCache{db: db, ttl: ttl}, nil
}

func cacheKey(query string) []byte {
	hash := sha256.Sum256([]byte(query))
	return []byte(hex.EncodeToString(hash[:16]))
}

// Get returns the cached answer for the query, if present, fresh, and
// from the current index generation.
func (c *AnswerCache) Get(query string) (domain.Answer, bool) {
	var (
		entry cachedAnswer
		found bool
	)

	err := c.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketAnswers).Get(cacheKey(query))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil // Treat corrupted entries as misses
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return domain.Answer{}, false
	}

	if time.Since(time.Unix(entry.CreatedAt, 0)) > c.ttl {
		return domain.Answer{}, false
	}
	if entry.Generation != c.generation() {
		return domain.Answer{}, false
	}

	return entry.Answer, true
}

// Put stores an answer for the query under the current generation.
func (c *AnswerCache) Put(query string, ans domain.Answer) error {
	entry := cachedAnswer{
		Answer:     ans,
		CreatedAt:  time.Now().Unix(),
		Generation: c.generation(),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAnswers).Put(cacheKey(query), raw)
	})
}

// Invalidate bumps the index generation, turning all existing entries
// into misses. Called after every ingestion.
func (c *AnswerCache) Invalidate() error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		gen := readGeneration(meta) + 1

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, gen)
		return meta.Put(keyGeneration, buf)
	})
}

// Close closes the cache database.
func (c *AnswerCache) Close() error {
	return c.db.Close()
}

func (c *AnswerCache) generation() uint64 {
	var gen uint64
	c.db.View(func(tx *bbolt.Tx) error {
		gen = readGeneration(tx.Bucket(bucketMeta))
		return nil
	})
	return gen
}

func readGeneration(meta *bbolt.Bucket) uint64 {
	raw := meta.Get(keyGeneration)
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}
