package domain

// Availability is the two-state verdict for a schedule query. Any other
// value recovered from model output is malformed, never a third state.
type Availability string

const (
	Available Availability = "Available"
	Busy      Availability = "Busy"
)

// Valid reports whether the value is one of the two permitted states.
func (a Availability) Valid() bool {
	return a == Available || a == Busy
}

// ChunkRecord is one indexed schedule line with its embedding.
type ChunkRecord struct {
	ID        int64
	Text      string
	Embedding []float32
}

// ScoredChunk pairs a chunk record with its similarity to a query.
type ScoredChunk struct {
	Record ChunkRecord
	Score  float64
}

// Answer is the structured availability verdict produced per query.
type Answer struct {
	Availability Availability `json:"availability"`
	NextSlot     string       `json:"next_slot"`
}
