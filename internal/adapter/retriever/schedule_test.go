package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"

	"schedassist/internal/adapter/memstore"
	"schedassist/internal/domain"
)

// stubEmbedder returns canned vectors per text so similarity order is
// controlled exactly.
type stubEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if vec, ok := e.vectors[text]; ok {
		return vec, nil
	}
	return e.fallback, nil
}

func (e *stubEmbedder) Dimension() int    { return 3 }
func (e *stubEmbedder) ModelName() string { return "stub" }

func newTestRetriever(t *testing.T, entries map[string][]float32, order []string, queryVec []float32) (*ScheduleRetriever, *memstore.MemoryStore) {
	t.Helper()

	store := memstore.NewMemoryStore(3)
	embedder := &stubEmbedder{vectors: entries, fallback: queryVec}

	ctx := context.Background()
	for _, text := range order {
		if _, err := store.Insert(ctx, text, entries[text]); err != nil {
			t.Fatal(err)
		}
	}

	return NewScheduleRetriever(store, embedder), store
}

func TestRetrieveEmptyStore(t *testing.T) {
	store := memstore.NewMemoryStore(3)
	embedder := &stubEmbedder{fallback: []float32{1, 0, 0}}
	r := NewScheduleRetriever(store, embedder)

	_, err := r.Retrieve(context.Background(), "Am I free Monday?", 3)
	if !errors.Is(err, domain.ErrNoScheduleData) {
		t.Fatalf("expected ErrNoScheduleData, got %v", err)
	}
}

func TestRetrieveDayFilter(t *testing.T) {
	// The Monday entry is a perfect match for the query vector, but a
	// Wednesday question must never surface it.
	entries := map[string][]float32{
		"Monday 09:00-10:00 Standup": {1, 0, 0},
		"Wednesday 13:00-14:00 Team Sync": {0, 1, 0},
		"Wednesday 16:00-18:00 Deep Focus": {0, 0.5, 0.5},
	}
	order := []string{"Monday 09:00-10:00 Standup", "Wednesday 13:00-14:00 Team Sync", "Wednesday 16:00-18:00 Deep Focus"}

	r, _ := newTestRetriever(t, entries, order, []float32{1, 0, 0})

	got, err := r.Retrieve(context.Background(), "Am I free on Wednesday at 3pm?", 3)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(got, "Monday") {
		t.Errorf("Wednesday query returned a Monday entry:\n%s", got)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 Wednesday entries, got %d:\n%s", len(lines), got)
	}
}

func TestRetrieveDayFilterNoPadding(t *testing.T) {
	// One Wednesday entry with topK 3: the day-filtered set is never
	// padded from other days.
	entries := map[string][]float32{
		"Monday 09:00 Standup": {1, 0, 0},
		"Tuesday 10:00 Review": {0.9, 0.1, 0},
		"Wednesday 16:00 Focus": {0, 0, 1},
	}
	order := []string{"Monday 09:00 Standup", "Tuesday 10:00 Review", "Wednesday 16:00 Focus"}

	r, _ := newTestRetriever(t, entries, order, []float32{1, 0, 0})

	got, err := r.Retrieve(context.Background(), "wednesday afternoon?", 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Wednesday 16:00 Focus" {
		t.Errorf("expected only the Wednesday entry, got:\n%s", got)
	}
}

func TestRetrieveDayFallthrough(t *testing.T) {
	// A day with no stored entries falls through to unfiltered ranking.
	entries := map[string][]float32{
		"Monday 09:00 Standup": {1, 0, 0},
		"Tuesday 10:00 Review": {0, 1, 0},
	}
	order := []string{"Monday 09:00 Standup", "Tuesday 10:00 Review"}

	r, _ := newTestRetriever(t, entries, order, []float32{1, 0, 0})

	got, err := r.Retrieve(context.Background(), "Am I free on Friday?", 5)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected fallback to all entries, got:\n%s", got)
	}
	if lines[0] != "Monday 09:00 Standup" {
		t.Errorf("expected most similar entry first, got %q", lines[0])
	}
}

func TestRetrieveRankingDeterministic(t *testing.T) {
	entries := map[string][]float32{
		"Saturday 09:00 Run": {0.9, 0.1, 0},
		"Saturday 11:00 Brunch": {0.8, 0.2, 0},
		"Saturday 15:00 Errands": {0.7, 0.3, 0},
	}
	order := []string{"Saturday 09:00 Run", "Saturday 11:00 Brunch", "Saturday 15:00 Errands"}

	r, _ := newTestRetriever(t, entries, order, []float32{1, 0, 0})

	first, err := r.Retrieve(context.Background(), "saturday plans", 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := r.Retrieve(context.Background(), "saturday plans", 2)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("retrieval not deterministic:\n%s\nvs\n%s", first, again)
		}
	}

	lines := strings.Split(first, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected topK=2 entries, got %d", len(lines))
	}
	if lines[0] != "Saturday 09:00 Run" || lines[1] != "Saturday 11:00 Brunch" {
		t.Errorf("unexpected ranking order: %v", lines)
	}
}

func TestRetrieveTieBreakInsertionOrder(t *testing.T) {
	// Identical vectors, identical scores: first inserted wins.
	entries := map[string][]float32{
		"Monday 09:00 First": {1, 0, 0},
		"Monday 10:00 Second": {1, 0, 0},
	}
	order := []string{"Monday 09:00 First", "Monday 10:00 Second"}

	r, _ := newTestRetriever(t, entries, order, []float32{1, 0, 0})

	got, err := r.Retrieve(context.Background(), "monday", 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Monday 09:00 First" {
		t.Errorf("expected insertion-order tie-break, got %q", got)
	}
}

func TestRetrieveZeroVectorExcluded(t *testing.T) {
	entries := map[string][]float32{
		"Monday 09:00 Standup": {0, 0, 0},
		"Monday 11:00 Review": {1, 0, 0},
	}
	order := []string{"Monday 09:00 Standup", "Monday 11:00 Review"}

	r, _ := newTestRetriever(t, entries, order, []float32{1, 0, 0})

	got, err := r.Retrieve(context.Background(), "monday review", 5)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Monday 11:00 Review" {
		t.Errorf("expected the zero-vector record to be excluded, got:\n%s", got)
	}
}
