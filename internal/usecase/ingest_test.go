package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"schedassist/internal/adapter/embedding"
	"schedassist/internal/adapter/extract"
	"schedassist/internal/adapter/memstore"
)

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "filters empties and comments",
			text: "Monday 09:00-10:00 Standup\n\n# note\nWednesday 16:00-18:00 Deep Focus",
			want: []string{"Monday 09:00-10:00 Standup", "Wednesday 16:00-18:00 Deep Focus"},
		},
		{
			name: "trims whitespace",
			text: "  Monday 09:00 Standup  \n\t\n   # indented comment\n",
			want: []string{"Monday 09:00 Standup"},
		},
		{
			name: "empty document",
			text: "",
			want: nil,
		},
		{
			name: "comments only",
			text: "# week of June 2\n# tentative",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitChunks(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d chunks, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIngestTextIndexesChunks(t *testing.T) {
	store := memstore.NewMemoryStore(8)
	uc := NewIngestUseCase(embedding.NewMockEmbedder(8), store, extract.New(), nil)

	count, err := uc.IngestText(context.Background(), "Monday 09:00-10:00 Standup\n\n# note\nWednesday 16:00-18:00 Deep Focus")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("expected 2 chunks indexed, got %d", count)
	}

	records, err := store.ScanAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(records))
	}
	for _, rec := range records {
		if len(rec.Embedding) != 8 {
			t.Errorf("record %d: embedding length %d, want 8", rec.ID, len(rec.Embedding))
		}
	}
}

func TestIngestTextEmptyDocument(t *testing.T) {
	store := memstore.NewMemoryStore(8)
	uc := NewIngestUseCase(embedding.NewMockEmbedder(8), store, extract.New(), nil)

	count, err := uc.IngestText(context.Background(), "\n\n# only a comment\n")
	if err != nil {
		t.Fatalf("an empty well-formed document is valid, got error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 chunks, got %d", count)
	}
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate() error {
	c.calls++
	return nil
}

func TestIngestInvalidatesCache(t *testing.T) {
	store := memstore.NewMemoryStore(8)
	inv := &countingInvalidator{}
	uc := NewIngestUseCase(embedding.NewMockEmbedder(8), store, extract.New(), inv)

	if _, err := uc.IngestText(context.Background(), "Monday 09:00 Standup"); err != nil {
		t.Fatal(err)
	}
	if inv.calls != 1 {
		t.Errorf("expected 1 invalidation, got %d", inv.calls)
	}
}

func TestIngestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.txt")
	content := "Monday 09:00 Standup\nTuesday 14:00 Review\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	store := memstore.NewMemoryStore(8)
	uc := NewIngestUseCase(embedding.NewMockEmbedder(8), store, extract.New(), nil)

	count, err := uc.IngestFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 chunks, got %d", count)
	}
}

func TestIngestProgressCallback(t *testing.T) {
	store := memstore.NewMemoryStore(8)
	uc := NewIngestUseCase(embedding.NewMockEmbedder(8), store, extract.New(), nil)

	var seen []int
	uc.Progress = func(done, total int) {
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		seen = append(seen, done)
	}

	if _, err := uc.IngestText(context.Background(), "Monday a\nTuesday b\nWednesday c"); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("unexpected progress sequence: %v", seen)
	}
}
