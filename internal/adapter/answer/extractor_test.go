package answer

import (
	"errors"
	"testing"

	"schedassist/internal/domain"
)

func TestExtractMinifiedJSON(t *testing.T) {
	ans, err := Extract(`{"availability": "Busy", "next_slot": "Available after 15:30"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Availability != domain.Busy {
		t.Errorf("expected Busy, got %q", ans.Availability)
	}
	if ans.NextSlot != "Available after 15:30" {
		t.Errorf("unexpected next_slot: %q", ans.NextSlot)
	}
}

func TestExtractMarkdownFenced(t *testing.T) {
	inputs := []string{
		"```json\n{\"availability\": \"Busy\", \"next_slot\": \"Available after 15:30\"}\n```",
		"```\n{\"availability\": \"Busy\", \"next_slot\": \"Available after 15:30\"}\n```",
		"Here is the JSON:\n{\"availability\": \"Busy\", \"next_slot\": \"Available after 15:30\"}",
		"JSON: {\"availability\": \"Busy\", \"next_slot\": \"Available after 15:30\"}",
	}

	for _, input := range inputs {
		ans, err := Extract(input)
		if err != nil {
			t.Errorf("Extract(%q) failed: %v", input, err)
			continue
		}
		if ans.Availability != domain.Busy || ans.NextSlot != "Available after 15:30" {
			t.Errorf("Extract(%q) = %+v", input, ans)
		}
	}
}

func TestExtractObjectInsideProse(t *testing.T) {
	input := "Based on the schedule, here's my answer:\n\n" +
		`{"availability": "Available", "next_slot": "Next event: Deep Focus Work at 16:00"}` +
		"\n\nLet me know if you need anything else."

	ans, err := Extract(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Availability != domain.Available {
		t.Errorf("expected Available, got %q", ans.Availability)
	}
	if ans.NextSlot != "Next event: Deep Focus Work at 16:00" {
		t.Errorf("unexpected next_slot: %q", ans.NextSlot)
	}
}

func TestExtractObjectWithNewlinesInside(t *testing.T) {
	input := "{\n  \"availability\": \"Busy\",\n  \"next_slot\": \"Available after 15:30\"\n}"

	ans, err := Extract(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Availability != domain.Busy {
		t.Errorf("expected Busy, got %q", ans.Availability)
	}
}

func TestExtractManualFallback(t *testing.T) {
	input := `Sure! The answer is "availability": "Available", "next_slot": "Next event at 16:00" — hope that helps!`

	ans, err := Extract(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Availability != domain.Available {
		t.Errorf("expected Available, got %q", ans.Availability)
	}
	if ans.NextSlot != "Next event at 16:00" {
		t.Errorf("unexpected next_slot: %q", ans.NextSlot)
	}
}

func TestExtractMalformed(t *testing.T) {
	input := "I'm sorry, I cannot determine the schedule from the given context."

	_, err := Extract(input)
	if err == nil {
		t.Fatal("expected error for unrecognizable output")
	}

	var malformed *domain.MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got %T", err)
	}
	if malformed.Excerpt == "" {
		t.Error("expected a diagnostic excerpt")
	}
}

func TestExtractMalformedExcerptTruncated(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	_, err := Extract(string(long))
	var malformed *domain.MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got %v", err)
	}
	if len(malformed.Excerpt) != 200 {
		t.Errorf("expected a 200-char excerpt, got %d", len(malformed.Excerpt))
	}
}

func TestExtractRejectsThirdState(t *testing.T) {
	// "Maybe" is not a permitted availability value. The scoped and
	// direct parses must reject it; manual extraction cannot match it.
	_, err := Extract(`{"availability": "Maybe", "next_slot": "unclear"}`)
	if err == nil {
		t.Fatal("expected error for invalid availability value")
	}

	var malformed *domain.MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got %T", err)
	}
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{}\n```", "{}\n"},
		{"```\n{}\n```", "{}\n"},
		{"Here is the JSON:\n{}", "{}"},
		{"plain text", "plain text"},
	}

	for _, tt := range tests {
		if got := stripMarkdown(tt.in); got != tt.want {
			t.Errorf("stripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
