package retriever

import "testing"

func TestDetectDay(t *testing.T) {
	tests := []struct {
		query   string
		wantDay string
		wantOK  bool
	}{
		{"Am I free on Wednesday at 3pm?", "Wednesday", true},
		{"am i free on wednesday?", "Wednesday", true},
		{"WEDNESDAY afternoon", "Wednesday", true},
		{"What about saturday?", "Saturday", true},
		{"Am I free at 3pm?", "", false},
		{"", "", false},
		// Two days mentioned: first match in Monday..Sunday order wins.
		{"friday or monday?", "Monday", true},
		// Substring matches count; "sundays" contains "sunday".
		{"Do I work sundays?", "Sunday", true},
	}

	for _, tt := range tests {
		day, ok := DetectDay(tt.query)
		if ok != tt.wantOK || day != tt.wantDay {
			t.Errorf("DetectDay(%q) = (%q, %v), want (%q, %v)", tt.query, day, ok, tt.wantDay, tt.wantOK)
		}
	}
}
