// Package answer recovers a structured availability verdict from
// free-form model output. Local models reliably violate strict JSON
// formatting (prose lead-ins, markdown fences, wrapped quotes), so
// recovery is an ordered chain of independently testable strategies
// rather than one lenient parser.
package answer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"schedassist/internal/domain"
	"schedassist/internal/logger"
)

var (
	fenceRe  = regexp.MustCompile("```(?:json)?\\s*")
	leadInRe = regexp.MustCompile(`(?i)^(?:here is the json:|here's the json:|json:)\s*\n*`)
	objectRe = regexp.MustCompile(`(?s)\{[^{}]*"availability"[^{}]*"next_slot"[^{}]*\}`)
	wsRe     = regexp.MustCompile(`\s+`)
	availRe  = regexp.MustCompile(`"availability"\s*:\s*"(Available|Busy)"`)
	slotRe   = regexp.MustCompile(`"next_slot"\s*:\s*"([^"]*)"`)
)

// strategy attempts to recover an answer from cleaned model output.
type strategy func(text string) (domain.Answer, error)

var strategies = []strategy{
	extractScopedObject,
	extractDirect,
	extractManual,
}

// Extract parses free-form model output into an answer. Markdown fences
// and common lead-in phrases are stripped first; then each strategy is
// tried in order and the first success wins. When every strategy fails,
// the error carries the start of the raw text for diagnosis.
func Extract(raw string) (domain.Answer, error) {
	cleaned := stripMarkdown(raw)

	for _, s := range strategies {
		if ans, err := s(cleaned); err == nil {
			return ans, nil
		}
	}

	return domain.Answer{}, domain.NewMalformedOutputError(raw)
}

// stripMarkdown removes fenced code-block delimiters (with or without a
// language tag) and lead-in phrases from the start of the text.
func stripMarkdown(text string) string {
	text = fenceRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "```", "")
	return leadInRe.ReplaceAllString(text, "")
}

// extractScopedObject finds a single-level brace-delimited object
// containing both literal keys, collapses whitespace runs, and parses
// it. Parse failures are logged with the offending substring.
func extractScopedObject(text string) (domain.Answer, error) {
	match := objectRe.FindString(text)
	if match == "" {
		return domain.Answer{}, fmt.Errorf("no availability object found")
	}

	jsonStr := wsRe.ReplaceAllString(match, " ")
	ans, err := parseAnswer(jsonStr)
	if err != nil {
		logger.Warn("answer parse error: %v (attempted to parse: %s)", err, jsonStr)
		return domain.Answer{}, err
	}
	return ans, nil
}

// extractDirect parses the whole trimmed text as an answer object.
func extractDirect(text string) (domain.Answer, error) {
	return parseAnswer(strings.TrimSpace(text))
}

// extractManual independently pattern-matches both fields and rebuilds
// the answer even when the surrounding text is not parseable as a whole.
func extractManual(text string) (domain.Answer, error) {
	availMatch := availRe.FindStringSubmatch(text)
	slotMatch := slotRe.FindStringSubmatch(text)
	if availMatch == nil || slotMatch == nil {
		return domain.Answer{}, fmt.Errorf("availability or next_slot field not found")
	}

	return domain.Answer{
		Availability: domain.Availability(availMatch[1]),
		NextSlot:     slotMatch[1],
	}, nil
}

func parseAnswer(text string) (domain.Answer, error) {
	var ans domain.Answer
	if err := json.Unmarshal([]byte(text), &ans); err != nil {
		return domain.Answer{}, err
	}
	if !ans.Availability.Valid() {
		return domain.Answer{}, fmt.Errorf("invalid availability value: %q", ans.Availability)
	}
	return ans, nil
}
