package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business failures, distinct from
// infrastructure errors.
var (
	// ErrUnsupportedFileType indicates an upload with an extension other
	// than .pdf or .txt. Rejected before ingestion, non-retryable.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrNoScheduleData indicates the chunk store is empty at query time.
	// Distinct from "no matches for this day", which falls back to
	// unfiltered ranking instead.
	ErrNoScheduleData = errors.New("no schedule data")

	// ErrModelCall indicates the generation call itself failed. Not
	// retried internally.
	ErrModelCall = errors.New("model call failed")

	// ErrEmptyInput indicates text was empty where the embedder requires
	// non-empty input.
	ErrEmptyInput = errors.New("empty input")
)

// malformedExcerptLen bounds the raw-text excerpt carried for diagnosis.
const malformedExcerptLen = 200

// MalformedOutputError is returned when every extraction stage fails to
// recover a structured answer from model output.
type MalformedOutputError struct {
	Excerpt string
}

// NewMalformedOutputError builds the error from raw model output,
// truncating the diagnostic excerpt.
func NewMalformedOutputError(raw string) *MalformedOutputError {
	if len(raw) > malformedExcerptLen {
		raw = raw[:malformedExcerptLen]
	}
	return &MalformedOutputError{Excerpt: raw}
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("could not extract a valid answer from model output: %s", e.Excerpt)
}
