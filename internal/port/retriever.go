package port

import "context"

// Retriever finds the schedule context most relevant to a query.
type Retriever interface {
	// Retrieve returns the top-k matching chunk texts joined by newline.
	// Returns domain.ErrNoScheduleData when the store is empty.
	Retrieve(ctx context.Context, query string, topK int) (string, error)
}
