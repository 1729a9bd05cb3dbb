package usecase

import (
	"context"
	"fmt"

	"schedassist/internal/adapter/answer"
	"schedassist/internal/domain"
	"schedassist/internal/logger"
	"schedassist/internal/port"
)

// promptTemplate instructs the model to reason over the retrieved
// schedule fragments and reply with the bare answer object. The 24-hour
// conversion steps and the examples anchor smaller local models.
const promptTemplate = `You are analyzing a weekly schedule to answer availability questions.

SCHEDULE:
%s

QUESTION: %s

INSTRUCTIONS:
1. Convert the time in the question to 24-hour format (3pm = 15:00, 3am = 03:00)
2. Check if any schedule entry is happening at that exact time
3. An entry like "Wednesday 16:00-18:00" means busy from 16:00 to 18:00
4. Determine availability:
   - If the requested time falls within any entry's time range: "Busy"
   - Otherwise: "Available"
5. For next_slot:
   - If BUSY: show when the current event ends and what time they become available
   - If AVAILABLE: show the next upcoming event

Respond with ONLY this JSON (no explanation, no markdown):
{"availability": "Available or Busy", "next_slot": "when available or next event"}

Examples:
- If asking about Monday 3pm (15:00) and "Monday 14:00-15:30 Client Call" is happening:
  {"availability": "Busy", "next_slot": "Available after 15:30"}

- If asking about Wednesday 3pm (15:00) between "13:00-14:00 Team Sync" and "16:00-18:00 Deep Focus Work":
  {"availability": "Available", "next_slot": "Next event: Deep Focus Work at 16:00"}`

// AnswerCache caches structured answers per query. Implementations must
// invalidate on index changes.
type AnswerCache interface {
	Get(query string) (domain.Answer, bool)
	Put(query string, ans domain.Answer) error
}

// AskUseCase answers availability questions: retrieve context, prompt
// the model, recover the structured answer.
type AskUseCase struct {
	retriever port.Retriever
	llm       port.LLM
	cache     AnswerCache // optional
	topK      int
}

// NewAskUseCase creates a new ask use case. cache may be nil.
func NewAskUseCase(retriever port.Retriever, llm port.LLM, cache AnswerCache, topK int) *AskUseCase {
	if topK < 1 {
		topK = 5
	}
	return &AskUseCase{
		retriever: retriever,
		llm:       llm,
		cache:     cache,
		topK:      topK,
	}
}

// Ask answers the query against the indexed schedule.
func (u *AskUseCase) Ask(ctx context.Context, query string) (domain.Answer, error) {
	if u.cache != nil {
		if ans, hit := u.cache.Get(query); hit {
			logger.Debug("answer cache hit for query: %s", query)
			return ans, nil
		}
	}

	scheduleContext, err := u.retriever.Retrieve(ctx, query, u.topK)
	if err != nil {
		return domain.Answer{}, err
	}

	prompt := fmt.Sprintf(promptTemplate, scheduleContext, query)

	raw, err := u.llm.Generate(ctx, prompt)
	if err != nil {
		return domain.Answer{}, err
	}
	logger.Debug("raw model response: %s", raw)

	ans, err := answer.Extract(raw)
	if err != nil {
		return domain.Answer{}, err
	}

	if u.cache != nil {
		if err := u.cache.Put(query, ans); err != nil {
			logger.Warn("failed to cache answer: %v", err)
		}
	}

	return ans, nil
}
