package cli

import (
	"fmt"
	"time"

	"schedassist/config"
	"schedassist/internal/adapter/cache"
	"schedassist/internal/adapter/embedding"
	"schedassist/internal/adapter/extract"
	"schedassist/internal/adapter/llm"
	"schedassist/internal/adapter/retriever"
	"schedassist/internal/adapter/store"
	"schedassist/internal/port"
	"schedassist/internal/usecase"
)

// app wires the configured adapters and use cases. Everything is
// constructed once and passed by reference; there are no hidden
// globals.
type app struct {
	store     *store.SQLiteStore
	cache     *cache.AnswerCache // nil when disabled
	embedder  port.Embedder
	retriever *retriever.ScheduleRetriever
	ingest    *usecase.IngestUseCase
	ask       *usecase.AskUseCase
}

func buildApp(cfg *config.Config) (*app, error) {
	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.NewSQLiteStore(cfg.Store.Path, embedder.Dimension())
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk store: %w", err)
	}

	var answerCache *cache.AnswerCache
	if cfg.Cache.Enabled {
		answerCache, err = cache.Open(cfg.Cache.Path, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to open answer cache: %w", err)
		}
	}

	model := llm.NewOllamaClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Timeout:     time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})

	ret := retriever.NewScheduleRetriever(st, embedder)

	var invalidator usecase.Invalidator
	var askCache usecase.AnswerCache
	if answerCache != nil {
		invalidator = answerCache
		askCache = answerCache
	}

	return &app{
		store:     st,
		cache:     answerCache,
		embedder:  embedder,
		retriever: ret,
		ingest:    usecase.NewIngestUseCase(embedder, st, extract.New(), invalidator),
		ask:       usecase.NewAskUseCase(ret, model, askCache, cfg.Retrieve.AnswerTopK),
	}, nil
}

func buildEmbedder(cfg *config.Config) (port.Embedder, error) {
	timeout := time.Duration(cfg.Embedding.TimeoutSec) * time.Second

	switch cfg.Embedding.Provider {
	case "", "ollama":
		return embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL, timeout), nil
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.BaseURL, timeout)
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Close()
	}
	a.store.Close()
}
