package main

import (
	"context"
	"log/slog"

	"screen-solve/api/internal/config"
	"screen-solve/api/internal/solve"
	"screen-solve/api/internal/solve/gemini"
	"screen-solve/api/internal/solve/gpt"
	"screen-solve/api/internal/store"
)

// newSolver picks the configured engine and attaches the journal when DATABASE_URL is set.
// The returned closer releases the journal connection.
func (a *app) newSolver(ctx context.Context) (*solve.Solver, func(), error) {
	engines := &solve.Engines{
		OpenAI: gpt.New(config.OpenAIKey, a.cfg.OpenAIModel, a.cfg.OpenAIBaseURL),
		Gemini: gemini.New(config.GeminiKey, a.cfg.GeminiModel),
	}
	eng, err := engines.GetEngine(a.cfg.LLMProvider)
	if err != nil {
		return nil, nil, err
	}
	s := solve.New(eng, solve.Options{
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
		PromptDir:   a.cfg.PromptDir,
	})
	slog.Info("engine selected", "engine", eng.Name(), "model", eng.GetModel())

	closer := func() {}
	if a.cfg.DatabaseURL == "" {
		return s, closer, nil
	}
	db, err := store.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := store.NewSolveRepo(db)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	slog.Info("solve journal enabled", "db", store.SafeDSNSummary(a.cfg.DatabaseURL))
	return s.WithJournal(repo), func() { _ = db.Close() }, nil
}

// keyConfigured reports the credential of the selected provider.
func (a *app) keyConfigured() bool {
	if a.cfg.LLMProvider == "gemini" {
		return config.GeminiKey() != ""
	}
	return config.OpenAIKeyConfigured()
}
