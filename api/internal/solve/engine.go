package solve

import (
	"context"
	"fmt"
	"strings"
)

// CompletionRequest is everything an engine needs for one completion call.
type CompletionRequest struct {
	SystemPrompt string
	ImageDataURL string
	MaxTokens    int
	Temperature  float32
}

// Engine performs one opaque completion call and returns the text of the first choice.
// Implementations must be safe for concurrent use.
type Engine interface {
	Name() string
	GetModel() string
	Complete(ctx context.Context, in CompletionRequest) (string, error)
}

type Engines struct {
	OpenAI Engine
	Gemini Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	var eng Engine
	switch strings.ToLower(strings.TrimSpace(llmName)) {
	case "", "gpt", "openai":
		eng = e.OpenAI
	case "gemini":
		eng = e.Gemini
	default:
		return nil, fmt.Errorf("unknown llm_name %q; use 'gpt' or 'gemini'", llmName)
	}
	if eng == nil {
		return nil, fmt.Errorf("engine %q is not configured", llmName)
	}
	return eng, nil
}
