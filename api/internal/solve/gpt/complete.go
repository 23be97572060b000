package gpt

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"screen-solve/api/internal/solve"
)

var _ solve.Engine = (*Engine)(nil)

// Complete sends the system prompt plus the screenshot (high detail) as a
// chat completion and returns the first choice's text.
func (e *Engine) Complete(ctx context.Context, in solve.CompletionRequest) (string, error) {
	cl, err := e.client()
	if err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: in.SystemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    in.ImageDataURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
		MaxTokens:   in.MaxTokens,
		Temperature: temperature(in.Temperature),
	}

	start := time.Now()
	resp, err := cl.CreateChatCompletion(ctx, req)
	log.Printf("gpt complete time: %d ms", time.Since(start).Milliseconds())
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// temperature keeps an explicit 0 on the wire: the request field is omitempty.
func temperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
