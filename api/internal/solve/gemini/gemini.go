package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"screen-solve/api/internal/solve"
	"screen-solve/api/internal/util"
)

type Engine struct {
	Key   func() string
	Model string
}

func New(key func() string, model string) *Engine {
	return &Engine{
		Key:   key,
		Model: strings.TrimSpace(model),
	}
}

var _ solve.Engine = (*Engine)(nil)

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Complete sends the screenshot as an inline blob under the system instruction
// and returns the text of the first candidate.
func (e *Engine) Complete(ctx context.Context, in solve.CompletionRequest) (string, error) {
	var key string
	if e.Key != nil {
		key = strings.TrimSpace(e.Key())
	}
	if key == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}

	img, mime, err := decodeImage(in.ImageDataURL)
	if err != nil {
		return "", err
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(in.Temperature),
	}
	if in.MaxTokens > 0 {
		m.GenerationConfig.MaxOutputTokens = ptrInt32(int32(in.MaxTokens))
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(in.SystemPrompt)},
	}

	start := time.Now()
	resp, err := m.GenerateContent(ctx, genai.Blob{MIMEType: mime, Data: img})
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini: empty response after %d ms", time.Since(start).Milliseconds())
	}
	return txt, nil
}

// decodeImage extracts the bytes and MIME type of a data URL.
func decodeImage(dataURL string) ([]byte, string, error) {
	img, hint, err := util.DecodeBase64MaybeDataURL(dataURL)
	if err != nil {
		return nil, "", fmt.Errorf("gemini: bad image data url: %w", err)
	}
	if len(img) == 0 {
		return nil, "", errors.New("gemini: empty image")
	}
	return img, util.PickMIME("", hint, img), nil
}

// firstText joins the text parts of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
