package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"screen-solve/api/internal/solve"
)

func TestCompleteWithoutKey(t *testing.T) {
	e := New(func() string { return "" }, "gemini-2.5-flash")
	_, err := e.Complete(context.Background(), solve.CompletionRequest{ImageDataURL: "data:image/png;base64,iVBORw0KGgo="})
	if err == nil || err.Error() != "GEMINI_API_KEY is empty" {
		t.Fatalf("err = %v", err)
	}
}

func TestDecodeImage(t *testing.T) {
	img, mime, err := decodeImage("data:image/png;base64,iVBORw0KGgo=")
	if err != nil {
		t.Fatalf("decodeImage: %v", err)
	}
	if mime != "image/png" || len(img) != 8 {
		t.Fatalf("got mime=%q len=%d", mime, len(img))
	}
	if _, _, err := decodeImage("data:image/png;base64,***"); err == nil {
		t.Fatal("expected error for invalid payload")
	}
	if _, _, err := decodeImage("data:image/png;base64,"); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestFirstText(t *testing.T) {
	if got := firstText(nil); got != "" {
		t.Fatalf("nil response: %q", got)
	}
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"answer":`), genai.Text(`"42"}`)}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	if got := firstText(resp); got != `{"answer":"42"}` {
		t.Fatalf("firstText = %q", got)
	}
}
