package solve

import (
	"errors"
	"testing"

	"screen-solve/api/internal/solve/types"
)

func TestParseReplyFencedAndBareAgree(t *testing.T) {
	want := types.SolveResult{Answer: "42", Confidence: 0.8, Rationale: "Computed"}
	for _, raw := range []string{
		"```json\n{\"answer\":\"42\",\"confidence\":0.8,\"rationale\":\"Computed\"}\n```",
		"```\n{\"answer\":\"42\",\"confidence\":0.8,\"rationale\":\"Computed\"}\n```",
		`{"answer":"42","confidence":0.8,"rationale":"Computed"}`,
	} {
		got, err := ParseReply(raw)
		if err != nil {
			t.Fatalf("ParseReply(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseReply(%q) = %+v, want %+v", raw, got, want)
		}
	}
}

func TestParseReplyClampsConfidence(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{`{"confidence":-5}`, 0},
		{`{"confidence":0}`, 0},
		{`{"confidence":0.5}`, 0.5},
		{`{"confidence":1}`, 1},
		{`{"confidence":1.5}`, 1},
		{`{"confidence":1e400}`, 1},
		{`{"confidence":"0.75"}`, 0.75},
		{`{"confidence":" 2 "}`, 1},
		{`{"confidence":true}`, 1},
		{`{"confidence":false}`, 0},
	}
	for _, tt := range tests {
		got, err := ParseReply(tt.raw)
		if err != nil {
			t.Fatalf("ParseReply(%s): %v", tt.raw, err)
		}
		if got.Confidence != tt.want {
			t.Fatalf("ParseReply(%s).Confidence = %v, want %v", tt.raw, got.Confidence, tt.want)
		}
	}
}

func TestParseReplyDefaults(t *testing.T) {
	got, err := ParseReply(`{"confidence":0.9}`)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	want := types.SolveResult{Answer: DefaultAnswer, Confidence: 0.9, Rationale: ""}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	got, err = ParseReply(`{}`)
	if err != nil {
		t.Fatalf("ParseReply({}): %v", err)
	}
	if got.Answer != DefaultAnswer || got.Confidence != 0 || got.Rationale != "" {
		t.Fatalf("empty object: got %+v", got)
	}

	got, err = ParseReply(`{"answer":null,"rationale":null,"confidence":0.1}`)
	if err != nil {
		t.Fatalf("ParseReply(nulls): %v", err)
	}
	if got.Answer != DefaultAnswer || got.Rationale != "" {
		t.Fatalf("null text fields not defaulted: %+v", got)
	}
}

func TestParseReplyRendersNonStringText(t *testing.T) {
	got, err := ParseReply(`{"answer":15,"confidence":0.95,"rationale":"Pattern increases by 3"}`)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if got.Answer != "15" {
		t.Fatalf("answer = %q, want %q", got.Answer, "15")
	}
	got, err = ParseReply(`{"answer":[1, 2],"confidence":0.5}`)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if got.Answer != "[1,2]" {
		t.Fatalf("answer = %q, want %q", got.Answer, "[1,2]")
	}
}

func TestParseReplyMalformed(t *testing.T) {
	for _, raw := range []string{
		"This is not JSON at all",
		"",
		"```json\n```",
		`[1,2,3]`,
		`"just a string"`,
		`null`,
		`{"answer":"x"} trailing`,
		`{"confidence":null}`,
		`{"confidence":"high"}`,
		`{"confidence":"NaN"}`,
		`{"confidence":{"v":1}}`,
		`{"confidence":[0.5]}`,
		// bare NaN and Infinity literals are not JSON
		`{"confidence": NaN}`,
		`{"confidence": Infinity}`,
		`{"confidence": -Infinity}`,
	} {
		_, err := ParseReply(raw)
		if err == nil {
			t.Fatalf("ParseReply(%q): expected error", raw)
		}
		if KindOf(err) != KindMalformedOutput {
			t.Fatalf("ParseReply(%q): kind = %v, want %v", raw, KindOf(err), KindMalformedOutput)
		}
		if err.Error() != MsgInvalidJSON {
			t.Fatalf("ParseReply(%q): message = %q", raw, err.Error())
		}
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != KindOK {
		t.Fatal("nil error must be KindOK")
	}
	if KindOf(errors.New("boom")) != KindUpstreamFailure {
		t.Fatal("foreign error must be KindUpstreamFailure")
	}
	wrapped := errors.Join(errors.New("ctx"), invalidInput())
	if KindOf(wrapped) != KindInvalidInput {
		t.Fatalf("wrapped kind = %v", KindOf(wrapped))
	}
}
