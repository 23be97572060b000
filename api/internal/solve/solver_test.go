package solve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const fakeImage = "data:image/jpeg;base64,/9j/4AAQSkZJRg=="

type fakeEngine struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []CompletionRequest
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-model" }

func (f *fakeEngine) Complete(_ context.Context, in CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	return f.reply, f.err
}

func (f *fakeEngine) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type memJournal struct {
	mu   sync.Mutex
	recs []Record
	err  error
}

func (j *memJournal) Record(_ context.Context, rec Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.recs = append(j.recs, rec)
	return j.err
}

func TestSolveRejectsNonImageWithoutCallingEngine(t *testing.T) {
	eng := &fakeEngine{reply: `{"answer":"x"}`}
	s := New(eng, DefaultOptions())

	for _, in := range []string{"", "not-a-data-url", "data:text/plain;base64,aGk=", "DATA:IMAGE/png;base64,AA==", "https://example.com/a.png"} {
		_, err := s.Solve(context.Background(), in)
		if KindOf(err) != KindInvalidInput {
			t.Fatalf("Solve(%q): kind = %v, want %v", in, KindOf(err), KindInvalidInput)
		}
		if err.Error() != MsgInvalidImage {
			t.Fatalf("Solve(%q): message = %q", in, err.Error())
		}
	}
	if n := eng.callCount(); n != 0 {
		t.Fatalf("engine called %d times for invalid input", n)
	}
}

func TestSolveSendsFixedPromptAndLimits(t *testing.T) {
	eng := &fakeEngine{reply: `{"answer":"15","confidence":0.95,"rationale":"Pattern increases by 3"}`}
	s := New(eng, DefaultOptions())

	res, err := s.Solve(context.Background(), fakeImage)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Answer != "15" || res.Confidence != 0.95 || !strings.Contains(res.Rationale, "3") {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(eng.calls) != 1 {
		t.Fatalf("engine calls = %d, want 1", len(eng.calls))
	}
	call := eng.calls[0]
	if call.SystemPrompt != DefaultSystemPrompt {
		t.Fatalf("system prompt = %q", call.SystemPrompt)
	}
	if call.ImageDataURL != fakeImage {
		t.Fatalf("image = %q", call.ImageDataURL)
	}
	if call.MaxTokens != 300 || call.Temperature != 0.2 {
		t.Fatalf("limits = %d/%v, want 300/0.2", call.MaxTokens, call.Temperature)
	}
}

func TestSolveUpstreamFailurePassesMessage(t *testing.T) {
	eng := &fakeEngine{err: errors.New("API down")}
	_, err := New(eng, DefaultOptions()).Solve(context.Background(), fakeImage)
	if KindOf(err) != KindUpstreamFailure {
		t.Fatalf("kind = %v, want %v", KindOf(err), KindUpstreamFailure)
	}
	if err.Error() != "API down" {
		t.Fatalf("message = %q, want %q", err.Error(), "API down")
	}
}

func TestSolveMalformedReply(t *testing.T) {
	eng := &fakeEngine{reply: "This is not JSON at all"}
	_, err := New(eng, DefaultOptions()).Solve(context.Background(), fakeImage)
	if KindOf(err) != KindMalformedOutput {
		t.Fatalf("kind = %v, want %v", KindOf(err), KindMalformedOutput)
	}
}

func TestSolvePromptOverride(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "fake", "prompt")
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(p, PromptName+".system.txt"), []byte("answer in JSON please"), 0o644); err != nil {
		t.Fatal(err)
	}

	eng := &fakeEngine{reply: `{"answer":"ok","confidence":1}`}
	opts := DefaultOptions()
	opts.PromptDir = dir
	if _, err := New(eng, opts).Solve(context.Background(), fakeImage); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := eng.calls[0].SystemPrompt; got != "answer in JSON please" {
		t.Fatalf("system prompt = %q", got)
	}
}

func TestSolveJournalsEveryOutcome(t *testing.T) {
	j := &memJournal{err: errors.New("db gone")}
	eng := &fakeEngine{reply: `{"answer":"a","confidence":0.3}`}
	s := New(eng, DefaultOptions()).WithJournal(j)

	ctx := WithRequestID(context.Background(), "req-1")
	if _, err := s.Solve(ctx, fakeImage); err != nil {
		t.Fatalf("journal failure leaked into result: %v", err)
	}
	_, _ = s.Solve(ctx, "nope")

	if len(j.recs) != 2 {
		t.Fatalf("journal records = %d, want 2", len(j.recs))
	}
	ok := j.recs[0]
	if ok.RequestID != "req-1" || ok.Outcome != KindOK || ok.Result.Answer != "a" || ok.Engine != "fake" || ok.Model != "fake-model" {
		t.Fatalf("unexpected record %+v", ok)
	}
	if len(ok.ImageHash) != 64 {
		t.Fatalf("image hash = %q", ok.ImageHash)
	}
	if bad := j.recs[1]; bad.Outcome != KindInvalidInput || bad.Error != MsgInvalidImage {
		t.Fatalf("unexpected record %+v", bad)
	}
}

func TestSolveConcurrentCallsAreIndependent(t *testing.T) {
	eng := &fakeEngine{reply: "```json\n{\"answer\":\"42\",\"confidence\":0.8,\"rationale\":\"Computed\"}\n```"}
	s := New(eng, DefaultOptions())

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Solve(context.Background(), fakeImage)
			if err != nil {
				errs <- err
				return
			}
			if res.Answer != "42" {
				errs <- errors.New("answer mismatch: " + res.Answer)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
	if n := eng.callCount(); n != 16 {
		t.Fatalf("engine calls = %d, want 16", n)
	}
}

func TestEnginesGetEngine(t *testing.T) {
	gpt := &fakeEngine{}
	engs := &Engines{OpenAI: gpt}
	for _, name := range []string{"", "gpt", "openai", " GPT "} {
		e, err := engs.GetEngine(name)
		if err != nil || e != gpt {
			t.Fatalf("GetEngine(%q) = %v, %v", name, e, err)
		}
	}
	if _, err := engs.GetEngine("gemini"); err == nil {
		t.Fatal("expected error for unconfigured gemini")
	}
	if _, err := engs.GetEngine("claude"); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}
