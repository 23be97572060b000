package solve

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"screen-solve/api/internal/solve/types"
	"screen-solve/api/internal/util"
)

// Options tune the completion call.
type Options struct {
	MaxTokens   int
	Temperature float32
	// PromptDir holds optional <provider>/prompt/solve.system.txt overrides.
	PromptDir string
}

func DefaultOptions() Options {
	return Options{MaxTokens: 300, Temperature: 0.2}
}

// Record describes one finished solve for the journal.
type Record struct {
	RequestID  string
	ImageHash  string
	ImageBytes int
	Engine     string
	Model      string
	Outcome    Kind
	Result     types.SolveResult
	Error      string
	Latency    time.Duration
	CreatedAt  time.Time
}

// Journal persists finished solves. It is write-only: nothing is read back.
type Journal interface {
	Record(ctx context.Context, rec Record) error
}

// Solver validates the image reference, calls the engine and normalizes the reply.
// It holds no per-request state and is safe for concurrent use.
type Solver struct {
	engine  Engine
	opts    Options
	journal Journal
	log     *slog.Logger
}

func New(engine Engine, opts Options) *Solver {
	def := DefaultOptions()
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = def.MaxTokens
	}
	if opts.Temperature < 0 {
		opts.Temperature = def.Temperature
	}
	return &Solver{
		engine: engine,
		opts:   opts,
		log:    slog.Default().With("module", "solve"),
	}
}

// WithJournal attaches an optional journal.
func (s *Solver) WithJournal(j Journal) *Solver {
	s.journal = j
	return s
}

// WithLogger overrides the logger.
func (s *Solver) WithLogger(l *slog.Logger) *Solver {
	if l != nil {
		s.log = l.With("module", "solve")
	}
	return s
}

func (s *Solver) Engine() Engine { return s.engine }

// Solve runs the full pipeline for one image. The returned error, if any, is a *Error.
func (s *Solver) Solve(ctx context.Context, imageDataURL string) (types.SolveResult, error) {
	start := time.Now()
	res, err := s.solve(ctx, imageDataURL)
	s.finish(ctx, imageDataURL, res, err, time.Since(start))
	return res, err
}

func (s *Solver) solve(ctx context.Context, imageDataURL string) (types.SolveResult, error) {
	if !util.IsImageDataURL(imageDataURL) {
		return types.SolveResult{}, invalidInput()
	}

	system, err := util.LoadSystemPrompt(s.opts.PromptDir, PromptName, s.engine.Name())
	if err != nil {
		s.log.WarnContext(ctx, "prompt override unreadable, using built-in", "error", err)
	}
	if system == "" {
		system = DefaultSystemPrompt
	}

	raw, err := s.engine.Complete(ctx, CompletionRequest{
		SystemPrompt: system,
		ImageDataURL: imageDataURL,
		MaxTokens:    s.opts.MaxTokens,
		Temperature:  s.opts.Temperature,
	})
	if err != nil {
		return types.SolveResult{}, upstreamFailure(err)
	}

	return ParseReply(raw)
}

func (s *Solver) finish(ctx context.Context, imageDataURL string, res types.SolveResult, err error, took time.Duration) {
	kind := KindOf(err)
	fields := []any{
		"request_id", RequestIDFrom(ctx),
		"engine", s.engine.Name(),
		"model", s.engine.GetModel(),
		"outcome", kind.String(),
		"latency_ms", took.Milliseconds(),
	}
	switch kind {
	case KindOK:
		s.log.InfoContext(ctx, "solve finished", append(fields, "confidence", res.Confidence)...)
	case KindInvalidInput:
		s.log.WarnContext(ctx, "solve rejected", fields...)
	default:
		fields = append(fields, "error", err.Error())
		if se, ok := err.(*Error); ok && se.Err != nil && se.Err.Error() != se.Msg {
			fields = append(fields, "cause", se.Err.Error())
		}
		s.log.ErrorContext(ctx, "solve failed", fields...)
	}

	if s.journal == nil {
		return
	}
	rec := Record{
		RequestID:  RequestIDFrom(ctx),
		ImageHash:  hashImage(imageDataURL),
		ImageBytes: len(imageDataURL),
		Engine:     s.engine.Name(),
		Model:      s.engine.GetModel(),
		Outcome:    kind,
		Result:     res,
		Latency:    took,
		CreatedAt:  time.Now().UTC(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	// detached from request cancellation so a client disconnect still gets journaled
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if jerr := s.journal.Record(jctx, rec); jerr != nil {
		s.log.WarnContext(ctx, "journal write failed", "request_id", rec.RequestID, "error", jerr)
	}
}

func hashImage(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
