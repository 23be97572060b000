package telegram

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"screen-solve/api/internal/solve"
	"screen-solve/api/internal/util"
)

const maxMessageLen = 3900

// Router answers Telegram updates with the same Solver the HTTP API uses.
type Router struct {
	Bot    *tgbotapi.BotAPI
	Solver *solve.Solver
	// KeyConfigured reports whether the engine credential is present; read on every /health.
	KeyConfigured func() bool
	Timeout       time.Duration

	// fileEndpoint is a tgbotapi.FileEndpoint style format: token, file path.
	fileEndpoint string
	httpc        *http.Client
	log          *slog.Logger
}

func NewRouter(bot *tgbotapi.BotAPI, solver *solve.Solver, keyConfigured func() bool, timeout time.Duration) *Router {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Router{
		Bot:           bot,
		Solver:        solver,
		KeyConfigured: keyConfigured,
		Timeout:       timeout,
		fileEndpoint:  tgbotapi.FileEndpoint,
		httpc:         &http.Client{Timeout: 60 * time.Second},
		log:           slog.Default().With("module", "telegram"),
	}
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}
	cid := msg.Chat.ID

	switch {
	case msg.IsCommand():
		r.HandleCommand(cid, msg.Command())
	case len(msg.Photo) > 0:
		// last size is the largest
		r.acceptImage(ctx, cid, msg.Photo[len(msg.Photo)-1].FileID)
	case msg.Document != nil:
		r.acceptImage(ctx, cid, msg.Document.FileID)
	case msg.Text != "":
		r.send(cid, usageText)
	}
}

const usageText = "Send a screenshot of the question and I will answer it.\nCommands: /health"

func (r *Router) HandleCommand(cid int64, cmd string) {
	switch cmd {
	case "start", "help":
		r.send(cid, usageText)
	case "health":
		configured := r.KeyConfigured != nil && r.KeyConfigured()
		eng := r.Solver.Engine()
		r.send(cid, formatHealth(eng.Name(), eng.GetModel(), configured))
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) send(chatID int64, text string) {
	text = util.Truncate(text, maxMessageLen)
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Warn("send failed", "chat_id", chatID, "error", err)
	}
}
