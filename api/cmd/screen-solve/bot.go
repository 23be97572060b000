package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"screen-solve/api/internal/telegram"
)

func newBotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot front-end (long polling)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.TelegramBotToken == "" {
				return errors.New("TELEGRAM_BOT_TOKEN is empty")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			solver, closeJournal, err := a.newSolver(ctx)
			if err != nil {
				return err
			}
			defer closeJournal()

			bot, err := tgbotapi.NewBotAPI(a.cfg.TelegramBotToken)
			if err != nil {
				return err
			}
			slog.Info("telegram bot authorized", "username", bot.Self.UserName)

			return telegram.NewRouter(bot, solver, a.keyConfigured, a.cfg.Timeout).Run(ctx)
		},
	}
}
