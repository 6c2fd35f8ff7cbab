package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weijenchou/dogdietlinebot/internal/adapters/chat/telegram"
	"github.com/weijenchou/dogdietlinebot/internal/domain/conversation"
	"github.com/weijenchou/dogdietlinebot/internal/platform/logger"
)

func newTelegramCmd() *cobra.Command {
	var pollTimeout int

	cmd := &cobra.Command{
		Use:   "telegram",
		Short: "Run the assistant as a Telegram bot (long polling)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			bot, err := telegram.New(telegram.Config{
				Token:         a.cfg.TelegramBotToken,
				PollTimeout:   pollTimeout,
				MaxImageBytes: conversation.DefaultMaxImageBytes,
				Debug:         logger.ParseLevel(a.cfg.LogLevel) == logger.Debug,
			}, a.machine, a.log)
			if err != nil {
				return err
			}

			go conversation.RunJanitor(ctx, a.sessions, a.cfg.JanitorInterval(), a.log)
			return bot.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&pollTimeout, "poll-timeout", 60, "long polling timeout in seconds")
	return cmd
}
