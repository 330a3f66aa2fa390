package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nhle/taskbot/internal/app"
	"github.com/nhle/taskbot/internal/bot"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chat bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withContainer(opts, cfg, func(c *app.Container) error {
				tg, err := bot.NewTelegram(cfg.Telegram.Token, cfg.Telegram.PollTimeoutSec)
				if err != nil {
					return err
				}
				h, err := c.Handler(tg)
				if err != nil {
					return err
				}

				if cfg.Sync.IntervalSec > 0 {
					syncer, err := c.Syncer()
					if err != nil {
						return err
					}
					syncer.Start(ctx)
					defer syncer.Stop()
				}

				slog.InfoContext(ctx, "bot started", "project", cfg.Jira.ProjectKey)
				if err := tg.Run(ctx, h); err != nil {
					return fmt.Errorf("running bot: %w", err)
				}
				slog.InfoContext(context.WithoutCancel(ctx), "bot stopped")
				return nil
			})
		},
	}
}
