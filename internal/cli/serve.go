package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/weijenchou/dogdietlinebot/internal/adapters/auth/jwt"
	"github.com/weijenchou/dogdietlinebot/internal/config"
	"github.com/weijenchou/dogdietlinebot/internal/domain/conversation"
	"github.com/weijenchou/dogdietlinebot/internal/router"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (profiles, intake and chat turns)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if port != "" {
				a.cfg.Port = port
			}
			return runServe(ctx, a)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	opts := router.Options{
		Pets:          a.pets,
		Machine:       a.machine,
		Locks:         a.locks,
		Breeds:        a.breeds,
		WebhookSecret: a.cfg.WebhookSecret,
		MaxImageBytes: conversation.DefaultMaxImageBytes,
		Log:           a.log,
	}
	if a.cfg.JWTSecret != "" {
		if a.cfg.WebhookSecret == "" {
			return fmt.Errorf("%w: WEBHOOK_SECRET is required when JWT_SECRET is set", config.ErrInvalid)
		}
		v, err := jwt.NewVerifier(jwt.Config{Secret: a.cfg.JWTSecret, Leeway: 30 * time.Second})
		if err != nil {
			return err
		}
		opts.AuthVerifier = v
	} else {
		a.log.Warn("auth disabled, debug owner header accepted", map[string]any{})
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go conversation.RunJanitor(ctx, a.sessions, a.cfg.JanitorInterval(), a.log)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", map[string]any{"addr": srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.log.Info("shutting down", map[string]any{})
	return srv.Shutdown(shutdownCtx)
}
