package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shivanand-hulikatti/hackhub/internal/handler"
	"github.com/Shivanand-hulikatti/hackhub/internal/identity"
	"github.com/Shivanand-hulikatti/hackhub/internal/logging"
	"github.com/Shivanand-hulikatti/hackhub/internal/service"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper, load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), load)
		},
	}

	flags := cmd.Flags()
	flags.String("port", "", "listen port (overrides server.port)")
	flags.String("driver", "", "storage driver: postgres, mongo or memory")
	_ = v.BindPFlag("server.port", flags.Lookup("port"))
	_ = v.BindPFlag("database.driver", flags.Lookup("driver"))
	return cmd
}

func runServe(ctx context.Context, load loader) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	logger, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	if err := cfg.RequireSecret(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── 1. Connect to storage ────────────────────────────────────────────
	st, err := openStores(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer st.close()

	// ── 2. Wire up layers ────────────────────────────────────────────────
	clock := clockwork.NewRealClock()
	router := handler.NewRouter(handler.RouterConfig{
		Hackathons:     service.NewHackathonService(st.hackathons, clock, logger, cfg.Registration.MaxAttempts),
		Feedback:       service.NewFeedbackService(st.feedback, clock, logger),
		Resolver:       identity.NewJWTResolver(cfg.Auth.JWTSecret, cfg.Auth.Issuer, clock),
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("driver", cfg.Database.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
