package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"planets-catalog/internal/app"
	"planets-catalog/internal/middleware"
	"planets-catalog/internal/server"
	"planets-catalog/internal/shared/config"
	"planets-catalog/internal/shared/cookies"
	"planets-catalog/internal/shared/logger"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Init()

	if err := run(config.GlobalConfig); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := slog.With("component", "server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("Failed to release resources", "error", err)
		}
	}()

	applied, err := application.Migrate(ctx)
	if err != nil {
		return err
	}
	logger.Info("Migrations completed", "applied", applied)

	cookieOpts := cookies.Options{
		FrontendURL: cfg.Frontend.URL,
		Secure:      cfg.Auth.CookieSecure,
		SameSite:    cfg.Auth.CookieSameSite,
	}
	routes := server.NewRoutes(application.Service, application.Tokens, cookieOpts, application.Dependencies()...)
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Close()
	cors := middleware.NewCORS(cfg.Frontend)

	handler := middleware.RequestID(cors.Middleware(rateLimiter.Middleware(mux)))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Planets catalog server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"storage", cfg.Database.Backend,
		)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received, draining connections", "timeout", cfg.Server.ShutdownTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}
