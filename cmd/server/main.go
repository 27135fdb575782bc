package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vedran77/messagely/internal/auth"
	"github.com/vedran77/messagely/internal/config"
	"github.com/vedran77/messagely/internal/database"
	"github.com/vedran77/messagely/internal/metrics"
	postgresrepo "github.com/vedran77/messagely/internal/repository/postgres"
	"github.com/vedran77/messagely/internal/security/password"
	"github.com/vedran77/messagely/internal/service"
	"github.com/vedran77/messagely/internal/transport/http/handlers"
	"github.com/vedran77/messagely/internal/transport/http/router"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := config.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("connected to database")

	if cfg.BootstrapSchema {
		if err := database.ApplySchema(ctx, pool); err != nil {
			return err
		}
		log.Info("schema applied")
	}

	hasher, err := password.New(cfg.Password)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return err
	}
	recorder := metrics.New()

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Services
	identityService, err := service.NewIdentityService(userRepo, hasher)
	if err != nil {
		return err
	}
	messageService := service.NewMessageService(messageRepo)
	authService := service.NewAuthService(identityService, tokens, recorder)

	// Handlers
	handler := router.New(ctx, router.Deps{
		Auth:     handlers.NewAuthHandler(authService, log),
		Users:    handlers.NewUserHandler(identityService, messageService, log),
		Tokens:   tokens,
		Metrics:  recorder.Handler(),
		Log:      log,
		CORS:     cfg.CORSOrigins,
		LimitRPS: cfg.RateLimitRPS,
		Burst:    cfg.RateLimitBurst,

		TrustProxy: cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "password_algorithm", cfg.Password.Algorithm)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
