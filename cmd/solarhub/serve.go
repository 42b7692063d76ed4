package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/solarhub/solarhub-admin/internal/app"
	"github.com/solarhub/solarhub-admin/internal/auth"
	"github.com/solarhub/solarhub-admin/internal/backend"
	"github.com/solarhub/solarhub-admin/internal/calculator"
	"github.com/solarhub/solarhub-admin/internal/dashboard"
	"github.com/solarhub/solarhub-admin/internal/observability"
	"github.com/solarhub/solarhub-admin/internal/platform/cache"
	"github.com/solarhub/solarhub-admin/internal/referral"
	"github.com/solarhub/solarhub-admin/internal/shared"
	"github.com/solarhub/solarhub-admin/internal/users"
	"github.com/solarhub/solarhub-admin/internal/view"
)

const sessionCookieName = "solarhub_session"

func serve(parent context.Context) error {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return nil
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, sessionCookieName, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		return err
	}
	catalog, err := calculator.LoadCatalog()
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, backend.WithRecorder(metrics))

	userService := users.NewService(users.NewSampleRepository(), nil)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionManager:    sessionManager,
		CSRFManager:       csrfManager,
		AuthHandler:       auth.NewHandler(logger, auth.NewService(client), templates, sessionManager, csrfManager),
		DashboardHandler:  dashboard.NewHandler(logger, userService, templates, csrfManager),
		UsersHandler:      users.NewHandler(logger, userService, templates, csrfManager),
		ReferralHandler:   referral.NewHandler(logger, referral.NewService(client), templates, csrfManager, cfg.ReferralPageSize),
		CalculatorHandler: calculator.NewHandler(logger, catalog, templates, csrfManager),
		Metrics:           metrics,
		Health: func(ctx context.Context) error {
			return cache.Ping(ctx, redisClient)
		},
	})

	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: cfg.AppReadTimeout,
		WriteTimeout:      cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("backend", cfg.BackendBaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	default:
		return nil
	}
}
