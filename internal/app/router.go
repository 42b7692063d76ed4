package app

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/solarhub/solarhub-admin/internal/auth"
	"github.com/solarhub/solarhub-admin/internal/calculator"
	"github.com/solarhub/solarhub-admin/internal/dashboard"
	"github.com/solarhub/solarhub-admin/internal/observability"
	"github.com/solarhub/solarhub-admin/internal/platform/httpx"
	"github.com/solarhub/solarhub-admin/internal/referral"
	"github.com/solarhub/solarhub-admin/internal/shared"
	"github.com/solarhub/solarhub-admin/internal/users"
	"github.com/solarhub/solarhub-admin/web"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	SessionManager    *shared.SessionManager
	CSRFManager       *shared.CSRFManager
	AuthHandler       *auth.Handler
	DashboardHandler  *dashboard.Handler
	UsersHandler      *users.Handler
	ReferralHandler   *referral.Handler
	CalculatorHandler *calculator.Handler
	Metrics           *observability.Metrics
	Health            HealthCheck
}

// NewRouter constructs the chi.Router with admin defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	// Probes and scrapes skip sessions and CSRF.
	r.Get("/healthz", healthHandler(params.Health, params.Logger))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         params.Logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Metrics:        params.Metrics,
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireLogin)
			r.Group(params.DashboardHandler.MountRoutes)
			r.Route("/users", params.UsersHandler.MountRoutes)
			r.Route("/referrals", params.ReferralHandler.MountRoutes)
			r.Route("/tools", params.CalculatorHandler.MountRoutes)
		})
	})

	return r
}

func healthHandler(check HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.Warn("health check failed", slog.Any("error", err))
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// staticCacheHandler caches embedded assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
