package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarhub/solarhub-admin/internal/app"
	"github.com/solarhub/solarhub-admin/internal/auth"
	"github.com/solarhub/solarhub-admin/internal/backend"
	"github.com/solarhub/solarhub-admin/internal/calculator"
	"github.com/solarhub/solarhub-admin/internal/dashboard"
	"github.com/solarhub/solarhub-admin/internal/observability"
	"github.com/solarhub/solarhub-admin/internal/referral"
	"github.com/solarhub/solarhub-admin/internal/shared"
	"github.com/solarhub/solarhub-admin/internal/shared/sharedtest"
	"github.com/solarhub/solarhub-admin/internal/users"
	"github.com/solarhub/solarhub-admin/internal/view"
	_ "github.com/solarhub/solarhub-admin/testing"
)

var csrfMeta = regexp.MustCompile(`<meta name="csrf-token" content="([^"]+)">`)

type routerFixture struct {
	handler  http.Handler
	sessions *shared.SessionManager
}

func newRouter(t testing.TB, health app.HealthCheck) routerFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &app.Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second, ReferralPageSize: 10, RateLimitPerMinute: 120}
	sessions := sharedtest.Sessions(t)
	csrf := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine()
	require.NoError(t, err)
	catalog, err := calculator.LoadCatalog()
	require.NoError(t, err)
	metrics := observability.NewMetrics()
	client := backend.NewClient("http://127.0.0.1:0", time.Second, backend.WithRecorder(metrics))
	userService := users.NewService(users.NewSampleRepository(), nil)

	handler := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionManager:    sessions,
		CSRFManager:       csrf,
		AuthHandler:       auth.NewHandler(logger, auth.NewService(client), templates, sessions, csrf),
		DashboardHandler:  dashboard.NewHandler(logger, userService, templates, csrf),
		UsersHandler:      users.NewHandler(logger, userService, templates, csrf),
		ReferralHandler:   referral.NewHandler(logger, referral.NewService(client), templates, csrf, cfg.ReferralPageSize),
		CalculatorHandler: calculator.NewHandler(logger, catalog, templates, csrf),
		Metrics:           metrics,
		Health:            health,
	})
	return routerFixture{handler: handler, sessions: sessions}
}

func (f routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	f := newRouter(t, func(context.Context) error { return nil })
	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	f = newRouter(t, func(context.Context) error { return errors.New("redis down") })
	rec = f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}

func TestAnonymousRedirectsToLogin(t *testing.T) {
	f := newRouter(t, nil)
	for _, path := range []string{"/", "/users", "/referrals", "/tools/inverter"} {
		rec := f.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, auth.LoginPath, rec.Header().Get("Location"), path)
	}
}

func TestLoginPageSetsSecurityHeaders(t *testing.T) {
	f := newRouter(t, nil)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
	assert.Regexp(t, csrfMeta, rec.Body.String())
}

func TestPostWithoutCSRFTokenIsForbidden(t *testing.T) {
	f := newRouter(t, nil)
	cookie := sharedtest.SignedIn(t, f.sessions, "token-1")
	req := httptest.NewRequest(http.MethodPost, "/tools/inverter/reset", nil)
	req.AddCookie(cookie)
	rec := f.do(req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCalculatorRoundTripThroughRouter(t *testing.T) {
	f := newRouter(t, nil)
	cookie := sharedtest.SignedIn(t, f.sessions, "token-1")

	req := httptest.NewRequest(http.MethodGet, "/tools/inverter", nil)
	req.AddCookie(cookie)
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Inverter Load Calculator")
	match := csrfMeta.FindStringSubmatch(rec.Body.String())
	require.Len(t, match, 2)

	form := url.Values{"room": {"kitchen"}, shared.CSRFFormField: {match[1]}}
	req = httptest.NewRequest(http.MethodPost, "/tools/inverter/room", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec = f.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tools/inverter", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodPost, "/tools/inverter/summary", strings.NewReader(`{"items":[{"id":"1","wattage":250,"quantity":2}]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(shared.CSRFHeader, match[1])
	req.AddCookie(cookie)
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_load":500,"inverter_rating":600}`, rec.Body.String())
}

func TestStaticAssetsAreCached(t *testing.T) {
	f := newRouter(t, nil)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newRouter(t, nil)
	f.do(httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "solarhub_http_requests_total")
}

func BenchmarkWorksheetPage(b *testing.B) {
	f := newRouter(b, nil)
	cookie := sharedtest.SignedIn(b, f.sessions, "token-1")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/tools/solar", nil)
		req.AddCookie(cookie)
		if rec := f.do(req); rec.Code != http.StatusOK {
			b.Fatalf("status %d", rec.Code)
		}
	}
}
