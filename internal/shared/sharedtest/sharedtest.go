// Package sharedtest provides session fixtures for handler tests.
package sharedtest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/solarhub/solarhub-admin/internal/shared"
)

// CookieName is the session cookie used by the fixtures.
const CookieName = "test_session"

// Sessions returns a session manager backed by an in-memory Redis.
func Sessions(t testing.TB) *shared.SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return shared.NewSessionManager(client, CookieName, "session-secret", time.Hour, false)
}

// Serve loads the session for req, runs h under it and commits the result.
// Cookies set by the response are copied onto the returned recorder.
func Serve(t testing.TB, sm *shared.SessionManager, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	ctx := shared.ContextWithSession(req.Context(), sess)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	require.NoError(t, sm.Commit(ctx, rec, sess))
	return rec, sess
}

// SignedIn returns a session cookie for an admin carrying token.
func SignedIn(t testing.TB, sm *shared.SessionManager, token string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	sess.SignIn("ada@solarhub.test", "Ada Obi", token)
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(context.Background(), rec, sess))
	return SessionCookie(t, rec)
}

// SessionCookie extracts the session cookie from a response.
func SessionCookie(t testing.TB, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("response carries no %s cookie", CookieName)
	return nil
}
