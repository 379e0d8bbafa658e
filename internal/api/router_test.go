package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/playverse/gamestore/internal/api/handler"
	"github.com/playverse/gamestore/internal/api/middleware"
	"github.com/playverse/gamestore/internal/core/access"
	"github.com/playverse/gamestore/internal/core/domain"
	redisstore "github.com/playverse/gamestore/internal/infrastructure/db/redis"
)

const testSessionCookie = "playverse_session"

type tokenSessions struct {
	principals map[string]*domain.Principal
}

func (s *tokenSessions) Issue(user *domain.User) (string, *domain.Principal, error) {
	p := &domain.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}
	s.principals[user.ID] = p
	return user.ID, p, nil
}

func (s *tokenSessions) Resolve(_ context.Context, token string) (*domain.Principal, error) {
	if p, ok := s.principals[token]; ok {
		return p, nil
	}
	return nil, domain.ErrPermissionDenied
}

func (s *tokenSessions) Revoke(context.Context, *domain.Principal) error { return nil }

type unknownTokens struct{}

func (unknownTokens) Validate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrTokenNotFound
}

func (unknownTokens) Consume(context.Context, string, string) error { return domain.ErrTokenNotFound }

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := zerolog.Nop()
	flashes := middleware.NewFlashes(redisstore.NewFlashStore(rdb, time.Minute), false, log)
	sessions := middleware.NewSessions(&tokenSessions{principals: map[string]*domain.Principal{
		"client-1": {UserID: "client-1", Username: "ana", Role: domain.RoleClient},
		"admin-1":  {UserID: "admin-1", Username: "root", Role: domain.RoleAdmin},
	}}, testSessionCookie, false, log)

	deps := Dependencies{
		Sessions:     sessions,
		Flashes:      flashes,
		Policy:       access.NewPolicy(access.DefaultConfig()),
		Auth:         handler.NewAuthHandler(nil, sessions, flashes),
		Reset:        handler.NewPasswordResetHandler(nil, unknownTokens{}, flashes, ""),
		Pages:        handler.NewPageHandler(nil, nil, flashes),
		Games:        handler.NewGameHandler(nil, flashes),
		Carts:        handler.NewCartHandler(nil, flashes),
		Reservations: handler.NewReservationHandler(nil, flashes),
		Health:       handler.NewHealthHandler(),
	}
	reg := prometheus.NewRegistry()
	e := NewServer(deps, Options{Log: log, Registerer: reg, Gatherer: reg})
	return &testServer{t: t, handler: e}
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func (s *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestServer_AnonymousAdminRedirectsToLoginWithFlash(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.get("/administracion/")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login/", rec.Header().Get("Location"))

	flash := cookieNamed(rec, "playverse_flash")
	require.NotNil(t, flash)

	rec = srv.get("/login/", flash)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), access.MsgSignInRequired)

	// Messages are shown once.
	rec = srv.get("/login/", flash)
	require.NotContains(t, rec.Body.String(), access.MsgSignInRequired)
}

func TestServer_RoleStages(t *testing.T) {
	srv := newTestServer(t)
	client := &http.Cookie{Name: testSessionCookie, Value: "client-1"}
	admin := &http.Cookie{Name: testSessionCookie, Value: "admin-1"}

	rec := srv.get("/juegos/", client)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	rec = srv.get("/carrito/", admin)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestServer_ResetConfirmIsPublic(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.get("/password-reset/confirm/not-a-token/")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/password-reset/", rec.Header().Get("Location"))
}

func TestServer_TrailingSlashAndProbes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.get("/login")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/login/", rec.Header().Get("Location"))

	rec = srv.get("/health")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}

func TestServer_StaleSessionCookieIsCleared(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.get("/login/", &http.Cookie{Name: testSessionCookie, Value: "forged"})
	require.Equal(t, http.StatusOK, rec.Code)
	ck := cookieNamed(rec, testSessionCookie)
	require.NotNil(t, ck)
	require.True(t, ck.MaxAge < 0)
}
