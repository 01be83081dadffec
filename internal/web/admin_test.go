package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/soumaysikchi/portfolio/internal/game"
	"github.com/soumaysikchi/portfolio/internal/store"
)

func (e *testEnv) login(username, password string) *httptest.ResponseRecorder {
	return e.loginFrom("192.0.2.1:1234", username, password)
}

func (e *testEnv) loginFrom(remote, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = remote
	return e.do(req)
}

func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	rec := e.login("admin", "hunter2")
	require.Equal(t, http.StatusFound, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == adminCookie {
			return c
		}
	}
	t.Fatal("no admin cookie set")
	return nil
}

func (e *testEnv) asAdmin(method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(cookie)
	return e.do(req)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name     string
		username string
		password string
		want     int
	}{
		{"wrong password", "admin", "nope", http.StatusUnauthorized},
		{"wrong user", "root", "hunter2", http.StatusUnauthorized},
		{"empty", "", "", http.StatusUnauthorized},
		{"valid", "admin", "hunter2", http.StatusFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.login(tt.username, tt.password)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAdminLoginPage(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.get("/admin/login")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<form")
}

func TestAdminLoginThrottled(t *testing.T) {
	env := newTestEnv(t, nil)
	codes := make([]int, 0, 6)
	for range 6 {
		codes = append(codes, env.login("admin", "wrong").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, codes[5])
}

func TestAdminLoginThrottlePerClient(t *testing.T) {
	env := newTestEnv(t, nil)
	for range 6 {
		env.loginFrom("198.51.100.7:4000", "admin", "wrong")
	}
	require.Equal(t, http.StatusTooManyRequests, env.loginFrom("198.51.100.7:4000", "admin", "wrong").Code)

	assert.Equal(t, http.StatusFound, env.loginFrom("203.0.113.9:5000", "admin", "hunter2").Code,
		"another client is not locked out")
}

func TestLoginLimiterPrunesRefilledClients(t *testing.T) {
	l := &loginLimiter{clients: make(map[string]*rate.Limiter)}
	for i := range maxLoginClient {
		l.clients[fmt.Sprint(i)] = rate.NewLimiter(rate.Every(loginEvery), loginBurst)
	}
	assert.True(t, l.allow("fresh"))
	assert.Len(t, l.clients, 1)
}

func TestAdminLoginDisabledWithoutPassword(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.Admin.Password = "" })
	assert.Equal(t, http.StatusUnauthorized, env.login("admin", "").Code)
}

func TestAdminLoginWithHash(t *testing.T) {
	hash, err := argon2id.CreateHash("s3cret", &argon2id.Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	require.NoError(t, err)
	env := newTestEnv(t, func(o *Options) { o.Admin.PasswordHash = hash })

	assert.Equal(t, http.StatusUnauthorized, env.login("admin", "hunter2").Code, "hash wins over plain password")
	assert.Equal(t, http.StatusFound, env.login("admin", "s3cret").Code)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, path := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/export/stats"} {
		rec := env.get(path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"), path)
	}

	rec := env.asAdmin(http.MethodGet, "/admin/api/stats", &http.Cookie{Name: adminCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestAdminSessionExpires(t *testing.T) {
	env := newTestEnv(t, nil)
	cookie := env.adminCookie(t)

	assert.Equal(t, http.StatusOK, env.asAdmin(http.MethodGet, "/admin/api/stats", cookie).Code)
	env.clock.Advance(2 * time.Hour)
	assert.Equal(t, http.StatusFound, env.asAdmin(http.MethodGet, "/admin/api/stats", cookie).Code)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	require.NoError(t, env.store.SaveHighScore(ctx, 90))
	require.NoError(t, env.store.RecordResult(ctx, game.Result{RunID: "r1", Score: 90, EndedAt: testStart}))
	env.get("/")

	cookie := env.adminCookie(t)
	rec := env.asAdmin(http.MethodGet, "/admin/api/stats", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats store.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats.TotalVisitors)
	assert.EqualValues(t, 1, stats.GamesPlayed)
	assert.Equal(t, 90, stats.HighScore)

	rec = env.asAdmin(http.MethodGet, "/admin/export/stats", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "admin-stats.json")

	rec = env.asAdmin(http.MethodGet, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Games played")
}

func TestAdminPrivacyCleanup(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	require.NoError(t, env.store.RecordVisit(ctx, store.Visit{HashedIP: "old", Path: "/", VisitedAt: testStart.Add(-60 * 24 * time.Hour)}))
	require.NoError(t, env.store.RecordVisit(ctx, store.Visit{HashedIP: "new", Path: "/", VisitedAt: testStart}))

	rec := env.asAdmin(http.MethodPost, "/admin/privacy/cleanup", env.adminCookie(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed": 1}`, rec.Body.String())
}

func TestAdminLogout(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.get("/admin/logout")
	assert.Equal(t, http.StatusFound, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, adminCookie, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}
