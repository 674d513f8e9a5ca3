package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/events"
	"github.com/dmitrijs2005/taskboard/internal/server/ratelimit"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

type stubUploader struct{}

func (stubUploader) Put(_ context.Context, key string, _ []byte) (string, error) {
	return "https://s3.local/" + key, nil
}

func newTestServer(t *testing.T, limiter ratelimit.Limiter, uploader services.Uploader) *HTTPServer {
	t.Helper()
	return newTestServerOn(t, repomanager.NewMemoryRepositoryManager(), limiter, uploader)
}

func newTestServerOn(t *testing.T, m repomanager.RepositoryManager, limiter ratelimit.Limiter, uploader services.Uploader) *HTTPServer {
	t.Helper()

	cfg := &config.Config{SecretKey: testSecret, TokenValidityDuration: time.Hour}
	pub := events.Nop{}
	log := logging.Nop{}

	transfer := services.NewTransferService(m, cfg, pub, log)
	svc := Services{
		Users:      services.NewUserService(m, cfg, pub, log),
		Categories: services.NewCategoryService(m, pub, log),
		Tasks:      services.NewTaskService(m, cfg, pub, log),
		Transfer:   transfer,
		Snapshots:  services.NewSnapshotService(m, transfer, uploader, pub, log),
	}

	return NewHTTPServer(":0", log, svc, limiter)
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), string(r.body))
}

func (r response) message(t *testing.T) string {
	t.Helper()
	var m struct {
		Message string `json:"message"`
	}
	r.decode(t, &m)
	return m.Message
}

func do(t *testing.T, s *HTTPServer, method, path, token, body string) response {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, header: resp.Header, body: b}
}

func registerUser(t *testing.T, s *HTTPServer, name string) string {
	t.Helper()
	r := do(t, s, http.MethodPost, "/api/auth/register", "",
		`{"email":"`+name+`@example.com","username":"`+name+`","fullname":"`+name+`","password":"pw"}`)
	require.Equal(t, http.StatusOK, r.status, string(r.body))

	var res struct {
		Token string `json:"token"`
	}
	r.decode(t, &res)
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t, nil, nil)

	r := do(t, s, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, r.status)
	assert.JSONEq(t, `{"status":"ok"}`, string(r.body))
	assert.NotEmpty(t, r.header.Get(common.RequestIDHeaderName))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(common.RequestIDHeaderName, "abc-123")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(common.RequestIDHeaderName))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil, nil)
	r := do(t, s, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.NotEmpty(t, r.message(t))
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, nil, nil)
	token := registerUser(t, s, "ann")

	r := do(t, s, http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, r.status)
	assert.JSONEq(t, `{"user":{"id":1,"username":"ann","email":"ann@example.com","fullname":"ann"}}`, string(r.body))

	r = do(t, s, http.MethodPost, "/api/auth/login", "", `{"email":"ann@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, r.status)
	var login struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	r.decode(t, &login)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "ann", login.User["username"])
	assert.NotContains(t, string(r.body), "password")

	r = do(t, s, http.MethodPost, "/api/auth/login", "", `{"email":"ann@example.com","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Invalid credentials", r.message(t))
}

func TestRegisterErrors(t *testing.T) {
	s := newTestServer(t, nil, nil)
	registerUser(t, s, "ann")

	r := do(t, s, http.MethodPost, "/api/auth/register", "",
		`{"email":"ann@example.com","username":"other","fullname":"x","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Email already exists", r.message(t))

	r = do(t, s, http.MethodPost, "/api/auth/register", "",
		`{"email":"other@example.com","username":"ann","fullname":"x","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Username already exists", r.message(t))

	r = do(t, s, http.MethodPost, "/api/auth/register", "", `{"email":"not-an-email","username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, r.status)
	var body errorResponse
	r.decode(t, &body)
	assert.Equal(t, "Invalid data", body.Message)
	assert.NotEmpty(t, body.Errors)
}

func TestMeFailures(t *testing.T) {
	s := newTestServer(t, nil, nil)

	r := do(t, s, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Not authenticated", r.message(t))

	r = do(t, s, http.MethodGet, "/api/auth/me", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Invalid token", r.message(t))

	orphan, err := auth.GenerateToken(99, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	r = do(t, s, http.MethodGet, "/api/auth/me", orphan, "")
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "User not found", r.message(t))
}

func TestRequireAuth(t *testing.T) {
	s := newTestServer(t, nil, nil)

	r := do(t, s, http.MethodGet, "/api/categories", "", "")
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Authentication required", r.message(t))

	r = do(t, s, http.MethodGet, "/api/tasks", "bad.token.value", "")
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Invalid token", r.message(t))

	expired, err := auth.GenerateToken(1, []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	r = do(t, s, http.MethodGet, "/api/tasks", expired, "")
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Token expired", r.message(t))

	// a valid signature for an account that does not exist must not reach the handlers
	orphan, err := auth.GenerateToken(999, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	r = do(t, s, http.MethodPost, "/api/categories", orphan, `{"name":"Orphan"}`)
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "User not found", r.message(t))

	left, err := s.services.Categories.List(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, left, "the rejected write left nothing behind")
}

func TestRateLimit(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	s := newTestServer(t, limiter, nil)

	r := do(t, s, http.MethodPost, "/api/auth/login", "", `{"email":"a@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusTooManyRequests, r.status)
	require.Len(t, limiter.keys, 1)
	assert.True(t, strings.HasPrefix(limiter.keys[0], "login:"))

	limiter.err = errors.New("redis down")
	r = do(t, s, http.MethodPost, "/api/auth/login", "", `{"email":"a@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, r.status, "limiter failures let the request through")
}
