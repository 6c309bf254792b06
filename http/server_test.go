package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/sitechat"
	sitechathttp "github.com/fwojciec/sitechat/http"
	"github.com/fwojciec/sitechat/mock"
)

// newServer returns a Server wired with permissive defaults. Tests override
// the dependency fields they care about.
func newServer(tb testing.TB) *sitechathttp.Server {
	tb.Helper()
	s := sitechathttp.NewServer()
	s.BaseURL = "https://chat.example.com"
	s.SessionSecret = []byte("test-secret")
	s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Limiter = &mock.Limiter{}
	return s
}

// loginAs wires a UserService for the given user, performs a login request
// and returns the resulting session cookie.
func loginAs(tb testing.TB, s *sitechathttp.Server, user *sitechat.User) *http.Cookie {
	tb.Helper()

	s.Users = &mock.UserService{
		AuthenticateFn: func(ctx context.Context, email, password string) (*sitechat.User, error) {
			return user, nil
		},
		FindUserByIDFn: func(ctx context.Context, id string) (*sitechat.User, error) {
			if id != user.ID {
				return nil, sitechat.Errorf(sitechat.ENOTFOUND, "User not found")
			}
			return user, nil
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", jsonBody(tb, map[string]string{
		"email":    user.Email,
		"password": "secret",
	}))
	s.ServeHTTP(w, r)
	require.Equal(tb, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "sitechat_session" {
			return cookie
		}
	}
	tb.Fatal("no session cookie issued")
	return nil
}

func jsonBody(tb testing.TB, v any) io.Reader {
	tb.Helper()
	data, err := json.Marshal(v)
	require.NoError(tb, err)
	return bytes.NewReader(data)
}

func decodeResponse(tb testing.TB, w *httptest.ResponseRecorder) map[string]any {
	tb.Helper()
	var body map[string]any
	require.NoError(tb, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	s := newServer(t)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeResponse(t, w)["status"])
}

func TestServer_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code   string
		status int
	}{
		{sitechat.EINVALID, http.StatusBadRequest},
		{sitechat.EUNAUTHORIZED, http.StatusUnauthorized},
		{sitechat.ENOTFOUND, http.StatusNotFound},
		{sitechat.ECONFLICT, http.StatusConflict},
		{sitechat.ERATELIMIT, http.StatusTooManyRequests},
		{sitechat.EUNAVAILABLE, http.StatusServiceUnavailable},
		{sitechat.EINTERNAL, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.status, sitechathttp.ErrorStatusCode(tt.code))
		})
	}
}

func TestServer_InternalErrorsAreOpaque(t *testing.T) {
	t.Parallel()

	s := newServer(t)
	s.Responder = &mock.Responder{
		RespondFn: func(ctx context.Context, key, input string) (string, error) {
			return "", sitechat.Errorf(sitechat.EINTERNAL, "sqlite: disk I/O error")
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat", jsonBody(t, map[string]string{
		"input":   "hello",
		"api_key": "user_abc",
	}))
	s.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An internal error has occurred.", decodeResponse(t, w)["error"])
}

func TestServer_RateLimitIdentityFromForwardedFor(t *testing.T) {
	t.Parallel()

	var identity string
	s := newServer(t)
	s.Limiter = &mock.Limiter{
		AllowFn: func(id string, op sitechat.Operation) bool {
			identity = id
			return false
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat", jsonBody(t, map[string]string{
		"input":   "hello",
		"api_key": "user_abc",
	}))
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	s.ServeHTTP(w, r)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "203.0.113.9", identity)
}
