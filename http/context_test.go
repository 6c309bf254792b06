package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/chat"
	"github.com/fwojciec/sitechat/mem"
	"github.com/fwojciec/sitechat/mock"
)

func TestProcessURL(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		s := newServer(t)
		cookie := loginAs(t, s, &sitechat.User{ID: "u1", Email: "owner@example.com"})
		s.Ingestor = &mock.Ingestor{
			IngestFn: func(ctx context.Context, userID, url string) (*sitechat.Ingestion, error) {
				assert.Equal(t, "u1", userID)
				assert.Equal(t, "https://example.com/docs", url)
				return &sitechat.Ingestion{Key: "user_deadbeef", SourceURL: url}, nil
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/process_url", jsonBody(t, map[string]string{
			"url": "https://example.com/docs",
		}))
		r.AddCookie(cookie)
		s.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeResponse(t, w)
		assert.Equal(t, "Processing complete", body["message"])
		assert.Equal(t, "user_deadbeef", body["api_key"])
		assert.Contains(t, body["integration_code"], `<script src="https://chat.example.com/chatbot.js?api_key=user_deadbeef"></script>`)
	})

	t.Run("RequiresSession", func(t *testing.T) {
		t.Parallel()

		s := newServer(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/process_url", jsonBody(t, map[string]string{
			"url": "https://example.com",
		}))
		s.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingURL", func(t *testing.T) {
		t.Parallel()

		s := newServer(t)
		cookie := loginAs(t, s, &sitechat.User{ID: "u1", Email: "owner@example.com"})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/process_url", jsonBody(t, map[string]string{}))
		r.AddCookie(cookie)
		s.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No URL provided", decodeResponse(t, w)["error"])
	})

	// The sixth ingestion request within a minute from the same origin is
	// rejected before any work happens, so no key gets allocated for it.
	t.Run("SixthRequestWithinMinuteRejected", func(t *testing.T) {
		t.Parallel()

		var ingested int
		s := newServer(t)
		s.Limiter = mem.NewLimiter()
		cookie := loginAs(t, s, &sitechat.User{ID: "u1", Email: "owner@example.com"})
		s.Ingestor = &mock.Ingestor{
			IngestFn: func(ctx context.Context, userID, url string) (*sitechat.Ingestion, error) {
				ingested++
				return &sitechat.Ingestion{Key: "user_deadbeef", SourceURL: url}, nil
			},
		}

		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/process_url", jsonBody(t, map[string]string{
				"url": "https://example.com/docs",
			}))
			r.AddCookie(cookie)
			s.ServeHTTP(w, r)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/process_url", jsonBody(t, map[string]string{
			"url": "https://example.com/docs",
		}))
		r.AddCookie(cookie)
		s.ServeHTTP(w, r)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "Too many requests, please try again later", decodeResponse(t, w)["error"])
		assert.Equal(t, 5, ingested)
	})
}

func TestChat(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		s := newServer(t)
		s.Responder = &mock.Responder{
			RespondFn: func(ctx context.Context, key, input string) (string, error) {
				assert.Equal(t, "user_deadbeef", key)
				assert.Equal(t, "What is this site about?", input)
				return "It is about cats.", nil
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/chat", jsonBody(t, map[string]string{
			"input":   "What is this site about?",
			"api_key": "user_deadbeef",
		}))
		s.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "It is about cats.", decodeResponse(t, w)["response"])
	})

	t.Run("MissingFields", func(t *testing.T) {
		t.Parallel()

		s := newServer(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/chat", jsonBody(t, map[string]string{
			"input": "hello",
		}))
		s.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Input and API key are required", decodeResponse(t, w)["error"])
	})

	t.Run("UpstreamUnavailable", func(t *testing.T) {
		t.Parallel()

		s := newServer(t)
		s.Responder = &mock.Responder{
			RespondFn: func(ctx context.Context, key, input string) (string, error) {
				return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "Completion service unavailable")
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/chat", jsonBody(t, map[string]string{
			"input":   "hello",
			"api_key": "user_deadbeef",
		}))
		s.ServeHTTP(w, r)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestListKeys(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		s := newServer(t)
		cookie := loginAs(t, s, &sitechat.User{ID: "u1", Email: "owner@example.com"})
		s.Registry = &mock.KeyRegistry{
			KeysByUserFn: func(ctx context.Context, userID string) ([]*sitechat.APIKey, error) {
				assert.Equal(t, "u1", userID)
				return []*sitechat.APIKey{
					{Key: "user_aaaa", UserID: "u1"},
					{Key: "user_bbbb", UserID: "u1"},
				}, nil
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/user/api_keys", nil)
		r.AddCookie(cookie)
		s.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{"user_aaaa", "user_bbbb"}, decodeResponse(t, w)["api_keys"])
	})

	t.Run("EmptyListNotNull", func(t *testing.T) {
		t.Parallel()

		s := newServer(t)
		cookie := loginAs(t, s, &sitechat.User{ID: "u1", Email: "owner@example.com"})
		s.Registry = &mock.KeyRegistry{
			KeysByUserFn: func(ctx context.Context, userID string) ([]*sitechat.APIKey, error) {
				return nil, nil
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/user/api_keys", nil)
		r.AddCookie(cookie)
		s.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{}, decodeResponse(t, w)["api_keys"])
	})
}

func TestDeleteKey(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		var removedKey, droppedKey string
		s := newServer(t)
		cookie := loginAs(t, s, &sitechat.User{ID: "u1", Email: "owner@example.com"})
		s.Registry = &mock.KeyRegistry{
			RemoveKeyFn: func(ctx context.Context, userID, key string) error {
				assert.Equal(t, "u1", userID)
				removedKey = key
				return nil
			},
		}
		s.Contexts = &mock.ContextStore{
			DeleteFn: func(key string) bool {
				droppedKey = key
				return true
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/delete_api_key", jsonBody(t, map[string]string{
			"api_key": "user_deadbeef",
		}))
		r.AddCookie(cookie)
		s.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "API key deleted successfully", decodeResponse(t, w)["message"])
		assert.Equal(t, "user_deadbeef", removedKey)
		assert.Equal(t, "user_deadbeef", droppedKey)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		t.Parallel()

		s := newServer(t)
		cookie := loginAs(t, s, &sitechat.User{ID: "u1", Email: "owner@example.com"})
		s.Registry = &mock.KeyRegistry{
			RemoveKeyFn: func(ctx context.Context, userID, key string) error {
				return sitechat.Errorf(sitechat.ENOTFOUND, "API key not found")
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/delete_api_key", jsonBody(t, map[string]string{
			"api_key": "user_unknown",
		}))
		r.AddCookie(cookie)
		s.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "API key not found", decodeResponse(t, w)["error"])
	})

	// Deleting a key must not break chat for widgets still embedding it:
	// subsequent messages fall back to the placeholder context.
	t.Run("ChatAfterDeleteFallsBackToPlaceholder", func(t *testing.T) {
		t.Parallel()

		contexts := mem.NewContextStore()
		key := contexts.Put("Everything about cats.")

		var lastPrompt sitechat.Prompt
		s := newServer(t)
		cookie := loginAs(t, s, &sitechat.User{ID: "u1", Email: "owner@example.com"})
		s.Contexts = contexts
		s.Registry = &mock.KeyRegistry{
			RemoveKeyFn: func(ctx context.Context, userID, k string) error { return nil },
		}
		s.Responder = chat.NewDispatcher(contexts, &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt sitechat.Prompt) (string, error) {
				lastPrompt = prompt
				return "ok", nil
			},
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/delete_api_key", jsonBody(t, map[string]string{
			"api_key": key,
		}))
		r.AddCookie(cookie)
		s.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodPost, "/chat", jsonBody(t, map[string]string{
			"input":   "hello",
			"api_key": key,
		}))
		s.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, lastPrompt.System, chat.PlaceholderContext)
		assert.NotContains(t, lastPrompt.System, "Everything about cats.")
	})
}
