// Package http provides the HTTP boundary of sitechat: the JSON API that
// issues and revokes context keys, relays chat requests and serves the
// embeddable widget script. It also contains the outbound page Fetcher.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/sitechat"
)

// DefaultSessionTTL is how long a login session stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Server serves the sitechat HTTP API.
//
// Fields must be set before calling ServeHTTP or Open. The rate limiter is
// consulted before any work happens for protected operations; its identity
// is the client's network origin.
type Server struct {
	server *http.Server
	mux    *http.ServeMux

	// Addr is the bind address for Open.
	Addr string

	// BaseURL is the externally visible base URL embedded in integration
	// snippets and the widget script.
	BaseURL string

	// ScriptPath optionally overrides the embedded widget script with a
	// file on disk.
	ScriptPath string

	// SessionSecret signs session cookies.
	SessionSecret []byte

	// SessionTTL bounds session lifetime. Zero means DefaultSessionTTL.
	SessionTTL time.Duration

	Users     sitechat.UserService
	Registry  sitechat.KeyRegistry
	Contexts  sitechat.ContextStore
	Ingestor  sitechat.Ingestor
	Responder sitechat.Responder
	Limiter   sitechat.Limiter

	Logger *slog.Logger
}

// NewServer creates a Server with its routes registered. Dependencies are
// assigned to the exported fields before use.
func NewServer() *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		SessionTTL: DefaultSessionTTL,
		Logger:     slog.Default(),
	}

	s.mux.HandleFunc("POST /register", s.handleRegister)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("POST /logout", s.handleLogout)

	s.mux.HandleFunc("POST /process_url", s.handleProcessURL)
	s.mux.HandleFunc("POST /chat", s.handleChat)
	s.mux.HandleFunc("GET /user/api_keys", s.handleListKeys)
	s.mux.HandleFunc("POST /delete_api_key", s.handleDeleteKey)

	s.mux.HandleFunc("GET /chatbot.js", s.handleScript)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	return s
}

// ServeHTTP handles a request and logs its outcome.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

	s.mux.ServeHTTP(sw, r)

	s.Logger.Info("http request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", sw.status,
		"duration", time.Since(begin),
		"remote", clientIP(r),
	)
}

// Open begins listening on Addr. It blocks until the listener fails or the
// server is closed.
func (s *Server) Open() error {
	s.server = &http.Server{
		Addr:         s.Addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts the server down, waiting for in-flight
// requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Close immediately closes the server and any active connections.
func (s *Server) Close() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// statusWriter records the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// ErrorStatusCode maps application error codes to HTTP status codes.
func ErrorStatusCode(code string) int {
	switch code {
	case sitechat.EINVALID:
		return http.StatusBadRequest
	case sitechat.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case sitechat.ENOTFOUND:
		return http.StatusNotFound
	case sitechat.ECONFLICT:
		return http.StatusConflict
	case sitechat.ERATELIMIT:
		return http.StatusTooManyRequests
	case sitechat.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as a JSON error payload. Internal error detail is
// logged but never sent to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := sitechat.ErrorCode(err)
	message := sitechat.ErrorMessage(err)

	if code == sitechat.EINTERNAL {
		s.Logger.Error("internal error",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		message = "An internal error has occurred."
	}

	writeJSON(w, ErrorStatusCode(code), map[string]string{
		"error": message,
	})
}

// writeJSON renders v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return sitechat.Errorf(sitechat.EINVALID, "invalid request body")
	}
	return nil
}

// clientIP derives the rate-limiting identity from the request's network
// origin, honoring the first hop of X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
