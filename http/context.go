package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/sitechat"
)

// handleProcessURL ingests a URL and returns the issued context key along
// with an HTML snippet for embedding the widget.
func (s *Server) handleProcessURL(w http.ResponseWriter, r *http.Request) {
	user, err := s.requireUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !s.Limiter.Allow(clientIP(r), sitechat.OpIngest) {
		s.writeError(w, r, sitechat.Errorf(sitechat.ERATELIMIT, "Too many requests, please try again later"))
		return
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.URL == "" {
		s.writeError(w, r, sitechat.Errorf(sitechat.EINVALID, "No URL provided"))
		return
	}

	result, err := s.Ingestor.Ingest(r.Context(), user.ID, body.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":          "Processing complete",
		"api_key":          result.Key,
		"integration_code": s.integrationCode(result.Key),
	})
}

// handleChat relays a scoped chat message to the completion service. No
// session is required: the endpoint is called from embedded widgets on
// third-party sites, scoped only by the context key.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !s.Limiter.Allow(clientIP(r), sitechat.OpChat) {
		s.writeError(w, r, sitechat.Errorf(sitechat.ERATELIMIT, "Too many requests, please try again later"))
		return
	}

	var body struct {
		Input  string `json:"input"`
		APIKey string `json:"api_key"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Input == "" || body.APIKey == "" {
		s.writeError(w, r, sitechat.Errorf(sitechat.EINVALID, "Input and API key are required"))
		return
	}

	response, err := s.Responder.Respond(r.Context(), body.APIKey, body.Input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response": response,
	})
}

// handleListKeys returns the keys owned by the authenticated user.
func (s *Server) handleListKeys(w http.ResponseWriter, r *http.Request) {
	user, err := s.requireUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	keys, err := s.Registry.KeysByUser(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, key.Key)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"api_keys": ids,
	})
}

// handleDeleteKey revokes a key. The registry removal is authoritative;
// dropping the context entry afterwards is best-effort cleanup, since both
// operations are idempotent and the entry is useless without the key.
func (s *Server) handleDeleteKey(w http.ResponseWriter, r *http.Request) {
	user, err := s.requireUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var body struct {
		APIKey string `json:"api_key"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.APIKey == "" {
		s.writeError(w, r, sitechat.Errorf(sitechat.EINVALID, "No API key provided"))
		return
	}

	if err := s.Registry.RemoveKey(r.Context(), user.ID, body.APIKey); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.Contexts.Delete(body.APIKey)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "API key deleted successfully",
	})
}

// integrationCode renders the HTML snippet site owners paste into their pages.
func (s *Server) integrationCode(key string) string {
	return fmt.Sprintf(`
<!-- AI Chatbot Integration -->
<script src="%s/chatbot.js?api_key=%s"></script>
`, strings.TrimSuffix(s.BaseURL, "/"), key)
}
