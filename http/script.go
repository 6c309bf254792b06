package http

import (
	_ "embed"
	"net/http"
	"os"
	"strings"

	"github.com/fwojciec/sitechat"
)

// widgetScript is the embeddable chat widget served from /chatbot.js.
// {{API_KEY}} and {{BASE_URL}} are substituted per request.
//
//go:embed assets/chatbot.js
var widgetScript string

// handleScript serves the widget script with the caller's key embedded.
func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	apiKey := r.URL.Query().Get("api_key")
	if apiKey == "" {
		s.writeError(w, r, sitechat.Errorf(sitechat.EINVALID, "API key is required"))
		return
	}

	script := widgetScript
	if s.ScriptPath != "" {
		data, err := os.ReadFile(s.ScriptPath)
		if os.IsNotExist(err) {
			s.writeError(w, r, sitechat.Errorf(sitechat.ENOTFOUND, "Chatbot script file not found"))
			return
		}
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		script = string(data)
	}

	script = strings.ReplaceAll(script, "{{API_KEY}}", apiKey)
	script = strings.ReplaceAll(script, "{{BASE_URL}}", strings.TrimSuffix(s.BaseURL, "/"))

	w.Header().Set("Content-Type", "application/javascript")
	_, _ = w.Write([]byte(script))
}
