package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// sessionCookie is the name of the session cookie.
const sessionCookie = "sitechat_session"

// setSession issues a signed session cookie for userID.
func (s *Server) setSession(w http.ResponseWriter, userID string) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	expires := time.Now().Add(ttl)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signSession(s.SessionSecret, userID, expires),
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSession expires the session cookie.
func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionUserID extracts and verifies the user ID from the request's
// session cookie. It reports false for missing, malformed, expired or
// tampered cookies.
func (s *Server) sessionUserID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	return verifySession(s.SessionSecret, cookie.Value)
}

// signSession encodes "userID|expiryUnix|signature" where the signature is
// an HMAC-SHA256 over the first two fields.
func signSession(secret []byte, userID string, expires time.Time) string {
	payload := fmt.Sprintf("%s|%d", userID, expires.Unix())
	return payload + "|" + sign(secret, payload)
}

// verifySession validates a session cookie value and returns the user ID.
func verifySession(secret []byte, value string) (string, bool) {
	parts := strings.Split(value, "|")
	if len(parts) != 3 {
		return "", false
	}
	userID, expiryStr, sig := parts[0], parts[1], parts[2]

	payload := userID + "|" + expiryStr
	if !hmac.Equal([]byte(sign(secret, payload)), []byte(sig)) {
		return "", false
	}

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil || time.Now().Unix() >= expiry {
		return "", false
	}

	return userID, true
}

// sign computes a URL-safe HMAC-SHA256 signature of payload.
func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
