package http

import (
	"net/http"

	"github.com/fwojciec/sitechat"
)

// requireUser resolves the authenticated user from the request session.
func (s *Server) requireUser(r *http.Request) (*sitechat.User, error) {
	userID, ok := s.sessionUserID(r)
	if !ok {
		return nil, sitechat.Errorf(sitechat.EUNAUTHORIZED, "User not logged in")
	}

	user, err := s.Users.FindUserByID(r.Context(), userID)
	if err != nil {
		// A valid cookie for a deleted user is still unauthenticated.
		if sitechat.ErrorCode(err) == sitechat.ENOTFOUND {
			return nil, sitechat.Errorf(sitechat.EUNAUTHORIZED, "User not logged in")
		}
		return nil, err
	}
	return user, nil
}

// handleRegister creates a new account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.Users.CreateUser(r.Context(), body.Email, body.Password); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
}

// handleLogin verifies credentials and issues a session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.Users.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.setSession(w, user.ID)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged in successfully",
	})
}

// handleLogout clears the session cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}
