package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/authcove/authcove"
	"github.com/authcove/authcove/token"
)

type signupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	RequiresTwoFA bool   `json:"requires2FA"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verify2FARequest struct {
	Email          string `json:"email"`
	LoginAttemptID string `json:"loginAttemptId"`
	TwoFACode      string `json:"2FACode"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func malformed(w http.ResponseWriter) {
	writeError(w, http.StatusUnprocessableEntity, "malformed input")
}

// writeEngineError maps the engine's error taxonomy to transport
// status codes. Internal causes never reach the body.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authcove.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, authcove.ErrIncorrectCredentials):
		writeError(w, http.StatusUnauthorized, "incorrect credentials")
	case errors.Is(err, authcove.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, authcove.ErrMissingToken):
		writeError(w, http.StatusBadRequest, "missing token")
	case errors.Is(err, authcove.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid token")
	default:
		writeError(w, http.StatusInternalServerError, "unexpected error")
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		malformed(w)
		return
	}

	if err := s.engine.Signup(r.Context(), req.Email, req.Password, req.RequiresTwoFA); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully!"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		malformed(w)
		return
	}

	result, err := s.engine.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if result.TwoFARequired {
		writeJSON(w, http.StatusPartialContent, map[string]string{
			"message":        "2FA required",
			"loginAttemptId": result.LoginAttemptID,
		})
		return
	}

	http.SetCookie(w, token.NewAuthCookie(result.Token))
	writeJSON(w, http.StatusOK, map[string]string{"message": "login successful"})
}

func (s *Server) handleVerify2FA(w http.ResponseWriter, r *http.Request) {
	var req verify2FARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		malformed(w)
		return
	}

	signed, err := s.engine.VerifyTwoFA(r.Context(), req.Email, req.LoginAttemptID, req.TwoFACode)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	http.SetCookie(w, token.NewAuthCookie(signed))
	writeJSON(w, http.StatusOK, map[string]string{"message": "login successful"})
}

func (s *Server) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		malformed(w)
		return
	}

	if _, err := s.engine.VerifyToken(r.Context(), req.Token); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "token is valid"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var tokenStr string
	if cookie, err := r.Cookie(token.CookieName); err == nil {
		tokenStr = cookie.Value
	}

	if err := s.engine.Logout(r.Context(), tokenStr); err != nil {
		writeEngineError(w, err)
		return
	}

	http.SetCookie(w, token.ClearAuthCookie())
	writeJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}
