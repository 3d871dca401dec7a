// Package httpapi exposes the authcove engine over HTTP with JSON
// bodies. Schema-level request failures yield 422 before domain
// validation runs; domain errors map to the engine's error taxonomy.
package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/authcove/authcove"
)

// Server routes the five auth operations to an Engine.
type Server struct {
	engine *authcove.Engine
	logger zerolog.Logger
}

// NewServer creates a Server.
func NewServer(engine *authcove.Engine, logger zerolog.Logger) *Server {
	return &Server{engine: engine, logger: logger}
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", s.handleSignup)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /verify-2fa", s.handleVerify2FA)
	mux.HandleFunc("POST /verify-token", s.handleVerifyToken)
	mux.HandleFunc("POST /logout", s.handleLogout)
	return requestLogger(s.logger, mux)
}
