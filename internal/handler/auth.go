package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/devraikou/portfolio/internal/auth"
	"github.com/devraikou/portfolio/internal/service"
)

// AuthHandler logs the admin in and out. The session is a JWT in an
// HttpOnly cookie; see auth.RequireAdmin for the checking side.
type AuthHandler struct {
	auth   *service.AuthService
	ttl    time.Duration
	logger *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, ttl time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, ttl: ttl, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

// HandleLogin checks the admin password and sets the session cookie.
//
// HTTP: POST /auth/login
// REQUEST BODY: {"password": "..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	sess, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		h.logger.Warn("login rejected",
			slog.String("remote", r.RemoteAddr),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, sess.Token, h.ttl, secureRequest(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "logged in",
		"expiresIn": int(h.ttl.Seconds()),
	})
}

// HandleLogout clears the session cookie. The JWT stays valid until it
// expires, but the browser no longer has it.
//
// HTTP: POST /auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, secureRequest(r))
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// secureRequest reports whether the visitor reached us over HTTPS, directly
// or through a proxy that says so.
func secureRequest(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
