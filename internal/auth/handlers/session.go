package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"planets-catalog/internal/auth"
	"planets-catalog/internal/middleware"
	"planets-catalog/internal/shared/cookies"
	"planets-catalog/internal/shared/errors"
	"planets-catalog/internal/shared/response"
)

type SessionResponse struct {
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionHandler moves a write token into an HttpOnly cookie for browser
// clients and clears it again on logout.
type SessionHandler struct {
	tokens  *auth.TokenManager
	cookies cookies.Options
}

func NewSessionHandler(tokens *auth.TokenManager, opts cookies.Options) *SessionHandler {
	return &SessionHandler{tokens: tokens, cookies: opts}
}

// Login must sit behind middleware.RequireWriteToken.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "login", "remote_addr", r.RemoteAddr)

	claims := middleware.GetClaimsFromContext(r)
	if claims == nil || claims.ExpiresAt == nil {
		response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		return
	}

	// The cookie never outlives the token it was exchanged for.
	expiresAt := claims.ExpiresAt.Time
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		response.Error(w, r, logger, errors.Unauthorized("token expired"))
		return
	}

	token, err := h.tokens.Generate(claims.Subject, ttl)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to issue session token", err))
		return
	}

	cookies.SetAuthCookie(w, h.cookies, token, expiresAt)
	logger.Info("Session started", "subject", claims.Subject)

	response.Success(w, http.StatusOK, SessionResponse{Subject: claims.Subject, ExpiresAt: expiresAt})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "logout", "remote_addr", r.RemoteAddr)
	logger.Debug("Logout requested")

	cookies.ClearAuthCookie(w, h.cookies)
	response.NoContent(w)
}
