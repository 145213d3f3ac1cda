package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planets-catalog/internal/auth"
	"planets-catalog/internal/middleware"
	"planets-catalog/internal/shared/config"
	"planets-catalog/internal/shared/cookies"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSession(t *testing.T) (*auth.TokenManager, http.Handler, *SessionHandler) {
	t.Helper()
	tokens, err := auth.NewTokenManager(config.AuthConfig{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		Issuer:          "planets-catalog",
		TokenExpiration: time.Hour,
	})
	require.NoError(t, err)

	h := NewSessionHandler(tokens, cookies.Options{FrontendURL: "http://localhost:3000"})
	return tokens, middleware.RequireWriteToken(tokens)(http.HandlerFunc(h.Login)), h
}

func TestLogin_SetsCookie(t *testing.T) {
	tokens, login, _ := setupSession(t)
	bearer, err := tokens.Generate("observatory", 30*time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	rec := httptest.NewRecorder()
	login.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	issued := rec.Result().Cookies()
	require.Len(t, issued, 1)
	assert.Equal(t, cookies.AuthCookieName, issued[0].Name)
	assert.True(t, issued[0].HttpOnly)

	claims, err := tokens.Validate(issued[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "observatory", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestLogin_RequiresToken(t *testing.T) {
	_, login, _ := setupSession(t)

	rec := httptest.NewRecorder()
	login.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogout_ClearsCookie(t *testing.T) {
	_, _, h := setupSession(t)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodDelete, "/api/auth/session", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)
}
