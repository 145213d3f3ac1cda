package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planets-catalog/internal/auth"
	"planets-catalog/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func testTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager(config.AuthConfig{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		Issuer:          "planets-catalog",
		TokenExpiration: time.Hour,
	})
	require.NoError(t, err)
	return m
}

// =============================================================================
// Auth
// =============================================================================

func TestRequireWriteToken(t *testing.T) {
	tokens := testTokens(t)
	valid, err := tokens.Generate("observatory", time.Minute)
	require.NoError(t, err)

	var seen *auth.Claims
	handler := RequireWriteToken(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClaimsFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		method string
		header string
		cookie string
		want   int
	}{
		{"read needs no token", http.MethodGet, "", "", http.StatusOK},
		{"write without token", http.MethodPost, "", "", http.StatusUnauthorized},
		{"bearer token", http.MethodDelete, "Bearer " + valid, "", http.StatusOK},
		{"lowercase scheme", http.MethodPatch, "bearer " + valid, "", http.StatusOK},
		{"cookie token", http.MethodPut, "", valid, http.StatusOK},
		{"wrong scheme", http.MethodPost, "Basic " + valid, "", http.StatusUnauthorized},
		{"bad token", http.MethodPost, "Bearer nope", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(tt.method, "/api/planets", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusOK && tt.method != http.MethodGet {
				require.NotNil(t, seen)
				assert.Equal(t, "observatory", seen.Subject)
			}
		})
	}
}

func TestRequireWriteToken_UnscopedTokenIsForbidden(t *testing.T) {
	unscoped, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "planets-catalog",
			Subject:   "reader",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	handler := RequireWriteToken(testTokens(t))(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/api/planets", nil)
	req.Header.Set("Authorization", "Bearer "+unscoped)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"forbidden"`)
}

func TestRequireWriteToken_Disabled(t *testing.T) {
	handler := RequireWriteToken(nil)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/planets", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =============================================================================
// Request ID
// =============================================================================

func TestRequestID(t *testing.T) {
	handler := RequestID(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(RequestIDHeader))
}

// =============================================================================
// Rate limiting
// =============================================================================

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, BurstSize: 2})
	defer rl.Close()
	handler := rl.Middleware(okHandler())

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "limits are per client")
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: false, RequestsPerSecond: 1, BurstSize: 1})
	handler := rl.Middleware(okHandler())

	for range 5 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})
	rl.getLimiter("10.0.0.1").Allow()
	rl.getLimiter("10.0.0.2")

	rl.sweep(time.Now())
	assert.Contains(t, rl.clients, "10.0.0.1")
	assert.NotContains(t, rl.clients, "10.0.0.2")

	rl.sweep(time.Now().Add(2 * time.Second))
	assert.Empty(t, rl.clients)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "192.168.1.1", getClientIP(req, false))
	assert.Equal(t, "203.0.113.7", getClientIP(req, true))
}

// =============================================================================
// CORS
// =============================================================================

func TestCORS(t *testing.T) {
	c := NewCORS(config.FrontendConfig{URL: "http://localhost:3000, https://planets.example"})
	handler := c.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/planets", nil)
	req.Header.Set("Origin", "https://planets.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://planets.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/planets", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
