package auth

import (
	"errors"
	"testing"
	"time"

	"planets-catalog/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(config.AuthConfig{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		Issuer:          "planets-catalog",
		TokenExpiration: time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_ShortSecret(t *testing.T) {
	_, err := NewTokenManager(config.AuthConfig{JWTSecret: "short"})
	assert.Error(t, err)
}

func TestGenerateAndValidate(t *testing.T) {
	m := testManager(t)

	token, err := m.Generate("observatory", 0)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "observatory", claims.Subject)
	assert.Equal(t, ScopeWrite, claims.Scope)
	assert.Equal(t, "planets-catalog", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerate_RequiresSubject(t *testing.T) {
	_, err := testManager(t).Generate("", time.Minute)
	assert.Error(t, err)
}

func TestValidate_Rejects(t *testing.T) {
	m := testManager(t)

	other, err := NewTokenManager(config.AuthConfig{
		JWTSecret: "fedcba9876543210fedcba9876543210",
		Issuer:    "planets-catalog",
	})
	require.NoError(t, err)
	foreign, err := other.Generate("intruder", time.Minute)
	require.NoError(t, err)

	expiredClaims := Claims{
		Scope: ScopeWrite,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "planets-catalog",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString(m.secret)
	require.NoError(t, err)

	unscoped, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "planets-catalog",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(m.secret)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      expired,
		"no scope":     unscoped,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Validate(token)
			assert.Error(t, err)
			assert.Equal(t, name == "no scope", errors.Is(err, ErrMissingScope))
		})
	}
}
