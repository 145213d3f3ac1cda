package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"planets-catalog/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeWrite is granted to tokens allowed to modify the catalog.
const ScopeWrite = "planets:write"

// ErrMissingScope marks a genuine token that was not issued for writes.
var ErrMissingScope = errors.New("token lacks " + ScopeWrite + " scope")

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens for catalog writers.
type TokenManager struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long for security")
	}

	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.Issuer,
		expiration: cfg.TokenExpiration,
	}, nil
}

// Generate issues a write token for subject. A non-positive ttl falls back
// to the configured expiration.
func (m *TokenManager) Generate(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("cannot generate JWT: subject is required")
	}
	if ttl <= 0 {
		ttl = m.expiration
	}

	now := time.Now()
	claims := Claims{
		Scope: ScopeWrite,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("cannot generate JWT: %w", err)
	}

	slog.Debug("JWT issued", "component", "auth", "subject", subject, "expires_at", claims.ExpiresAt.Time)
	return signed, nil
}

func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	options := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if m.issuer != "" {
		options = append(options, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, options...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Scope != ScopeWrite {
		return nil, ErrMissingScope
	}

	return claims, nil
}
