package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	serverHandlers "planets-catalog/internal/server/handlers"
	"planets-catalog/internal/shared/config"
	apperrors "planets-catalog/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Backend: config.BackendMemory},
		Cache:    config.CacheConfig{KeyPrefix: "planets"},
		Auth: config.AuthConfig{
			Enabled:   true,
			JWTSecret: "0123456789abcdef0123456789abcdef",
			Issuer:    "planets-catalog",
		},
	}
}

func TestNew_MemoryBackend(t *testing.T) {
	a, err := New(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	assert.Nil(t, a.Redis)
	require.NotNil(t, a.Tokens)

	n, err := a.Migrate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := a.Service.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	deps := a.Dependencies()
	require.Len(t, deps, 2)
	assert.Nil(t, deps[0].Ping)
	assert.Nil(t, deps[1].Ping)
}

func TestNew_AuthDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.Auth = config.AuthConfig{Enabled: false}

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, a.Tokens)

	_, err = a.Service.Get(context.Background(), 1)
	assert.Error(t, err)
}

func TestNew_UnreachableRedisIsReported(t *testing.T) {
	cfg := memoryConfig()
	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1"}

	a, err := New(context.Background(), cfg)
	require.NoError(t, err, "a down cache does not stop the app")
	defer a.Close()
	assert.Nil(t, a.Redis)

	deps := a.Dependencies()
	require.Len(t, deps, 2)
	require.NotNil(t, deps[1].Ping)
	pingErr := deps[1].Ping(context.Background())
	assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.GetType(pingErr))

	health := serverHandlers.NewHealthHandler(nil, deps...)
	rec := httptest.NewRecorder()
	health.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/server/health", nil))

	var resp serverHandlers.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "disconnected", resp.Dependencies["redis"])
	assert.Equal(t, "disabled", resp.Dependencies["database"])
}
