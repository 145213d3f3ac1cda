package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"planets-catalog/internal/auth"
	"planets-catalog/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORAGE_BACKEND", config.BackendMemory)
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "token", "--subject", "observatory", "--ttl", "10m")
	require.NoError(t, err)

	tokens, err := auth.NewTokenManager(config.AuthConfig{JWTSecret: testSecret, Issuer: "planets-catalog"})
	require.NoError(t, err)
	claims, err := tokens.Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "observatory", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenCommand_RequiresSubject(t *testing.T) {
	_, err := execute(t, "token")
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	catalog := `
planets:
  - name: Mercury
    mass: 3.301e23
    radius: 2439.7
    gravity: 3.7
    last_albedo_measurement: 2024-06-01
    type: barren
  - name: Pluto
    mass: 1.303e22
    radius: 1188.3
    gravity: 0.62
    last_albedo_measurement: 2024-06-01
    type: ice
`
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))

	out, err := execute(t, "seed", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, `skipped #1 "Pluto"`)
	assert.Contains(t, out, "created 1, skipped 1")
}

func TestSeedCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "seed", "-f", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMigrateCommand_MemoryBackend(t *testing.T) {
	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "applied 0 migration(s)\n", out)
}
