package config_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstern/tasktriage/internal/config"
)

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	chdirTemp(t) // no config.yaml present

	t.Setenv("TASKTRIAGE_AUTH_JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("TASKTRIAGE_SERVER_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "uploads", cfg.Storage.UploadsDir)
	assert.Equal(t, 24*60, cfg.Auth.TokenLifetimeMinutes)
}

func TestLoad_RejectsMissingJWTSecret(t *testing.T) {
	chdirTemp(t)

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidLogLevel(t *testing.T) {
	chdirTemp(t)

	t.Setenv("TASKTRIAGE_AUTH_JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("TASKTRIAGE_SERVER_LOG_LEVEL", "verbose")

	_, err := config.Load()
	assert.Error(t, err)
}

// chdirTemp runs the test from an empty directory so a config.yaml in the
// repo root cannot leak into config loading.
func chdirTemp(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}
