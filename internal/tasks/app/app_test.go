package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setSQLiteEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATABASE_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_FILE", filepath.Join(dir, "tasks.db"))
	t.Setenv("PEPPER_FILE", filepath.Join(dir, "secrets", "pepper"))
	t.Setenv("JWT_SECRET", strings.Repeat("j", 32))
	t.Setenv("CONFIG_FILE", "")
	return dir
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setSQLiteEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 3000, cfg.Port)
		require.Equal(t, time.Hour, cfg.TokenTTL)
		require.Equal(t, "tasktrack", cfg.JWTIssuer)
		require.Zero(t, cfg.AuthRateLimit.Requests)
		require.False(t, cfg.AuthRateLimit.TrustProxy)
		require.False(t, cfg.AuthRateLimit.httpConfig().Enabled())
		require.Equal(t, 5432, cfg.Postgres.Port)
		require.Equal(t, "disable", cfg.Postgres.SSLMode)
	})

	t.Run("secret required", func(t *testing.T) {
		setSQLiteEnv(t)
		require.NoError(t, os.Unsetenv("JWT_SECRET"))

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("short secret names the variable", func(t *testing.T) {
		setSQLiteEnv(t)
		t.Setenv("JWT_SECRET", "short")

		_, err := LoadConfig()
		require.ErrorContains(t, err, "JWT_SECRET must be at least 32 bytes")
	})

	t.Run("rate limit opt in", func(t *testing.T) {
		setSQLiteEnv(t)
		t.Setenv("AUTH_RATE_LIMIT_REQUESTS", "5")
		t.Setenv("AUTH_RATE_LIMIT_TRUST_PROXY", "true")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		limit := cfg.AuthRateLimit.httpConfig()
		require.True(t, limit.Enabled())
		require.True(t, limit.TrustProxyHeaders)
		require.Equal(t, time.Minute, limit.Window)
	})

	t.Run("unknown driver", func(t *testing.T) {
		setSQLiteEnv(t)
		t.Setenv("DATABASE_DRIVER", "mysql")

		_, err := LoadConfig()
		require.ErrorContains(t, err, "mysql")
	})

	t.Run("config file", func(t *testing.T) {
		dir := setSQLiteEnv(t)
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: 9090\ntoken_ttl: 30m\n"), 0o600))
		t.Setenv("CONFIG_FILE", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 9090, cfg.Port)
		require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	})
}

func TestNewSQLite(t *testing.T) {
	dir := setSQLiteEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	application, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	require.FileExists(t, filepath.Join(dir, "secrets", "pepper"))

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewRejectsWeakSecret(t *testing.T) {
	setSQLiteEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.JWTSecret = "short"

	_, err = New(context.Background(), cfg)
	require.ErrorContains(t, err, "JWT_SECRET")
}
