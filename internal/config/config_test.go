package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every OMNISEARCH_ env var that Load() reads.
var allConfigKeys = []string{
	"OMNISEARCH_BACKEND_URL",
	"OMNISEARCH_LISTEN_ADDR",
	"OMNISEARCH_DB_PATH",
	"OMNISEARCH_COOKIE_NAME",
	"OMNISEARCH_PROBE_ENDPOINT",
	"OMNISEARCH_FILES_ENDPOINT",
	"OMNISEARCH_LOGIN_ENDPOINT",
	"OMNISEARCH_LOGOUT_ENDPOINT",
	"OMNISEARCH_CREDENTIAL_SOURCE",
	"OMNISEARCH_HTTP_CACHE",
	"OMNISEARCH_SECURE_COOKIES",
	"OMNISEARCH_LOG_LEVEL",
	"OMNISEARCH_LOG_FORMAT",
}

// isolateConfigEnv saves and unsets all OMNISEARCH_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("OMNISEARCH_BACKEND_URL", "https://api.example.com/")
	t.Setenv("OMNISEARCH_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("OMNISEARCH_DB_PATH", "/tmp/test.db")
	t.Setenv("OMNISEARCH_COOKIE_NAME", "session")
	t.Setenv("OMNISEARCH_PROBE_ENDPOINT", "/auth/me")
	t.Setenv("OMNISEARCH_CREDENTIAL_SOURCE", "server")
	t.Setenv("OMNISEARCH_HTTP_CACHE", "true")
	t.Setenv("OMNISEARCH_SECURE_COOKIES", "1")
	t.Setenv("OMNISEARCH_LOG_LEVEL", "debug")
	t.Setenv("OMNISEARCH_LOG_FORMAT", "JSON")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/", cfg.BackendURL)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "session", cfg.CookieName)
	assert.Equal(t, "/auth/me", cfg.ProbeEndpoint)
	assert.Equal(t, CredentialSourceServer, cfg.CredentialSource)
	assert.True(t, cfg.HTTPCache)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("OMNISEARCH_BACKEND_URL", "http://localhost:8000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddr)
	assert.Equal(t, "omnisearch.db", cfg.DBPath)
	assert.Equal(t, "auth_token", cfg.CookieName)
	assert.Equal(t, "/login", cfg.ProbeEndpoint)
	assert.Equal(t, "/auth/drive/files", cfg.FilesEndpoint)
	assert.Equal(t, "/auth/login", cfg.LoginEndpoint)
	assert.Equal(t, "/auth/logout", cfg.LogoutEndpoint)
	assert.Equal(t, CredentialSourceBrowser, cfg.CredentialSource)
	assert.False(t, cfg.HTTPCache)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, "http://localhost:8000/auth/login", cfg.LoginURL())
}

func TestLoad_MissingBackendURL(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OMNISEARCH_BACKEND_URL")
}

func TestLoad_InvalidBackendURL(t *testing.T) {
	for _, raw := range []string{"localhost:8000", "ftp://files.example.com", "/relative", "http://"} {
		t.Run(raw, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv("OMNISEARCH_BACKEND_URL", raw)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "OMNISEARCH_BACKEND_URL")
		})
	}
}

func TestLoad_InvalidCredentialSource(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("OMNISEARCH_BACKEND_URL", "http://localhost:8000")
	t.Setenv("OMNISEARCH_CREDENTIAL_SOURCE", "keychain")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OMNISEARCH_CREDENTIAL_SOURCE")
}

func TestLoad_InvalidHTTPCache(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("OMNISEARCH_BACKEND_URL", "http://localhost:8000")
	t.Setenv("OMNISEARCH_HTTP_CACHE", "sometimes")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OMNISEARCH_HTTP_CACHE")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("OMNISEARCH_BACKEND_URL", "http://localhost:8000")
	t.Setenv("OMNISEARCH_LOG_LEVEL", "loud")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OMNISEARCH_LOG_LEVEL")
}

func TestLoad_BackendURLAndEndpointsKeptVerbatim(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("OMNISEARCH_BACKEND_URL", "http://localhost:8000/api/")
	t.Setenv("OMNISEARCH_FILES_ENDPOINT", "drive/files")
	t.Setenv("OMNISEARCH_LOGIN_ENDPOINT", "auth/login")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/", cfg.BackendURL)
	assert.Equal(t, "drive/files", cfg.FilesEndpoint)
	assert.Equal(t, "http://localhost:8000/api/auth/login", cfg.LoginURL())
}
