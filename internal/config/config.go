// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Credential source values for OMNISEARCH_CREDENTIAL_SOURCE.
const (
	CredentialSourceBrowser = "browser"
	CredentialSourceServer  = "server"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	BackendURL       string
	ListenAddr       string
	DBPath           string
	CookieName       string
	ProbeEndpoint    string
	FilesEndpoint    string
	LoginEndpoint    string
	LogoutEndpoint   string
	CredentialSource string
	HTTPCache        bool
	SecureCookies    bool
	LogLevel         slog.Level
	LogJSON          bool
}

// LoginURL is the absolute backend URL that starts the OAuth flow.
func (c *Config) LoginURL() string {
	return c.BackendURL + c.LoginEndpoint
}

// Load reads configuration from environment variables and returns a validated Config.
// OMNISEARCH_BACKEND_URL is required and must be an absolute http(s) URL.
// Endpoints are appended to it verbatim, so slashes are the operator's concern.
// Optional variables with defaults: OMNISEARCH_LISTEN_ADDR (127.0.0.1:3000),
// OMNISEARCH_DB_PATH (omnisearch.db), OMNISEARCH_COOKIE_NAME (auth_token),
// OMNISEARCH_PROBE_ENDPOINT (/login), OMNISEARCH_FILES_ENDPOINT (/auth/drive/files),
// OMNISEARCH_LOGIN_ENDPOINT (/auth/login), OMNISEARCH_LOGOUT_ENDPOINT (/auth/logout),
// OMNISEARCH_CREDENTIAL_SOURCE (browser), OMNISEARCH_HTTP_CACHE (false),
// OMNISEARCH_SECURE_COOKIES (false),
// OMNISEARCH_LOG_LEVEL (info), OMNISEARCH_LOG_FORMAT (text).
func Load() (*Config, error) {
	backendURL, err := loadBackendURL()
	if err != nil {
		return nil, err
	}

	source := envOr("OMNISEARCH_CREDENTIAL_SOURCE", CredentialSourceBrowser)
	if source != CredentialSourceBrowser && source != CredentialSourceServer {
		return nil, fmt.Errorf("OMNISEARCH_CREDENTIAL_SOURCE must be %q or %q, got %q",
			CredentialSourceBrowser, CredentialSourceServer, source)
	}

	httpCache, err := envBool("OMNISEARCH_HTTP_CACHE")
	if err != nil {
		return nil, err
	}
	secureCookies, err := envBool("OMNISEARCH_SECURE_COOKIES")
	if err != nil {
		return nil, err
	}

	var logLevel slog.Level
	if v, ok := os.LookupEnv("OMNISEARCH_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("OMNISEARCH_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	cfg := &Config{
		BackendURL:       backendURL,
		ListenAddr:       envOr("OMNISEARCH_LISTEN_ADDR", "127.0.0.1:3000"),
		DBPath:           envOr("OMNISEARCH_DB_PATH", "omnisearch.db"),
		CookieName:       envOr("OMNISEARCH_COOKIE_NAME", "auth_token"),
		ProbeEndpoint:    envOr("OMNISEARCH_PROBE_ENDPOINT", "/login"),
		FilesEndpoint:    envOr("OMNISEARCH_FILES_ENDPOINT", "/auth/drive/files"),
		LoginEndpoint:    envOr("OMNISEARCH_LOGIN_ENDPOINT", "/auth/login"),
		LogoutEndpoint:   envOr("OMNISEARCH_LOGOUT_ENDPOINT", "/auth/logout"),
		CredentialSource: source,
		HTTPCache:        httpCache,
		SecureCookies:    secureCookies,
		LogLevel:         logLevel,
		LogJSON:          strings.EqualFold(os.Getenv("OMNISEARCH_LOG_FORMAT"), "json"),
	}

	return cfg, nil
}

func loadBackendURL() (string, error) {
	raw := strings.TrimSpace(os.Getenv("OMNISEARCH_BACKEND_URL"))
	if raw == "" {
		return "", fmt.Errorf("OMNISEARCH_BACKEND_URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("OMNISEARCH_BACKEND_URL has invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("OMNISEARCH_BACKEND_URL must be an absolute http(s) URL, got %q", raw)
	}
	return raw, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// envBool parses an optional boolean variable; unset or empty is false.
func envBool(key string) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s has invalid boolean %q: %w", key, v, err)
	}
	return parsed, nil
}
