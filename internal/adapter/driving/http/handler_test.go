package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/backend"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/credential"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/notify"
	httphandler "github.com/ericfisherdev/omnisearch/internal/adapter/driving/http"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driving/web"
	"github.com/ericfisherdev/omnisearch/internal/application"
	"github.com/ericfisherdev/omnisearch/internal/observability"
)

// --- Test doubles ---

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

// setup wires a real backend client against an httptest backend that
// answers every path with status and body.
func setup(t *testing.T, status int, body string, db httphandler.Pinger) (http.Handler, *prometheus.Registry) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	creds := credential.NewCookieProvider("")
	notifier := notify.NewCounting(notify.Multi{notify.Toasts{}, notify.NewLog(slog.New(slog.DiscardHandler))}, metrics)
	client := backend.NewClient(srv.URL, creds, notifier, backend.WithHTTPClient(srv.Client()), backend.WithMetrics(metrics))
	api := backend.NewAPI(client, "", "", nil)

	h := httphandler.NewHandler(api, application.NewSessionService(client, api, creds, nil), db, reg, slog.Default())
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, h)

	return httphandler.ApplyMiddleware(web.RequestScope(mux), slog.New(slog.DiscardHandler), metrics), reg
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	err := json.NewDecoder(rec.Body).Decode(v)
	require.NoError(t, err)
}

func withToken(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: credential.DefaultCookieName, Value: "tok"})
	return r
}

// --- Tests ---

func TestListFiles(t *testing.T) {
	h, _ := setup(t, http.StatusOK, `{"files":[{"id":"1","name":"Budget","mimeType":"application/vnd.google-apps.spreadsheet","modifiedTime":"2026-02-01T10:00:00Z"}]}`, nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, withToken(httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.ResultResponse[[]httphandler.FileResponse]
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Google Sheet", resp.Data[0].Type)
	assert.Equal(t, "2026-02-01T10:00:00Z", resp.Data[0].ModifiedTime)
	assert.Empty(t, resp.Errors)
	assert.Empty(t, resp.Notifications)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestListFiles_BackendFailureKeepsStatus(t *testing.T) {
	h, _ := setup(t, http.StatusForbidden, `{"message":"Drive access revoked"}`, nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, withToken(httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var resp httphandler.ResultResponse[[]httphandler.FileResponse]
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "Drive access revoked", resp.Errors)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestListFiles_MissingCredentialIsReported(t *testing.T) {
	h, reg := setup(t, http.StatusUnauthorized, `{"detail":"Not authenticated"}`, nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/files", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp httphandler.ResultResponse[[]httphandler.FileResponse]
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "An unexpected error occurred", resp.Errors)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "warning", resp.Notifications[0].Level)
	assert.Equal(t, backend.MissingCredentialMessage, resp.Notifications[0].Message)

	count, err := testutil.GatherAndCount(reg, "omnisearch_notifications_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSession(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		token       bool
		wantCode    int
		wantOutcome string
	}{
		{"no credential", http.StatusOK, false, http.StatusOK, "no_credential"},
		{"valid", http.StatusOK, true, http.StatusOK, "valid"},
		{"unauthorized", http.StatusUnauthorized, true, http.StatusOK, "unauthorized"},
		{"not found", http.StatusNotFound, true, http.StatusBadGateway, "not_found"},
		{"unexpected", http.StatusTeapot, true, http.StatusBadGateway, "unexpected_status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setup(t, tt.status, `{}`, nil)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
			if tt.token {
				req = withToken(req)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			var resp httphandler.SessionResponse
			decodeJSON(t, rec, &resp)
			assert.Equal(t, tt.wantOutcome, resp.Outcome)
			assert.Equal(t, tt.wantOutcome == "valid", resp.Authenticated)
		})
	}
}

func TestHealth(t *testing.T) {
	h, _ := setup(t, http.StatusOK, `{}`, stubPinger{})
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.HealthResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.NotEmpty(t, resp.Time)
}

func TestHealth_DatabaseDown(t *testing.T) {
	h, _ := setup(t, http.StatusOK, `{}`, stubPinger{err: errors.New("closed")})
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp httphandler.HealthResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unavailable", resp.Database)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := setup(t, http.StatusOK, `{}`, nil)

	h.ServeHTTP(httptest.NewRecorder(), withToken(httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `omnisearch_auth_probes_total{outcome="valid"} 1`)
	assert.Contains(t, body, "omnisearch_http_requests_total")
}

func TestRecoveryMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	h := httphandler.ApplyMiddleware(panicky, slog.New(slog.DiscardHandler), nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "internal server error", resp["error"])
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	h := httphandler.ApplyMiddleware(http.NotFoundHandler(), slog.New(slog.DiscardHandler), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(httphandler.RequestIDHeader)
	assert.Len(t, generated, 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(httphandler.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(httphandler.RequestIDHeader))
}

func TestApplyMiddleware_CountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	h := httphandler.ApplyMiddleware(http.NotFoundHandler(), slog.New(slog.DiscardHandler), metrics)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("404", "get")), 0)
}
