// Package backend implements the BackendClient port: the authenticated
// request wrapper, response normalization and the auth probe.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gregjones/httpcache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/notify"
	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
	"github.com/ericfisherdev/omnisearch/internal/observability"
)

// Compile-time interface satisfaction check.
var _ driven.BackendClient = (*Client)(nil)

// ErrBaseURLNotConfigured means the deployment is missing its backend URL.
// It is a configuration error, not a per-request failure.
var ErrBaseURLNotConfigured = errors.New("backend base URL is not configured: set OMNISEARCH_BACKEND_URL")

// MissingCredentialMessage is shown when a request goes out without a credential.
const MissingCredentialMessage = "You need to be logged in to perform this action"

// DefaultProbeEndpoint is the session endpoint used by Probe.
const DefaultProbeEndpoint = "/login"

// TransportError wraps a failure to get any response from the backend.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend request %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client is the authenticated backend API client.
type Client struct {
	http          *http.Client
	baseURL       string
	credentials   driven.CredentialProvider
	notifier      driven.Notifier
	probeEndpoint string
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Intended for tests that point the
// client at an httptest server.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithProbeEndpoint overrides DefaultProbeEndpoint.
func WithProbeEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.probeEndpoint = endpoint
		}
	}
}

// WithMetrics enables probe outcome counting.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a backend client for baseURL. The credential provider is
// consulted on every request; the notifier receives the missing-credential
// warning. A nil notifier discards notifications.
func NewClient(baseURL string, creds driven.CredentialProvider, notifier driven.Notifier, opts ...Option) *Client {
	if notifier == nil {
		notifier = discard{}
	}
	c := &Client{
		http:          &http.Client{Transport: http.DefaultTransport},
		baseURL:       baseURL,
		credentials:   creds,
		notifier:      notifier,
		probeEndpoint: DefaultProbeEndpoint,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTransport builds the outbound transport stack, innermost first:
//  1. http.DefaultTransport
//  2. httpcache (conditional request caching, only when cache is true)
//  3. promhttp request counter and duration histogram (when metrics is non-nil)
//  4. otelhttp (client spans and trace context propagation)
//
// httpcache keys entries by URL only. Enable it only when the backend marks
// per-user responses private or varies them on Authorization.
func NewTransport(cache bool, metrics *observability.Metrics) http.RoundTripper {
	var rt http.RoundTripper = http.DefaultTransport
	if cache {
		cacheTransport := httpcache.NewMemoryCacheTransport()
		cacheTransport.Transport = rt
		rt = cacheTransport
	}
	if metrics != nil {
		rt = promhttp.InstrumentRoundTripperCounter(metrics.BackendRequests, rt)
		rt = promhttp.InstrumentRoundTripperDuration(metrics.BackendDuration, rt)
	}
	return otelhttp.NewTransport(rt)
}

// Issue builds and sends the described request. The stored credential, when
// present, is sent as "Authorization: Bearer <token>"; when absent a warning
// notification is raised and the request is sent without one. Content-Type is
// application/json unless the request is a file upload.
//
// The response is returned unmodified and the caller must close its body.
// Issue does not retry and sets no timeout of its own.
func (c *Client) Issue(ctx context.Context, req model.RequestDescriptor) (*http.Response, error) {
	if c.baseURL == "" {
		return nil, ErrBaseURLNotConfigured
	}

	method := req.Options.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Endpoint, req.Options.Body)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", req.Endpoint, err)
	}
	if req.Options.Header != nil {
		httpReq.Header = req.Options.Header.Clone()
	}

	if token, ok := c.credentials.Token(ctx); ok {
		tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
		tok.SetAuthHeader(httpReq)
	} else {
		c.notifier.Notify(ctx, notify.Warn(MissingCredentialMessage))
	}

	if !req.FileUpload {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Endpoint: req.Endpoint, Err: err}
	}

	c.logger.DebugContext(ctx, "backend call",
		"method", method,
		"endpoint", req.Endpoint,
		"status", resp.StatusCode,
	)
	return resp, nil
}

// withCredentials returns a shallow copy of c reading from creds.
func (c *Client) withCredentials(creds driven.CredentialProvider) *Client {
	clone := *c
	clone.credentials = creds
	return &clone
}

type discard struct{}

func (discard) Notify(context.Context, model.Notification) {}
