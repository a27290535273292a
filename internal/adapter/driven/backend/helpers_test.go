package backend_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/backend"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/credential"
	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu  sync.Mutex
	got []model.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

// capturedRequest records what the backend double received.
type capturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// testBackend is an httptest server that records requests and replies with handler.
type testBackend struct {
	server *httptest.Server
	calls  atomic.Int32
	mu     sync.Mutex
	last   capturedRequest
}

func newTestBackend(t *testing.T, handler http.HandlerFunc) *testBackend {
	t.Helper()

	tb := &testBackend{}
	tb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tb.calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		tb.mu.Lock()
		tb.last = capturedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: string(body)}
		tb.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(tb.server.Close)
	return tb
}

func (tb *testBackend) lastRequest() capturedRequest {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.last
}

func (tb *testBackend) client(token string, notifier *recordingNotifier, opts ...backend.Option) *backend.Client {
	opts = append([]backend.Option{backend.WithHTTPClient(tb.server.Client())}, opts...)
	return backend.NewClient(tb.server.URL, credential.Static(token), notifier, opts...)
}

func jsonReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func textReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
