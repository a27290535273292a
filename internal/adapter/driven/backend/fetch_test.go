package backend_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/backend"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/credential"
	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

func TestFetch_Success(t *testing.T) {
	tb := newTestBackend(t, jsonReply(http.StatusOK, `{"email":"a@example.com"}`))

	result, err := backend.Fetch[session](context.Background(), nil, tb.client("tok", nil), model.Get("/me"))

	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "a@example.com", result.Data.Email)
}

func TestFetch_HTTPFailureIsResult(t *testing.T) {
	tb := newTestBackend(t, jsonReply(http.StatusBadRequest, `{"message":"bad query"}`))

	result, err := backend.Fetch[session](context.Background(), nil, tb.client("tok", nil), model.Get("/me"))

	require.NoError(t, err)
	assert.Equal(t, "bad query", result.Errors)
	assert.Equal(t, http.StatusBadRequest, result.Status)
}

func TestFetch_NonStringMessageFallsBack(t *testing.T) {
	tb := newTestBackend(t, jsonReply(http.StatusInternalServerError, `{"message":123}`))

	result, err := backend.Fetch[session](context.Background(), nil, tb.client("tok", nil), model.Get("/me"))

	require.NoError(t, err)
	assert.Equal(t, "An unexpected error occurred", result.Errors)
	assert.Equal(t, http.StatusInternalServerError, result.Status)
}

func TestFetch_TransportFailureFolded(t *testing.T) {
	tb := newTestBackend(t, jsonReply(http.StatusOK, `{}`))
	url := tb.server.URL
	tb.server.Close()

	result, err := backend.Fetch[session](context.Background(), nil, backend.NewClient(url, credential.Static("tok"), nil), model.Get("/me"))

	require.NoError(t, err)
	assert.Equal(t, backend.UnreachableMessage, result.Errors)
	assert.Zero(t, result.Status)
}

func TestFetch_DecodeFailureFolded(t *testing.T) {
	tb := newTestBackend(t, jsonReply(http.StatusOK, `not json`))

	result, err := backend.Fetch[session](context.Background(), nil, tb.client("tok", nil), model.Get("/me"))

	require.NoError(t, err)
	assert.Equal(t, backend.UnreadableMessage, result.Errors)
	assert.Equal(t, http.StatusOK, result.Status)
}

func TestFetch_LogsFoldedFailuresToGivenLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	tb := newTestBackend(t, jsonReply(http.StatusOK, `not json`))
	_, err := backend.Fetch[session](context.Background(), logger, tb.client("tok", nil), model.Get("/me"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "backend response unreadable")
	assert.Contains(t, buf.String(), "endpoint=/me")

	url := tb.server.URL
	tb.server.Close()
	_, err = backend.Fetch[session](context.Background(), logger, backend.NewClient(url, credential.Static("tok"), nil), model.Get("/gone"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "backend unreachable")
	assert.Contains(t, buf.String(), "endpoint=/gone")
}

func TestFetch_ConfigurationErrorPropagates(t *testing.T) {
	_, err := backend.Fetch[session](context.Background(), nil, backend.NewClient("", credential.Static("tok"), nil), model.Get("/me"))

	require.ErrorIs(t, err, backend.ErrBaseURLNotConfigured)
}

func TestFileUpload_MultipartBody(t *testing.T) {
	tb := newTestBackend(t, jsonReply(http.StatusCreated, `{"id":"f1"}`))

	req, err := backend.FileUpload("/files", "file", "notes.txt", strings.NewReader("hello drive"))
	require.NoError(t, err)

	result, err := backend.Fetch[map[string]string](context.Background(), nil, tb.client("tok", nil), req)
	require.NoError(t, err)
	assert.Equal(t, "f1", result.Data["id"])

	got := tb.lastRequest()
	assert.Equal(t, http.MethodPost, got.Method)
	assert.True(t, strings.HasPrefix(got.Header.Get("Content-Type"), "multipart/form-data; boundary="))
	assert.Contains(t, got.Body, `filename="notes.txt"`)
	assert.Contains(t, got.Body, "hello drive")
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
}
