package backend

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.BackendAPI = (*API)(nil)

// Default backend endpoints.
const (
	DefaultFilesEndpoint  = "/auth/drive/files"
	DefaultLogoutEndpoint = "/auth/logout"
)

// API implements the BackendAPI port on top of a BackendClient.
type API struct {
	client         driven.BackendClient
	filesEndpoint  string
	logoutEndpoint string
	logger         *slog.Logger
}

// NewAPI creates an API. Empty endpoints select the defaults. A nil logger
// selects slog.Default().
func NewAPI(client driven.BackendClient, filesEndpoint, logoutEndpoint string, logger *slog.Logger) *API {
	if filesEndpoint == "" {
		filesEndpoint = DefaultFilesEndpoint
	}
	if logoutEndpoint == "" {
		logoutEndpoint = DefaultLogoutEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &API{client: client, filesEndpoint: filesEndpoint, logoutEndpoint: logoutEndpoint, logger: logger}
}

// ListFiles GETs the file listing.
func (a *API) ListFiles(ctx context.Context) (model.APIResult[model.FileListing], error) {
	return Fetch[model.FileListing](ctx, a.logger, a.client, model.Get(a.filesEndpoint))
}

// Logout GETs the logout endpoint. The backend clears its own cookie and
// answers with a JSON acknowledgement.
func (a *API) Logout(ctx context.Context) (model.APIResult[json.RawMessage], error) {
	return Fetch[json.RawMessage](ctx, a.logger, a.client, model.Get(a.logoutEndpoint))
}
