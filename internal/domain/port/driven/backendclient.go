package driven

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

// BackendClient defines the driven port for the authenticated backend API.
type BackendClient interface {
	// Issue sends the described request with the current credential attached
	// and returns the raw response. The caller owns the response body.
	Issue(ctx context.Context, req model.RequestDescriptor) (*http.Response, error)

	// Probe checks whether token is still accepted by the backend.
	Probe(ctx context.Context, token string) model.AuthProbeResult
}
