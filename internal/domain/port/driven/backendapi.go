package driven

import (
	"context"
	"encoding/json"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

// BackendAPI is the typed view of the backend endpoints the front-end uses.
// Every call goes through the authenticated BackendClient, and HTTP, transport
// and decode failures all come back as a failed APIResult. The error return is
// reserved for misconfiguration.
type BackendAPI interface {
	// ListFiles fetches the signed-in user's Drive file listing.
	ListFiles(ctx context.Context) (model.APIResult[model.FileListing], error)

	// Logout ends the backend session for the current credential.
	Logout(ctx context.Context) (model.APIResult[json.RawMessage], error)
}
