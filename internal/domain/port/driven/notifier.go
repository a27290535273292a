package driven

import (
	"context"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

// Notifier defines the driven port for user-facing notifications. Notify must
// not block on user interaction.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification)
}
