package backend

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// Messages used when a failure has no HTTP-level message of its own.
const (
	UnreachableMessage = "The server could not be reached. Please try again."
	UnreadableMessage  = "The server sent a response that could not be read."
)

// Fetch issues req through c and normalizes the response, folding transport
// and decode failures into the returned APIResult so callers handle a single
// shape. Folded failures are logged to logger; a nil logger logs nothing. The
// error return is reserved for configuration errors such as
// ErrBaseURLNotConfigured, which must not be shown to users as a request failure.
func Fetch[T any](ctx context.Context, logger *slog.Logger, c driven.BackendClient, req model.RequestDescriptor) (model.APIResult[T], error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	resp, err := c.Issue(ctx, req)
	if err != nil {
		if errors.Is(err, ErrBaseURLNotConfigured) {
			return model.APIResult[T]{}, err
		}
		logger.WarnContext(ctx, "backend unreachable", "endpoint", req.Endpoint, "error", err)
		return model.Failed[T](0, UnreachableMessage), nil
	}

	result, err := Normalize[T](resp)
	if err != nil {
		logger.WarnContext(ctx, "backend response unreadable", "endpoint", req.Endpoint, "status", result.Status, "error", err)
		return model.Failed[T](result.Status, UnreadableMessage), nil
	}
	return result, nil
}
