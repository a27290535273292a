package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// SessionService answers whether the current user is signed in and ends sessions.
type SessionService struct {
	client      driven.BackendClient
	api         driven.BackendAPI
	credentials driven.CredentialProvider
	logger      *slog.Logger
}

// NewSessionService creates a new SessionService. A nil logger selects slog.Default().
func NewSessionService(client driven.BackendClient, api driven.BackendAPI, creds driven.CredentialProvider, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{client: client, api: api, credentials: creds, logger: logger}
}

// Check probes the backend with the credential available in ctx.
func (s *SessionService) Check(ctx context.Context) model.AuthProbeResult {
	token, _ := s.credentials.Token(ctx)
	return s.client.Probe(ctx, token)
}

// Logout asks the backend to end the session. It is best effort: a backend
// failure is logged and not returned, so the caller can still clear local
// state. Without a credential there is nothing to end and no call is made.
func (s *SessionService) Logout(ctx context.Context) error {
	if _, ok := s.credentials.Token(ctx); !ok {
		return nil
	}

	result, err := s.api.Logout(ctx)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if !result.OK() {
		s.logger.WarnContext(ctx, "backend logout failed", "status", result.Status, "error", result.Errors)
	}
	return nil
}

// ProblemMessage is the user-facing explanation for a probe result that is
// neither valid nor a plain request to sign in.
func ProblemMessage(r model.AuthProbeResult) string {
	switch r.Outcome {
	case model.ProbeNotFound:
		return "The sign-in service could not be found. Check the backend address."
	case model.ProbeTransportError:
		return "The server could not be reached. Please try again."
	case model.ProbeUnexpectedStatus:
		return fmt.Sprintf("The server returned an unexpected response (HTTP %d).", r.Status)
	default:
		return model.DefaultErrorMessage
	}
}
