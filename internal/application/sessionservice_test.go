package application

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/credential"
	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

func TestSessionService_Check_UsesStoredCredential(t *testing.T) {
	client := &mockBackendClient{result: model.AuthProbeResult{Outcome: model.ProbeValid, Status: http.StatusOK}}
	svc := NewSessionService(client, &mockBackendAPI{}, credential.Static("tok-1"), nil)

	result := svc.Check(context.Background())

	assert.True(t, result.Authenticated())
	assert.Equal(t, []string{"tok-1"}, client.probedWith)
}

func TestSessionService_Check_NoCredential(t *testing.T) {
	client := &mockBackendClient{}
	svc := NewSessionService(client, &mockBackendAPI{}, credential.Static(""), nil)

	result := svc.Check(context.Background())

	assert.Equal(t, model.ProbeNoCredential, result.Outcome)
	assert.True(t, result.NeedsLogin())
}

func TestSessionService_Logout(t *testing.T) {
	api := &mockBackendAPI{logout: model.Succeeded[json.RawMessage](http.StatusOK, nil)}
	svc := NewSessionService(&mockBackendClient{}, api, credential.Static("tok"), nil)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 1, api.logoutCalls)
}

func TestSessionService_Logout_WithoutCredentialSkipsBackend(t *testing.T) {
	api := &mockBackendAPI{}
	svc := NewSessionService(&mockBackendClient{}, api, credential.Static(""), nil)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 0, api.logoutCalls)
}

func TestSessionService_Logout_BackendFailureIsBestEffort(t *testing.T) {
	api := &mockBackendAPI{logout: model.Failed[json.RawMessage](0, "unreachable")}
	svc := NewSessionService(&mockBackendClient{}, api, credential.Static("tok"), nil)

	assert.NoError(t, svc.Logout(context.Background()))
}

func TestSessionService_Logout_ConfigurationError(t *testing.T) {
	cfgErr := errors.New("not configured")
	api := &mockBackendAPI{logoutErr: cfgErr}
	svc := NewSessionService(&mockBackendClient{}, api, credential.Static("tok"), nil)

	assert.ErrorIs(t, svc.Logout(context.Background()), cfgErr)
}

func TestProblemMessage(t *testing.T) {
	tests := []struct {
		result model.AuthProbeResult
		want   string
	}{
		{model.AuthProbeResult{Outcome: model.ProbeNotFound, Status: 404}, "The sign-in service could not be found. Check the backend address."},
		{model.AuthProbeResult{Outcome: model.ProbeTransportError}, "The server could not be reached. Please try again."},
		{model.AuthProbeResult{Outcome: model.ProbeUnexpectedStatus, Status: 503}, "The server returned an unexpected response (HTTP 503)."},
		{model.AuthProbeResult{Outcome: model.ProbeValid}, model.DefaultErrorMessage},
	}

	for _, tt := range tests {
		t.Run(string(tt.result.Outcome), func(t *testing.T) {
			assert.Equal(t, tt.want, ProblemMessage(tt.result))
		})
	}
}
