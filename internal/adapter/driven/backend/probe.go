package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/credential"
	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

// Probe checks whether token is still accepted by the backend with one
// GET of the probe endpoint. An empty token is classified as
// ProbeNoCredential without any network call. Statuses are classified as
// 2xx -> ProbeValid (Data holds the payload), 401 -> ProbeUnauthorized,
// 404 -> ProbeNotFound and anything else -> ProbeUnexpectedStatus. Failing to
// reach the backend or to read a 2xx payload yields ProbeTransportError.
func (c *Client) Probe(ctx context.Context, token string) model.AuthProbeResult {
	result := c.probe(ctx, token)

	if c.metrics != nil {
		c.metrics.ProbeOutcomes.WithLabelValues(string(result.Outcome)).Inc()
	}
	if result.Err != nil {
		c.logger.WarnContext(ctx, "auth probe failed", "endpoint", c.probeEndpoint, "error", result.Err)
	}
	return result
}

func (c *Client) probe(ctx context.Context, token string) model.AuthProbeResult {
	if token == "" {
		return model.AuthProbeResult{Outcome: model.ProbeNoCredential}
	}

	resp, err := c.withCredentials(credential.Static(token)).Issue(ctx, model.Get(c.probeEndpoint))
	if err != nil {
		return model.AuthProbeResult{Outcome: model.ProbeTransportError, Err: err}
	}

	status := resp.StatusCode
	if !isSuccess(status) {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}

	switch {
	case isSuccess(status):
		result, err := Normalize[json.RawMessage](resp)
		if err != nil {
			return model.AuthProbeResult{Outcome: model.ProbeTransportError, Status: status, Err: err}
		}
		return model.AuthProbeResult{Outcome: model.ProbeValid, Status: status, Data: result.Data}
	case status == http.StatusUnauthorized:
		return model.AuthProbeResult{Outcome: model.ProbeUnauthorized, Status: status}
	case status == http.StatusNotFound:
		return model.AuthProbeResult{Outcome: model.ProbeNotFound, Status: status}
	default:
		return model.AuthProbeResult{Outcome: model.ProbeUnexpectedStatus, Status: status}
	}
}
