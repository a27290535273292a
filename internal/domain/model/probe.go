package model

import "encoding/json"

// AuthProbeResult is the classified outcome of an auth probe. Data holds the
// session payload and is only trustworthy when Outcome is ProbeValid. Err is
// set for ProbeTransportError.
type AuthProbeResult struct {
	Outcome ProbeOutcome
	Status  int
	Data    json.RawMessage
	Err     error
}

// Authenticated reports whether the probed credential was accepted.
func (r AuthProbeResult) Authenticated() bool {
	return r.Outcome == ProbeValid
}

// NeedsLogin reports whether the caller should send the user to the login screen.
func (r AuthProbeResult) NeedsLogin() bool {
	return r.Outcome == ProbeNoCredential || r.Outcome == ProbeUnauthorized
}
