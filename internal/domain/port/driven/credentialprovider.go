package driven

import "context"

// CredentialProvider defines the driven port for reading the bearer credential
// of the current execution context. Implementations must re-read the live
// value on every call and never write it.
type CredentialProvider interface {
	// Token returns the stored bearer token and true, or ("", false) when no
	// credential is reachable from ctx.
	Token(ctx context.Context) (string, bool)
}
