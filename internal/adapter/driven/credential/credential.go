// Package credential implements the CredentialProvider port for the browser
// cookie store and for server-side contexts that have no user agent.
package credential

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// DefaultCookieName is the cookie the OAuth callback stores the bearer token under.
const DefaultCookieName = "auth_token"

// Environment names the host environment a provider is selected for.
type Environment string

const (
	// EnvBrowser reads the credential from the inbound browser request.
	EnvBrowser Environment = "browser"
	// EnvServer has no user-agent storage; the credential is always absent.
	EnvServer Environment = "server"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.CredentialProvider = (*CookieProvider)(nil)
	_ driven.CredentialProvider = NoopProvider{}
	_ driven.CredentialProvider = Static("")
)

type requestKey struct{}

// WithRequest binds the inbound browser request to ctx so a CookieProvider can
// read its cookies. The request is stored as-is; cookies are parsed on each read.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// requestFrom returns the browser request bound to ctx, if any.
func requestFrom(ctx context.Context) (*http.Request, bool) {
	r, ok := ctx.Value(requestKey{}).(*http.Request)
	return r, ok && r != nil
}

// CookieProvider reads the bearer token from the cookie of the browser request
// bound to the context. Contexts without a bound request have no credential.
type CookieProvider struct {
	name string
}

// NewCookieProvider creates a CookieProvider reading the named cookie. An empty
// name selects DefaultCookieName.
func NewCookieProvider(name string) *CookieProvider {
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieProvider{name: name}
}

// Token returns the cookie value, or ("", false) when the context carries no
// request, the cookie is missing, or it is empty.
func (p *CookieProvider) Token(ctx context.Context) (string, bool) {
	r, ok := requestFrom(ctx)
	if !ok {
		return "", false
	}
	c, err := r.Cookie(p.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// NoopProvider is the server-side provider: no credential is ever available.
type NoopProvider struct{}

// Token always reports an absent credential.
func (NoopProvider) Token(context.Context) (string, bool) {
	return "", false
}

// Static is a fixed credential. The empty string is treated as absent.
type Static string

// Token returns the fixed credential.
func (s Static) Token(context.Context) (string, bool) {
	return string(s), s != ""
}

// ForEnvironment selects the provider for the given host environment.
func ForEnvironment(env Environment, cookieName string) (driven.CredentialProvider, error) {
	switch env {
	case EnvBrowser, "":
		return NewCookieProvider(cookieName), nil
	case EnvServer:
		return NoopProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown credential environment %q", env)
	}
}
