package web

import (
	"net/http"

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/credential"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/notify"
)

// RequestScope binds the inbound request and a fresh toast buffer to the
// request context, so the cookie credential provider and the toast notifier
// see this request only.
func RequestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := credential.WithRequest(r.Context(), r)
		ctx, _ = notify.WithBuffer(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
