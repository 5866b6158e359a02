// Package identity establishes the verified caller for a request: a
// Verifier turns a bearer credential into an Identity, and the Middleware
// attaches it to the request context. Ownership checks elsewhere compare
// resource owner emails against this Identity.
package identity

import (
	"context"
	"net/http"
)

// Identity is the verified caller derived from a credential.
type Identity struct {
	Email   string
	Subject string
	Name    string
	Photo   string
}

type ctxKey struct{}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity attached by the middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// FromRequest is FromContext for handlers.
func FromRequest(r *http.Request) (Identity, bool) {
	return FromContext(r.Context())
}
