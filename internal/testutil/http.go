package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/ecofine/ecofine-api/internal/app/system/identity"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithIdentity attaches an authenticated identity to the request context,
// bypassing the auth middleware.
func WithIdentity(r *http.Request, email string) *http.Request {
	return r.WithContext(identity.WithIdentity(r.Context(), identity.Identity{Email: email}))
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with an identity in context.
func NewAuthenticatedRequest(method, target, email string) *http.Request {
	return WithIdentity(httptest.NewRequest(method, target, nil), email)
}
