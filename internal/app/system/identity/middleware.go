// internal/app/system/identity/middleware.go
package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/app/system/httpjson"
	"github.com/ecofine/ecofine-api/internal/app/system/normalize"
	"go.uber.org/zap"
)

// TrustedEmailHeader names the caller-asserted identity header honored in
// degraded mode only.
const TrustedEmailHeader = "x-user-email"

// Middleware gates routes that require an identity.
//
// Strict mode (Verifier set): requests must carry "Authorization: Bearer
// <token>"; the verifier decides. Degraded mode (no Verifier, TrustHeader
// true): the TrustedEmailHeader value is trusted verbatim. With no
// verifier and TrustHeader false, every gated request fails with a
// misconfiguration error — trust downgrade requires operator opt-in.
type Middleware struct {
	Verifier    Verifier
	TrustHeader bool
	Log         *zap.Logger
}

// NewMiddleware builds the auth middleware.
func NewMiddleware(v Verifier, trustHeader bool, logger *zap.Logger) *Middleware {
	return &Middleware{Verifier: v, TrustHeader: trustHeader, Log: logger}
}

// Require rejects the request unless an identity can be established, and
// otherwise attaches it to the context for downstream handlers.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Verifier == nil {
			m.degraded(next, w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			httpjson.Error(w, m.Log, apperr.Unauthenticated("Authorization header required"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			httpjson.Error(w, m.Log, apperr.Unauthenticated("invalid authorization format"))
			return
		}

		id, err := m.Verifier.Verify(r.Context(), parts[1])
		if err != nil {
			httpjson.Error(w, m.Log, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// degraded handles gated requests when no verifier is configured. It is
// not cryptographically meaningful and must never be enabled in a
// trust-sensitive deployment.
func (m *Middleware) degraded(next http.Handler, w http.ResponseWriter, r *http.Request) {
	if !m.TrustHeader {
		httpjson.Error(w, m.Log, errors.New("identity verifier not configured and header trust is disabled"))
		return
	}
	email := normalize.Email(r.Header.Get(TrustedEmailHeader))
	if email == "" {
		httpjson.Error(w, m.Log, errors.New("degraded auth mode: "+TrustedEmailHeader+" header missing"))
		return
	}
	if m.Log != nil {
		m.Log.Warn("trusting caller-asserted identity",
			zap.String("mode", "degraded"),
			zap.String("email", email))
	}
	next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), Identity{Email: email})))
}
