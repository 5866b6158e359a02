// internal/app/features/issues/routes.go
package issues

import (
	"github.com/ecofine/ecofine-api/internal/app/system/identity"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the public and owner-gated issue routes (typically under
// "/issues" from bootstrap).
func Routes(h *Handler, authn *identity.Middleware) chi.Router {
	r := chi.NewRouter()

	// Public reads
	r.Get("/", h.ServeList)
	r.Get("/recent", h.ServeRecent)
	r.Get("/{id}", h.ServeGet)

	// Mutations require identity; ownership is checked in the store.
	r.Group(func(pr chi.Router) {
		pr.Use(authn.Require)

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}

// OwnerRoutes mounts the self-only listing (typically "/my-issues").
func OwnerRoutes(h *Handler, authn *identity.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Require)

		pr.Get("/{email}", h.ServeByOwner)
	})

	return r
}
