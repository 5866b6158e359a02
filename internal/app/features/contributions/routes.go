// internal/app/features/contributions/routes.go
package contributions

import (
	"github.com/ecofine/ecofine-api/internal/app/system/identity"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the contribution routes (typically under
// "/my-contribution"). Every route is identity-gated; contributions are
// private to their contributor.
func Routes(h *Handler, authn *identity.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Require)

		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGet)
	})

	return r
}
