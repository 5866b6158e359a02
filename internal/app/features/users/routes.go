// internal/app/features/users/routes.go
package users

import (
	"github.com/ecofine/ecofine-api/internal/app/system/identity"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user routes (typically under "/users"). The upsert
// is open so a fresh sign-in can register before the client has made
// any authenticated call; everything else is identity-gated.
func Routes(h *Handler, authn *identity.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleUpsert)

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Require)

		pr.Get("/admin/{email}", h.ServeIsAdmin)
		pr.Get("/favorites/{email}", h.ServeFavorites)
		pr.Post("/favorites", h.HandleToggleFavorite)
	})

	return r
}
