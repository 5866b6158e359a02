// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	contributionsfeature "github.com/ecofine/ecofine-api/internal/app/features/contributions"
	healthfeature "github.com/ecofine/ecofine-api/internal/app/features/health"
	issuesfeature "github.com/ecofine/ecofine-api/internal/app/features/issues"
	usersfeature "github.com/ecofine/ecofine-api/internal/app/features/users"
	"github.com/ecofine/ecofine-api/internal/app/system/identity"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. EcoFine builds the token verifier (when
// a project id is configured), wraps it in the identity middleware, and
// mounts the feature routers: health, issues, my-issues, my-contribution,
// and users.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	var verifier identity.Verifier
	if appCfg.AuthProjectID != "" {
		verifier = identity.NewGoogleVerifier(appCfg.AuthProjectID, appCfg.AuthCertsURL, logger)
	}
	authn := identity.NewMiddleware(verifier, appCfg.TrustHeaderAuth, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Issue catalog: public reads, gated mutations
	issuesHandler := issuesfeature.NewHandler(deps.MongoDatabase, appCfg.RecentLimit, logger)
	r.Mount("/issues", issuesfeature.Routes(issuesHandler, authn))
	r.Mount("/my-issues", issuesfeature.OwnerRoutes(issuesHandler, authn))

	// Contributions are private to their contributor
	contributionsHandler := contributionsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/my-contribution", contributionsfeature.Routes(contributionsHandler, authn))

	// User profiles, role lookups, and favorites
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, appCfg.AdminEmail, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, authn))

	return r, nil
}
