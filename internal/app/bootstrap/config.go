// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for EcoFine.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, auth_project_id, etc.
//   - Environment variables: ECOFINE_MONGO_URI, ECOFINE_AUTH_PROJECT_ID, etc.
//   - Command-line flags: --mongo_uri, --auth_project_id, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "ecofine", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Identity verification
	{Name: "auth_project_id", Default: "", Desc: "Identity-provider project id; blank disables token verification"},
	{Name: "auth_certs_url", Default: "", Desc: "Override for the provider signing-cert endpoint (testing)"},
	{Name: "trust_header_auth", Default: false, Desc: "Trust the x-user-email header when no verifier is configured (dev only)"},

	// Application behavior
	{Name: "admin_email", Default: "", Desc: "Email granted the admin role on first login"},
	{Name: "recent_limit", Default: 6, Desc: "Number of issues returned by /issues/recent"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// environment variables (WAFFLE_* for core, ECOFINE_* for app), and
// command-line flags, with precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ECOFINE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthProjectID:   appValues.String("auth_project_id"),
		AuthCertsURL:    appValues.String("auth_certs_url"),
		TrustHeaderAuth: appValues.Bool("trust_header_auth"),

		AdminEmail:  appValues.String("admin_email"),
		RecentLimit: appValues.Int("recent_limit"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// EcoFine validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect.
//
// A missing auth_project_id is not an error: the service starts without a
// verifier and gated routes fail unless trust_header_auth opts in to the
// degraded header-trust mode. Both cases are logged loudly here.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.AuthProjectID == "" {
		if appCfg.TrustHeaderAuth {
			logger.Warn("auth_project_id is blank and trust_header_auth is on; identities come from the x-user-email header without verification")
		} else {
			logger.Warn("auth_project_id is blank; authenticated routes will fail until it is set or trust_header_auth is enabled")
		}
	}

	if appCfg.RecentLimit < 1 {
		return fmt.Errorf("recent_limit must be at least 1, got %d", appCfg.RecentLimit)
	}

	return nil
}
