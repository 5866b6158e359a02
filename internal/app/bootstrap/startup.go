// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// EcoFine has no caches or templates to warm; it just records which
// authentication mode the service is running in so a misconfigured
// deployment is obvious from the first log lines.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	switch {
	case appCfg.AuthProjectID != "":
		logger.Info("token verification enabled",
			zap.String("project_id", appCfg.AuthProjectID))
	case appCfg.TrustHeaderAuth:
		logger.Warn("running in degraded auth mode; x-user-email header is trusted")
	default:
		logger.Warn("no verifier configured; authenticated routes will fail")
	}
	return nil
}
