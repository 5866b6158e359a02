// internal/app/features/issues/handler.go
package issues

import (
	issuestore "github.com/ecofine/ecofine-api/internal/app/store/issues"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Issues *issuestore.Store
	Log    *zap.Logger

	// RecentLimit is the preview size for /issues/recent.
	RecentLimit int
}

// NewHandler constructs the issues feature handler bound to the given
// Mongo database and logger.
func NewHandler(db *mongo.Database, recentLimit int, logger *zap.Logger) *Handler {
	if recentLimit < 1 {
		recentLimit = issuestore.DefaultRecentLimit
	}
	return &Handler{
		Issues:      issuestore.New(db),
		Log:         logger,
		RecentLimit: recentLimit,
	}
}
