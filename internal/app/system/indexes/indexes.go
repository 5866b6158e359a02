// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureIssues(ctx, db); err != nil {
		problems = append(problems, "issues: "+err.Error())
	}
	if err := ensureContributions(ctx, db); err != nil {
		problems = append(problems, "contributions: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureUsers: email is the upsert key and must be unique.
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	return err
}

// ensureIssues: newest-first listing plus the category/status filters.
func ensureIssues(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("issues").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("category_status"),
		},
		{
			Keys:    bson.D{{Key: "reporter_email", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("owner_created"),
		},
	})
	return err
}

// ensureContributions: contributions are always read owner-scoped.
func ensureContributions(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("contributions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "contributor_email", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("contributor_created"),
	})
	return err
}
