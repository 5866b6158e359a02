// internal/app/store/contributions/contributionstore.go
package contributionstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contributions")}
}

// Input holds the caller-supplied fields for a new contribution.
type Input struct {
	IssueID string
	Amount  float64
}

// Create records a contribution for the verified caller. issue_id is a
// soft reference; the issue's existence is deliberately not checked.
// Contributor email, tx_ref, and created_at are server-stamped.
func (s *Store) Create(ctx context.Context, in Input, contributor string) (models.Contribution, error) {
	if strings.TrimSpace(in.IssueID) == "" {
		return models.Contribution{}, apperr.Validation("issueId is required")
	}
	if in.Amount <= 0 {
		return models.Contribution{}, apperr.Validation("amount is required")
	}

	c := models.Contribution{
		ID:               primitive.NewObjectID(),
		IssueID:          strings.TrimSpace(in.IssueID),
		ContributorEmail: contributor,
		Amount:           in.Amount,
		TxRef:            uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Contribution{}, err
	}
	return c, nil
}

// ListByOwner returns the caller's own contributions, newest-first.
// Contributions are private; there is no unscoped listing.
func (s *Store) ListByOwner(ctx context.Context, email string) ([]models.Contribution, error) {
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"contributor_email": email}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Contribution, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one of the caller's contributions. Another identity's
// contribution is indistinguishable from a missing one.
func (s *Store) GetByID(ctx context.Context, hexID, email string) (models.Contribution, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return models.Contribution{}, apperr.NotFound("contribution")
	}
	var c models.Contribution
	if err := s.c.FindOne(ctx, bson.M{"_id": oid, "contributor_email": email}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Contribution{}, apperr.NotFound("contribution")
		}
		return models.Contribution{}, err
	}
	return c, nil
}
