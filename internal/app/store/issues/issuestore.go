// internal/app/store/issues/issuestore.go
package issuestore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("issues")}
}

// DefaultRecentLimit is the homepage preview size.
const DefaultRecentLimit = 6

// sanitize strips all HTML from caller-supplied text fields before they
// are stored.
var sanitize = bluemonday.StrictPolicy()

// Input holds the caller-supplied fields for a new issue. Owner and
// creation time are never taken from input.
type Input struct {
	Title       string
	Description string
	Category    string
	Location    string
	Status      string
	Amount      float64
}

// Patch holds the fields a partial update may change. Nil pointers leave
// the stored value untouched.
type Patch struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	Status      *string
	Amount      *float64
}

// ListParams selects, orders, and pages the public issue listing.
type ListParams struct {
	Search   string
	Category string
	Status   string
	Sort     string
	Page     int
	Limit    int
}

// sortSpecs maps API sort keys to Mongo sort documents. _id breaks ties
// so pages are stable.
var sortSpecs = map[string]bson.D{
	"newest":      {{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	"oldest":      {{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	"title_asc":   {{Key: "title", Value: 1}, {Key: "_id", Value: 1}},
	"title_desc":  {{Key: "title", Value: -1}, {Key: "_id", Value: -1}},
	"amount_asc":  {{Key: "amount", Value: 1}, {Key: "_id", Value: 1}},
	"amount_desc": {{Key: "amount", Value: -1}, {Key: "_id", Value: -1}},
}

// List returns one page of issues plus the pre-pagination match count.
func (s *Store) List(ctx context.Context, p ListParams) ([]models.Issue, int64, error) {
	filter := bson.M{}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.Status != "" {
		filter["status"] = p.Status
	}
	if q := strings.TrimSpace(p.Search); q != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": re},
			{"description": re},
			{"location": re},
		}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sort, ok := sortSpecs[p.Sort]
	if !ok {
		sort = sortSpecs["newest"]
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = 8
	}

	find := options.Find().
		SetSort(sort).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]models.Issue, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns an issue by hex id. A malformed id is a not-found, not
// a server error.
func (s *Store) GetByID(ctx context.Context, hexID string) (models.Issue, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return models.Issue{}, apperr.NotFound("issue")
	}
	var iss models.Issue
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&iss); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Issue{}, apperr.NotFound("issue")
		}
		return models.Issue{}, err
	}
	return iss, nil
}

// Recent returns the n newest issues for the homepage preview.
func (s *Store) Recent(ctx context.Context, n int) ([]models.Issue, error) {
	if n < 1 {
		n = DefaultRecentLimit
	}
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(n))
	cur, err := s.c.Find(ctx, bson.M{}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Issue, 0, n)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new issue. The owner email and creation timestamp are
// stamped here from the verified identity; any values the caller supplied
// for them never reach the document.
func (s *Store) Create(ctx context.Context, in Input, owner string) (models.Issue, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Issue{}, apperr.Validation("title is required")
	}

	iss := models.Issue{
		ID:            primitive.NewObjectID(),
		Title:         sanitize.Sanitize(in.Title),
		Description:   sanitize.Sanitize(in.Description),
		Category:      strings.TrimSpace(in.Category),
		Location:      sanitize.Sanitize(in.Location),
		Status:        strings.TrimSpace(in.Status),
		Amount:        in.Amount,
		ReporterEmail: owner,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, iss); err != nil {
		return models.Issue{}, err
	}
	return iss, nil
}

// Update applies a partial update after the ownership check. The sequence
// is load, compare owner, mutate; it is safe without locking because
// reporter_email is immutable after creation.
func (s *Store) Update(ctx context.Context, hexID, owner string, patch Patch) (models.Issue, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return models.Issue{}, apperr.NotFound("issue")
	}

	var existing models.Issue
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Issue{}, apperr.NotFound("issue")
		}
		return models.Issue{}, err
	}
	if existing.ReporterEmail != owner {
		return models.Issue{}, apperr.Forbidden("only the reporter may modify this issue")
	}

	set := bson.M{}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return models.Issue{}, apperr.Validation("title cannot be empty")
		}
		set["title"] = sanitize.Sanitize(*patch.Title)
	}
	if patch.Description != nil {
		set["description"] = sanitize.Sanitize(*patch.Description)
	}
	if patch.Category != nil {
		set["category"] = strings.TrimSpace(*patch.Category)
	}
	if patch.Location != nil {
		set["location"] = sanitize.Sanitize(*patch.Location)
	}
	if patch.Status != nil {
		set["status"] = strings.TrimSpace(*patch.Status)
	}
	if patch.Amount != nil {
		set["amount"] = *patch.Amount
	}
	if len(set) == 0 {
		return existing, nil
	}

	var updated models.Issue
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Issue{}, apperr.NotFound("issue")
		}
		return models.Issue{}, err
	}
	return updated, nil
}

// Delete physically removes an issue after the ownership check.
func (s *Store) Delete(ctx context.Context, hexID, owner string) error {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return apperr.NotFound("issue")
	}

	var existing models.Issue
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("issue")
		}
		return err
	}
	if existing.ReporterEmail != owner {
		return apperr.Forbidden("only the reporter may delete this issue")
	}

	_, err = s.c.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// ListByOwner returns all issues reported by the given email,
// newest-first. The self-only check happens at the handler, by parameter.
func (s *Store) ListByOwner(ctx context.Context, email string) ([]models.Issue, error) {
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"reporter_email": email}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Issue, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
