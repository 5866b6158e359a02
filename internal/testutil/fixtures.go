package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/ecofine/ecofine-api/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateIssue inserts an issue owned by reporterEmail. createdAt lets tests
// control sort order.
func (f *Fixtures) CreateIssue(ctx context.Context, title, reporterEmail string, createdAt time.Time) models.Issue {
	f.t.Helper()

	issue := models.Issue{
		ID:            primitive.NewObjectID(),
		Title:         title,
		Description:   "Test issue description",
		Category:      "waste",
		Location:      "Test City",
		Status:        "open",
		Amount:        100,
		ReporterEmail: reporterEmail,
		CreatedAt:     createdAt.UTC(),
	}

	if _, err := f.db.Collection("issues").InsertOne(ctx, issue); err != nil {
		f.t.Fatalf("failed to create test issue: %v", err)
	}
	return issue
}

// CreateIssueWithDetails inserts an issue with full control over the
// searchable and filterable fields.
func (f *Fixtures) CreateIssueWithDetails(ctx context.Context, issue models.Issue) models.Issue {
	f.t.Helper()

	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = time.Now().UTC()
	}

	if _, err := f.db.Collection("issues").InsertOne(ctx, issue); err != nil {
		f.t.Fatalf("failed to create test issue: %v", err)
	}
	return issue
}

// CreateUser inserts a user row with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, email, name, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		Role:      role,
		Favorites: []string{},
		CreatedAt: now,
		LastLogin: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateContribution inserts a contribution for the given contributor.
func (f *Fixtures) CreateContribution(ctx context.Context, issueID, contributorEmail string, amount float64) models.Contribution {
	f.t.Helper()

	c := models.Contribution{
		ID:               primitive.NewObjectID(),
		IssueID:          issueID,
		ContributorEmail: contributorEmail,
		Amount:           amount,
		TxRef:            uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
	}

	if _, err := f.db.Collection("contributions").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test contribution: %v", err)
	}
	return c
}
