// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/app/system/normalize"
	"github.com/ecofine/ecofine-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c          *mongo.Collection
	adminEmail string
}

// New builds the user store. adminEmail is the one address seeded with
// role=admin on its first upsert; no other path grants admin.
func New(db *mongo.Database, adminEmail string) *Store {
	return &Store{
		c:          db.Collection("users"),
		adminEmail: normalize.Email(adminEmail),
	}
}

// Profile is the login payload used to upsert a user row.
type Profile struct {
	Email string
	Name  string
	Photo string
}

// UpsertResult reports whether the login created a new row.
type UpsertResult struct {
	Created bool
}

// Upsert is the only write path for user rows. name/photo/last_login are
// refreshed on every login; role and created_at are first-seen only
// ($setOnInsert), so a role is never auto-upgraded by logging in again.
func (s *Store) Upsert(ctx context.Context, p Profile) (UpsertResult, error) {
	email := normalize.Email(p.Email)
	if email == "" {
		return UpsertResult{}, apperr.Validation("email is required")
	}

	role := models.RoleUser
	if s.adminEmail != "" && email == s.adminEmail {
		role = models.RoleAdmin
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":       normalize.Name(p.Name),
			"photo":      strings.TrimSpace(p.Photo),
			"last_login": now,
		},
		"$setOnInsert": bson.M{
			"email":      email,
			"role":       role,
			"favorites":  []string{},
			"created_at": now,
		},
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		// Two first logins racing can both try to insert; the unique email
		// index rejects one, which then succeeds as a plain update.
		if wafflemongo.IsDup(err) {
			if _, err := s.c.UpdateOne(ctx, bson.M{"email": email}, update); err != nil {
				return UpsertResult{}, err
			}
			return UpsertResult{}, nil
		}
		return UpsertResult{}, err
	}
	return UpsertResult{Created: res.UpsertedCount > 0}, nil
}

// GetByEmail returns a user row, or a not-found error.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, apperr.NotFound("user")
		}
		return models.User{}, err
	}
	return u, nil
}

// IsAdmin reports whether the email holds the admin role. An absent row
// is simply not an admin.
func (s *Store) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.Role == models.RoleAdmin, nil
}

// Favorites returns the favorite issue id set. Absent row means empty.
func (s *Store) Favorites(ctx context.Context, email string) ([]string, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if u.Favorites == nil {
		return []string{}, nil
	}
	return u.Favorites, nil
}

// ToggleFavorite adds issueID to the caller's favorites if absent, else
// removes it, and returns the resulting membership. $addToSet keeps the
// set duplicate-free even under concurrent toggles.
func (s *Store) ToggleFavorite(ctx context.Context, email, issueID string) (bool, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return false, apperr.Validation("issueId is required")
	}

	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	favorited := false
	for _, id := range u.Favorites {
		if id == issueID {
			favorited = true
			break
		}
	}

	var update bson.M
	if favorited {
		update = bson.M{"$pull": bson.M{"favorites": issueID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"favorites": issueID}}
	}
	if _, err := s.c.UpdateByID(ctx, u.ID, update); err != nil {
		return false, err
	}
	return !favorited, nil
}
