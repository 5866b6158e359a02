// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Role is decided at first insert and never auto-upgraded.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a platform account keyed by email (unique index). Rows are
// created and refreshed exclusively through the login upsert.
//
// Favorites holds issue ids (hex) as a set; duplicates are prevented by
// writing with $addToSet only.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      string             `bson:"role" json:"role"`
	Favorites []string           `bson:"favorites" json:"favorites"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	LastLogin time.Time          `bson:"last_login" json:"lastLogin"`
}
