// internal/domain/models/issue.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Issue is a reported environmental problem. ReporterEmail is the owning
// identity: it is stamped once at creation from the verified caller and is
// never writable afterwards.
type Issue struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	Location      string             `bson:"location" json:"location"`
	Status        string             `bson:"status" json:"status"`
	Amount        float64            `bson:"amount" json:"amount"`
	ReporterEmail string             `bson:"reporter_email" json:"reporterEmail"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
