// internal/domain/models/contribution.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contribution records funds pledged toward an issue. IssueID is a soft
// reference (hex of an Issue id); issue existence is not verified before a
// contribution is recorded. Contributions are immutable after creation.
type Contribution struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID          string             `bson:"issue_id" json:"issueId"`
	ContributorEmail string             `bson:"contributor_email" json:"contributorEmail"`
	Amount           float64            `bson:"amount" json:"amount"`
	TxRef            string             `bson:"tx_ref" json:"txRef"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
}
