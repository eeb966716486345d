package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RefreshToken struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VendorID        primitive.ObjectID  `bson:"vendorId" json:"vendorId"`
	TokenHash       string              `bson:"tokenHash" json:"tokenHash"`
	ExpiresAt       time.Time           `bson:"expiresAt" json:"expiresAt"`
	Revoked         bool                `bson:"revoked" json:"revoked"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	ReplacedByToken *primitive.ObjectID `bson:"replacedByToken,omitempty" json:"replacedByToken,omitempty"`
}

// ResetToken is a single-use password reset entry. The plain token is mailed
// to the vendor; only its hash is stored. Mongo's TTL index on expiresAt
// removes stale entries.
type ResetToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VendorID  primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	TokenHash string             `bson:"tokenHash" json:"tokenHash"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	Used      bool               `bson:"used" json:"used"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
