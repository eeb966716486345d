package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a product grouping. Global categories are admin-managed; a
// vendor-scoped category carries the owning vendor's id.
type Category struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name      string              `bson:"name" json:"name"`
	Image     string              `bson:"image,omitempty" json:"image,omitempty"`
	VendorID  *primitive.ObjectID `bson:"vendor,omitempty" json:"vendor,omitempty"`
	IsActive  bool                `bson:"isActive" json:"isActive"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

type Banner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Image     string             `bson:"image" json:"image"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
