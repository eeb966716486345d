package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attribute is a single name/value pair on a variation, e.g. {Size, XL}.
type Attribute struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
}

// Variation is one sellable configuration of a product. Images are stored as
// public URL paths; merging freshly uploaded files with kept existing paths
// happens in the handlers before the document is written.
type Variation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Attributes []Attribute        `bson:"attributes" json:"attributes"`
	Price      float64            `bson:"price" json:"price"`
	Discount   float64            `bson:"discount" json:"discount"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Images     []string           `bson:"images" json:"images"`
}

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Category        primitive.ObjectID `bson:"category" json:"category"`
	VendorID        primitive.ObjectID `bson:"vendor" json:"vendor"`
	Tags            StringList         `bson:"tags" json:"tags"`
	IsReturnAllowed bool               `bson:"isReturnAllowed" json:"isReturnAllowed"`
	IsVisible       bool               `bson:"isVisible" json:"isVisible"`
	Variations      []Variation        `bson:"variations" json:"variations"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
