package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorInfo holds the storefront details a vendor fills in during signup.
type VendorInfo struct {
	ShopName    string `bson:"shopName" json:"shopName"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// VendorAddress keeps the serviced postal codes alongside the street address.
type VendorAddress struct {
	Line        string     `bson:"line" json:"line"`
	City        string     `bson:"city" json:"city"`
	PostalCodes StringList `bson:"postalCodes" json:"postalCodes"`
}

type VendorLocation struct {
	Address VendorAddress `bson:"address" json:"address"`
	Lat     float64       `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     float64       `bson:"lng,omitempty" json:"lng,omitempty"`
}

type BankDetails struct {
	AccountHolder string `bson:"accountHolder,omitempty" json:"accountHolder,omitempty"`
	AccountNumber string `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
	IFSC          string `bson:"ifsc,omitempty" json:"ifsc,omitempty"`
	BankName      string `bson:"bankName,omitempty" json:"bankName,omitempty"`
}

type UpiDetails struct {
	UpiID   string `bson:"upiId,omitempty" json:"upiId,omitempty"`
	UpiName string `bson:"upiName,omitempty" json:"upiName,omitempty"`
}

// Vendor is a marketplace seller account. Admin accounts live in the same
// collection with role "admin" and no storefront fields.
type Vendor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	VendorInfo   VendorInfo         `bson:"vendorInfo" json:"vendorInfo"`
	Location     VendorLocation     `bson:"location" json:"location"`
	Documents    []string           `bson:"documents" json:"documents"`
	BankDetails  BankDetails        `bson:"bankDetails,omitempty" json:"bankDetails,omitempty"`
	UpiDetails   UpiDetails         `bson:"upiDetails,omitempty" json:"upiDetails,omitempty"`
	IsRestricted bool               `bson:"isRestricted" json:"isRestricted"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
