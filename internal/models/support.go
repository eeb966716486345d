package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FAQ struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Question  string             `bson:"question" json:"question"`
	Answer    string             `bson:"answer" json:"answer"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Inquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Message   string             `bson:"message" json:"message"`
	IsHandled bool               `bson:"isHandled" json:"isHandled"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type SupportTicket struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	VendorID  *primitive.ObjectID `bson:"vendor,omitempty" json:"vendor,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Settings is the singleton platform configuration document.
type Settings struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SupportEmail    string             `bson:"supportEmail" json:"supportEmail"`
	SupportPhone    string             `bson:"supportPhone" json:"supportPhone"`
	DeliveryFee     float64            `bson:"deliveryFee" json:"deliveryFee"`
	MinimumOrder    float64            `bson:"minimumOrder" json:"minimumOrder"`
	CommissionRate  float64            `bson:"commissionRate" json:"commissionRate"`
	MaintenanceMode bool               `bson:"maintenanceMode" json:"maintenanceMode"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
