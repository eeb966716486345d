package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverPersonalDetails struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

type DriverVehicleDetails struct {
	VehicleType   string `bson:"vehicleType" json:"vehicleType"`
	VehicleNumber string `bson:"vehicleNumber" json:"vehicleNumber"`
	LicenseNumber string `bson:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
}

// Driver is a delivery driver. FloatingCashOwed is the cash-on-delivery amount
// the driver still holds; settling an order's floating cash decrements it.
type Driver struct {
	ID               primitive.ObjectID    `bson:"_id,omitempty" json:"_id"`
	PersonalDetails  DriverPersonalDetails `bson:"personalDetails" json:"personalDetails"`
	VehicleDetails   DriverVehicleDetails  `bson:"vehicleDetails" json:"vehicleDetails"`
	ApprovalStatus   string                `bson:"approvalStatus" json:"approvalStatus"`
	Documents        []string              `bson:"documents" json:"documents"`
	FloatingCashOwed float64               `bson:"floatingCashOwed" json:"floatingCashOwed"`
	CreatedAt        time.Time             `bson:"createdAt" json:"createdAt"`
}
