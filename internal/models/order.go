package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a single product line inside an order. Price and discount are
// captured at purchase time so later catalog edits do not rewrite history.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Discount  float64            `bson:"discount" json:"discount"`
}

// OrderCustomer captures lightweight customer contact details for an order.
type OrderCustomer struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// Order is the persisted order document. orderStatus and paymentStatus are
// independent workflow values; the three settlement fields are admin-only
// payout toggles updated one at a time.
type Order struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	ShortID             string              `bson:"shortId" json:"shortId"`
	Customer            OrderCustomer       `bson:"customer" json:"customer"`
	ShippingAddress     string              `bson:"shippingAddress" json:"shippingAddress"`
	VendorID            primitive.ObjectID  `bson:"vendor" json:"vendor"`
	Products            []OrderItem         `bson:"products" json:"products"`
	OrderStatus         string              `bson:"orderStatus" json:"orderStatus"`
	PaymentStatus       string              `bson:"paymentStatus" json:"paymentStatus"`
	VendorPaymentStatus string              `bson:"vendorPaymentStatus" json:"vendorPaymentStatus"`
	DriverEarningStatus string              `bson:"driverEarningStatus" json:"driverEarningStatus"`
	FloatingCashStatus  string              `bson:"floatingCashStatus" json:"floatingCashStatus"`
	DriverID            *primitive.ObjectID `bson:"driver,omitempty" json:"driver,omitempty"`
	TotalAmount         float64             `bson:"totalAmount" json:"totalAmount"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
}

// ChatOrder is an order created from a conversational flow. It carries the
// original free-text request and its products stay editable, so totalAmount
// is recomputed on every amount update.
type ChatOrder struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ShortID       string             `bson:"shortId" json:"shortId"`
	Customer      OrderCustomer      `bson:"customer" json:"customer"`
	VendorID      primitive.ObjectID `bson:"vendor" json:"vendor"`
	OrderMessage  string             `bson:"orderMessage" json:"orderMessage"`
	Products      []OrderItem        `bson:"products" json:"products"`
	OrderStatus   string             `bson:"orderStatus" json:"orderStatus"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
