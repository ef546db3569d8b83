package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimMethod is how the passenger collects the item
type ClaimMethod string

const (
	ClaimInPerson ClaimMethod = "in-person"
	ClaimShipped  ClaimMethod = "shipped"
)

// PaymentStatus of a shipped claim
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Claim model. The item's own status is authoritative; a claim only
// records who asked for the item and how.
type Claim struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ItemID          primitive.ObjectID `json:"itemId" bson:"item"`
	CustomerEmail   string             `json:"customerEmail" bson:"customerEmail"`
	ClaimMethod     ClaimMethod        `json:"claimMethod" bson:"claimMethod"`
	ShippingAddress string             `json:"shippingAddress,omitempty" bson:"shippingAddress,omitempty"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus" bson:"paymentStatus"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ClaimView is a claim with its item populated
type ClaimView struct {
	Claim
	Item *LostItemView `json:"item,omitempty"`
}
