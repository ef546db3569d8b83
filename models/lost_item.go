package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemStatus is the lifecycle state of a lost item
type ItemStatus string

const (
	StatusUnclaimed ItemStatus = "unclaimed"
	StatusClaimed   ItemStatus = "claimed"
	StatusShipped   ItemStatus = "shipped"
)

// Valid reports whether s is a known status
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusUnclaimed, StatusClaimed, StatusShipped:
		return true
	}
	return false
}

// CanTransitionTo reports whether an item in state s may move to next.
// Only unclaimed items move, and only forward to claimed or shipped.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	return s == StatusUnclaimed && (next == StatusClaimed || next == StatusShipped)
}

// ShippingDetails is attached to an item once it has been shipped
type ShippingDetails struct {
	Name            string `json:"name" bson:"name"`
	Email           string `json:"email" bson:"email"`
	Address         string `json:"address" bson:"address"`
	City            string `json:"city" bson:"city"`
	State           string `json:"state" bson:"state"`
	PostalCode      string `json:"postalCode" bson:"postalCode"`
	Country         string `json:"country" bson:"country"`
	TrackingNumber  string `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	PaymentIntentID string `json:"paymentIntentId,omitempty" bson:"paymentIntentId,omitempty"`
}

// LostItem model
type LostItem struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FlightID        primitive.ObjectID `json:"flightId" bson:"flight"`
	SeatID          primitive.ObjectID `json:"seatId" bson:"seat"`
	ItemName        string             `json:"itemName" bson:"itemName"`
	ItemDescription string             `json:"itemDescription" bson:"itemDescription"`
	ItemImageURL    string             `json:"itemImageUrl,omitempty" bson:"itemImageUrl,omitempty"`
	Status          ItemStatus         `json:"status" bson:"status"`
	QRCodeURL       string             `json:"qrCodeUrl,omitempty" bson:"qrCodeUrl,omitempty"` // PNG data URL
	ClaimToken      string             `json:"claimToken" bson:"claimToken"`
	CollectionCode  string             `json:"collectionCode,omitempty" bson:"collectionCode"`
	ClaimedAt       *time.Time         `json:"claimedAt,omitempty" bson:"claimedAt,omitempty"`
	ShippingDetails *ShippingDetails   `json:"shippingDetails,omitempty" bson:"shippingDetails,omitempty"`
	ShippedAt       *time.Time         `json:"shippedAt,omitempty" bson:"shippedAt,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// LostItemView is a lost item with its flight and seat populated
type LostItemView struct {
	LostItem
	Flight *Flight `json:"flight,omitempty"`
	Seat   *Seat   `json:"seat,omitempty"`
}

// Public returns a copy safe to show to anyone holding the claim token
func (v LostItemView) Public() LostItemView {
	v.CollectionCode = ""
	return v
}

// StatusUpdate describes a forward transition out of unclaimed
type StatusUpdate struct {
	Status          ItemStatus
	At              time.Time
	ShippingDetails *ShippingDetails
}
