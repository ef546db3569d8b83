package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditAction names an event on the public claim flow
type AuditAction string

const (
	AuditItemViewed         AuditAction = "item_viewed"
	AuditVerificationFailed AuditAction = "verification_failed"
	AuditItemClaimed        AuditAction = "item_claimed"
	AuditItemShipped        AuditAction = "item_shipped"
	AuditShippingRequested  AuditAction = "shipping_requested"
)

// Valid reports whether a is a known action
func (a AuditAction) Valid() bool {
	switch a {
	case AuditItemViewed, AuditVerificationFailed, AuditItemClaimed, AuditItemShipped, AuditShippingRequested:
		return true
	}
	return false
}

// AuditLog model
type AuditLog struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Action           AuditAction        `json:"action" bson:"action"`
	ItemID           primitive.ObjectID `json:"itemId" bson:"itemId"`
	Token            string             `json:"token" bson:"token"`
	VerificationCode string             `json:"verificationCode,omitempty" bson:"verificationCode,omitempty"`
	ShippingDetails  *ShippingDetails   `json:"shippingDetails,omitempty" bson:"shippingDetails,omitempty"`
	Timestamp        time.Time          `json:"timestamp" bson:"timestamp"`
}
