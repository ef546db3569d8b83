package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification records a passenger email about a found item
type Notification struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CustomerEmail string             `json:"customerEmail" bson:"customerEmail"`
	ItemID        primitive.ObjectID `json:"itemId" bson:"item"`
	SentAt        time.Time          `json:"sentAt" bson:"sentAt"`
}
