package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flight model
type Flight struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FlightNumber    string             `json:"flightNumber" bson:"flightNumber"`
	OriginCode      string             `json:"originCode" bson:"originCode"`
	DestinationCode string             `json:"destinationCode" bson:"destinationCode"`
	DepartureTime   time.Time          `json:"departureTime" bson:"departureTime"`
	ArrivalTime     time.Time          `json:"arrivalTime" bson:"arrivalTime"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Seat model. CustomerEmail is the passenger contacted when an item is
// found in the same row.
type Seat struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FlightID      primitive.ObjectID `json:"flightId" bson:"flight"`
	SeatNumber    string             `json:"seatNumber" bson:"seatNumber"`
	CustomerEmail string             `json:"customerEmail,omitempty" bson:"customerEmail,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FlightDetail is the flight page payload
type FlightDetail struct {
	Flight    *Flight        `json:"flight"`
	Seats     []Seat         `json:"seats"`
	LostItems []LostItemView `json:"lostItems"`
}
