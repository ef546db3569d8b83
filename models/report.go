package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportStatus of a passenger lost-item report
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportMatched   ReportStatus = "matched"
	ReportUnmatched ReportStatus = "unmatched"
)

func (s ReportStatus) Valid() bool {
	return s == ReportPending || s == ReportMatched || s == ReportUnmatched
}

// LostItemReport is a passenger-initiated "I lost something" report
type LostItemReport struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CustomerEmail   string             `json:"customerEmail" bson:"customerEmail"`
	FlightID        primitive.ObjectID `json:"flightId" bson:"flight"`
	ItemDescription string             `json:"itemDescription" bson:"itemDescription"`
	Status          ReportStatus       `json:"status" bson:"status"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ReportView is a report with the unclaimed items that may match it
type ReportView struct {
	Report        *LostItemReport `json:"report"`
	Flight        *Flight         `json:"flight,omitempty"`
	MatchingItems []LostItemView  `json:"matchingItems"`
}

// ReportSummary is a report with its flight populated
type ReportSummary struct {
	LostItemReport
	Flight *Flight `json:"flight,omitempty"`
}
