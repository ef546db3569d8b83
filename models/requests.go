package models

import "time"

// CreateLostItemRequest carries the multipart submission fields
type CreateLostItemRequest struct {
	ItemName        string `form:"itemName" validate:"required,max=255"`
	ItemDescription string `form:"itemDescription" validate:"max=5000"`
	FlightNumber    string `form:"flightNumber" validate:"required,min=2,max=10"`
	SeatNumber      string `form:"seatNumber" validate:"required,max=10"`

	Image            []byte `form:"-"`
	ImageContentType string `form:"-"`
}

// UpdateLostItemRequest is a partial update; nil fields are left alone
type UpdateLostItemRequest struct {
	ItemName        *string     `json:"itemName,omitempty" validate:"omitempty,min=1,max=255"`
	ItemDescription *string     `json:"itemDescription,omitempty" validate:"omitempty,max=5000"`
	ItemImageURL    *string     `json:"itemImageUrl,omitempty" validate:"omitempty,url"`
	Image           *string     `json:"image,omitempty" validate:"omitempty,min=1"` // base64, optionally a data URL
	Status          *ItemStatus `json:"status,omitempty" validate:"omitempty,oneof=unclaimed claimed shipped"`
}

// LostItemFilter narrows the staff item list
type LostItemFilter struct {
	Status       ItemStatus `query:"status" validate:"omitempty,oneof=unclaimed claimed shipped"`
	FlightNumber string     `query:"flightNumber"`
	Search       string     `query:"search" validate:"max=100"`
}

// VerifyCodeRequest is the passenger's collection code submission
type VerifyCodeRequest struct {
	VerificationCode string `json:"verificationCode" validate:"required,max=32"`
}

// ShippingRequest is the passenger's delivery address
type ShippingRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required,min=5,max=500"`
	City       string `json:"city" validate:"required,min=2,max=200"`
	State      string `json:"state" validate:"required,min=2,max=200"`
	PostalCode string `json:"postalCode" validate:"required,min=4,max=20"`
	Country    string `json:"country" validate:"required,min=2,max=200"`
}

// Details converts the request into stored shipping details
func (r ShippingRequest) Details() ShippingDetails {
	return ShippingDetails{
		Name:       r.Name,
		Email:      r.Email,
		Address:    r.Address,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

// CreateFlightRequest model
type CreateFlightRequest struct {
	FlightNumber    string    `json:"flightNumber" validate:"required,min=2,max=10"`
	OriginCode      string    `json:"originCode" validate:"required,len=3,alpha"`
	DestinationCode string    `json:"destinationCode" validate:"required,len=3,alpha"`
	DepartureTime   time.Time `json:"departureTime" validate:"required"`
	ArrivalTime     time.Time `json:"arrivalTime" validate:"required,gtfield=DepartureTime"`
}

// UpdateFlightRequest model
type UpdateFlightRequest struct {
	FlightNumber    *string    `json:"flightNumber,omitempty" validate:"omitempty,min=2,max=10"`
	OriginCode      *string    `json:"originCode,omitempty" validate:"omitempty,len=3,alpha"`
	DestinationCode *string    `json:"destinationCode,omitempty" validate:"omitempty,len=3,alpha"`
	DepartureTime   *time.Time `json:"departureTime,omitempty"`
	ArrivalTime     *time.Time `json:"arrivalTime,omitempty"`
}

// CreateSeatRequest model
type CreateSeatRequest struct {
	FlightID      string `json:"flight" validate:"required,mongodb"`
	SeatNumber    string `json:"seatNumber" validate:"required,min=1,max=10"`
	CustomerEmail string `json:"customerEmail,omitempty" validate:"omitempty,email"`
}

// UpdateSeatRequest model. An empty customerEmail clears it.
type UpdateSeatRequest struct {
	SeatNumber    *string `json:"seatNumber,omitempty" validate:"omitempty,min=1,max=10"`
	CustomerEmail *string `json:"customerEmail,omitempty" validate:"omitempty,eq=|email"`
}

// CreateClaimRequest model
type CreateClaimRequest struct {
	ItemID          string        `json:"item" validate:"required,mongodb"`
	CustomerEmail   string        `json:"customerEmail" validate:"required,email"`
	ClaimMethod     ClaimMethod   `json:"claimMethod" validate:"required,oneof=in-person shipped"`
	ShippingAddress string        `json:"shippingAddress,omitempty" validate:"required_if=ClaimMethod shipped,max=1000"`
	PaymentStatus   PaymentStatus `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending completed"`
}

// UpdateClaimRequest model
type UpdateClaimRequest struct {
	CustomerEmail   *string        `json:"customerEmail,omitempty" validate:"omitempty,email"`
	ShippingAddress *string        `json:"shippingAddress,omitempty" validate:"omitempty,max=1000"`
	PaymentStatus   *PaymentStatus `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending completed"`
}

// CreateReportRequest model
type CreateReportRequest struct {
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
	FlightID        string `json:"flight" validate:"required,mongodb"`
	ItemDescription string `json:"itemDescription" validate:"required,max=5000"`
}

// UpdateReportRequest model
type UpdateReportRequest struct {
	CustomerEmail   *string       `json:"customerEmail,omitempty" validate:"omitempty,email"`
	ItemDescription *string       `json:"itemDescription,omitempty" validate:"omitempty,min=1,max=5000"`
	Status          *ReportStatus `json:"status,omitempty" validate:"omitempty,oneof=pending matched unmatched"`
}

// AnalyzeImageRequest model
type AnalyzeImageRequest struct {
	Image string `json:"image" validate:"required"`
}

// TranscribeRequest model
type TranscribeRequest struct {
	Audio string `json:"audio" validate:"required"`
}

// LoginRequest model
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse model
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
