package services

import (
	"context"
	"errors"
	"strings"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"github.com/HSouheill/lostfound_backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgSeatExists = "Seat already exists on this flight"

// SeatService manages seats and the passenger emails attached to them
type SeatService struct {
	Deps
}

func NewSeatService(d Deps) *SeatService {
	return &SeatService{Deps: d}
}

// List returns seats, optionally for one flight
func (s *SeatService) List(ctx context.Context, flightID *primitive.ObjectID) ([]models.Seat, error) {
	return s.Seats.ListByFlight(ctx, flightID)
}

func (s *SeatService) Create(ctx context.Context, req models.CreateSeatRequest) (*models.Seat, error) {
	flightID, err := primitive.ObjectIDFromHex(req.FlightID)
	if err != nil {
		return nil, newError(ErrInvalidInput, "Invalid flight id")
	}
	if _, err := s.Flights.FindByID(ctx, flightID); err != nil {
		return nil, notFound(err, "Flight not found")
	}

	seat := &models.Seat{
		FlightID:      flightID,
		SeatNumber:    strings.ToUpper(strings.TrimSpace(req.SeatNumber)),
		CustomerEmail: utils.SanitizeEmail(req.CustomerEmail),
	}
	if err := s.Seats.Create(ctx, seat); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newError(ErrConflict, msgSeatExists)
		}
		return nil, err
	}
	return seat, nil
}

func (s *SeatService) Get(ctx context.Context, id primitive.ObjectID) (*models.Seat, error) {
	seat, err := s.Seats.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Seat not found")
	}
	return seat, nil
}

// Update edits a seat. An empty customer email clears it.
func (s *SeatService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateSeatRequest) (*models.Seat, error) {
	seat, err := s.Seats.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Seat not found")
	}
	if req.SeatNumber != nil {
		seat.SeatNumber = strings.ToUpper(strings.TrimSpace(*req.SeatNumber))
	}
	if req.CustomerEmail != nil {
		seat.CustomerEmail = utils.SanitizeEmail(*req.CustomerEmail)
	}

	if err := s.Seats.Update(ctx, seat); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newError(ErrConflict, msgSeatExists)
		}
		return nil, notFound(err, "Seat not found")
	}
	return seat, nil
}

// Delete removes a seat that no lost item refers to
func (s *SeatService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.Seats.FindByID(ctx, id); err != nil {
		return notFound(err, "Seat not found")
	}
	hasItems, err := s.Items.ExistsBySeat(ctx, id)
	if err != nil {
		return err
	}
	if hasItems {
		return newError(ErrSeatHasItems, "Cannot delete seat with associated lost items")
	}
	return notFound(s.Seats.Delete(ctx, id), "Seat not found")
}
