package services

import (
	"context"
	"errors"
	"strings"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FlightService manages flights and their seat maps
type FlightService struct {
	Deps
	populator
}

func NewFlightService(d Deps) *FlightService {
	return &FlightService{Deps: d, populator: d.newPopulator()}
}

func (s *FlightService) List(ctx context.Context, flightNumber string) ([]models.Flight, error) {
	return s.Flights.List(ctx, strings.ToUpper(strings.TrimSpace(flightNumber)))
}

func (s *FlightService) Create(ctx context.Context, req models.CreateFlightRequest) (*models.Flight, error) {
	flight := &models.Flight{
		FlightNumber:    strings.ToUpper(strings.TrimSpace(req.FlightNumber)),
		OriginCode:      strings.ToUpper(req.OriginCode),
		DestinationCode: strings.ToUpper(req.DestinationCode),
		DepartureTime:   req.DepartureTime.UTC(),
		ArrivalTime:     req.ArrivalTime.UTC(),
	}
	if !flight.DepartureTime.Before(flight.ArrivalTime) {
		return nil, newError(ErrInvalidInput, "Departure time must be before arrival time")
	}
	if err := s.Flights.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.Log.Info("Flight created", "flightId", flight.ID.Hex(), "flight", flight.FlightNumber)
	return flight, nil
}

// Get returns the flight with its seats and lost items
func (s *FlightService) Get(ctx context.Context, id primitive.ObjectID) (*models.FlightDetail, error) {
	flight, err := s.Flights.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Flight not found")
	}
	seats, err := s.Seats.ListByFlight(ctx, &id)
	if err != nil {
		return nil, err
	}
	items, err := s.items(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.FlightDetail{Flight: flight, Seats: seats, LostItems: items}, nil
}

// Items lists the lost items recorded on a flight
func (s *FlightService) Items(ctx context.Context, id primitive.ObjectID) ([]models.LostItemView, error) {
	if _, err := s.Flights.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "Flight not found")
	}
	return s.items(ctx, id)
}

func (s *FlightService) items(ctx context.Context, id primitive.ObjectID) ([]models.LostItemView, error) {
	items, err := s.Deps.Items.List(ctx, repositories.LostItemFilter{FlightID: &id})
	if err != nil {
		return nil, err
	}
	return s.views(ctx, items)
}

// Update applies a partial update. Departure must stay before arrival
// after merging with the stored times.
func (s *FlightService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateFlightRequest) (*models.Flight, error) {
	flight, err := s.Flights.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Flight not found")
	}

	if req.FlightNumber != nil {
		flight.FlightNumber = strings.ToUpper(strings.TrimSpace(*req.FlightNumber))
	}
	if req.OriginCode != nil {
		flight.OriginCode = strings.ToUpper(*req.OriginCode)
	}
	if req.DestinationCode != nil {
		flight.DestinationCode = strings.ToUpper(*req.DestinationCode)
	}
	if req.DepartureTime != nil {
		flight.DepartureTime = req.DepartureTime.UTC()
	}
	if req.ArrivalTime != nil {
		flight.ArrivalTime = req.ArrivalTime.UTC()
	}
	if !flight.DepartureTime.Before(flight.ArrivalTime) {
		return nil, newError(ErrInvalidInput, "Departure time must be before arrival time")
	}

	if err := s.Flights.Update(ctx, flight); err != nil {
		return nil, notFound(err, "Flight not found")
	}
	return flight, nil
}

// Delete removes a flight and its seats. Flights with lost items are kept.
func (s *FlightService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.Flights.FindByID(ctx, id); err != nil {
		return notFound(err, "Flight not found")
	}

	hasItems, err := s.Deps.Items.ExistsByFlight(ctx, id)
	if err != nil {
		return err
	}
	if hasItems {
		return newError(ErrFlightHasItems, "Cannot delete flight with associated lost items")
	}

	if err := s.Seats.DeleteByFlight(ctx, id); err != nil {
		return err
	}
	if err := s.Flights.Delete(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	s.Log.Info("Flight deleted", "flightId", id.Hex())
	return nil
}
