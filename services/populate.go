package services

import (
	"context"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// populator attaches flights and seats to items
type populator struct {
	flights repositories.FlightRepository
	seats   repositories.SeatRepository
}

func (p populator) views(ctx context.Context, items []models.LostItem) ([]models.LostItemView, error) {
	views := make([]models.LostItemView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	flightIDs := make([]primitive.ObjectID, 0, len(items))
	seatIDs := make([]primitive.ObjectID, 0, len(items))
	seenFlight := make(map[primitive.ObjectID]bool)
	seenSeat := make(map[primitive.ObjectID]bool)
	for _, item := range items {
		if !seenFlight[item.FlightID] {
			seenFlight[item.FlightID] = true
			flightIDs = append(flightIDs, item.FlightID)
		}
		if !seenSeat[item.SeatID] {
			seenSeat[item.SeatID] = true
			seatIDs = append(seatIDs, item.SeatID)
		}
	}

	flights, err := p.flights.FindByIDs(ctx, flightIDs)
	if err != nil {
		return nil, err
	}
	seats, err := p.seats.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil, err
	}

	flightByID := make(map[primitive.ObjectID]*models.Flight, len(flights))
	for i := range flights {
		flightByID[flights[i].ID] = &flights[i]
	}
	seatByID := make(map[primitive.ObjectID]*models.Seat, len(seats))
	for i := range seats {
		seatByID[seats[i].ID] = &seats[i]
	}

	for _, item := range items {
		views = append(views, models.LostItemView{
			LostItem: item,
			Flight:   flightByID[item.FlightID],
			Seat:     seatByID[item.SeatID],
		})
	}
	return views, nil
}

func (p populator) view(ctx context.Context, item *models.LostItem) (*models.LostItemView, error) {
	views, err := p.views(ctx, []models.LostItem{*item})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
