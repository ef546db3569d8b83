package services

import (
	"context"
	"testing"
	"time"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFlightService_CreateAndUpdate(t *testing.T) {
	e := newEnv(nil)
	svc := NewFlightService(e.deps)
	ctx := context.Background()
	departure := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	flight, err := svc.Create(ctx, models.CreateFlightRequest{
		FlightNumber:    "ba123",
		OriginCode:      "lhr",
		DestinationCode: "cdg",
		DepartureTime:   departure,
		ArrivalTime:     departure.Add(90 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, "BA123", flight.FlightNumber)
	assert.Equal(t, "LHR", flight.OriginCode)
	assert.Equal(t, "CDG", flight.DestinationCode)

	// Merged with the stored arrival this would land before departure
	late := departure.Add(3 * time.Hour)
	_, err = svc.Update(ctx, flight.ID, models.UpdateFlightRequest{DepartureTime: &late})
	assert.ErrorIs(t, err, ErrInvalidInput)

	arrival := departure.Add(4 * time.Hour)
	dest := "jfk"
	updated, err := svc.Update(ctx, flight.ID, models.UpdateFlightRequest{
		DepartureTime:   &late,
		ArrivalTime:     &arrival,
		DestinationCode: &dest,
	})
	require.NoError(t, err)
	assert.Equal(t, "JFK", updated.DestinationCode)
	assert.True(t, updated.DepartureTime.Equal(late))

	_, err = svc.Update(ctx, primitive.NewObjectID(), models.UpdateFlightRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFlightService_CreateRejectsBackwardsTimes(t *testing.T) {
	e := newEnv(nil)
	now := time.Now()

	_, err := NewFlightService(e.deps).Create(context.Background(), models.CreateFlightRequest{
		FlightNumber:    "BA1",
		OriginCode:      "LHR",
		DestinationCode: "CDG",
		DepartureTime:   now,
		ArrivalTime:     now,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFlightService_GetDetail(t *testing.T) {
	e := newEnv(nil)
	svc := NewFlightService(e.deps)
	flight := e.addFlight("BA123", map[string]string{"12A": "", "12B": ""})
	e.submit("BA123", "12A", "Scarf")

	detail, err := svc.Get(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Equal(t, "BA123", detail.Flight.FlightNumber)
	assert.Len(t, detail.Seats, 2)
	require.Len(t, detail.LostItems, 1)
	require.NotNil(t, detail.LostItems[0].Seat)
	assert.Equal(t, "12A", detail.LostItems[0].Seat.SeatNumber)

	items, err := svc.Items(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.Items(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFlightService_DeleteGuardsItems(t *testing.T) {
	e := newEnv(nil)
	svc := NewFlightService(e.deps)
	ctx := context.Background()

	busy := e.addFlight("BA123", nil)
	e.submit("BA123", "12A", "Scarf")
	err := svc.Delete(ctx, busy.ID)
	assert.ErrorIs(t, err, ErrFlightHasItems)
	assert.EqualError(t, err, "Cannot delete flight with associated lost items")

	empty := e.addFlight("BA456", map[string]string{"1A": "", "2A": ""})
	require.NoError(t, svc.Delete(ctx, empty.ID))
	seats, err := e.seats.ListByFlight(ctx, &empty.ID)
	require.NoError(t, err)
	assert.Empty(t, seats)

	assert.ErrorIs(t, svc.Delete(ctx, empty.ID), ErrNotFound)
}

func TestSeatService(t *testing.T) {
	e := newEnv(nil)
	svc := NewSeatService(e.deps)
	ctx := context.Background()
	flight := e.addFlight("BA123", nil)

	seat, err := svc.Create(ctx, models.CreateSeatRequest{FlightID: flight.ID.Hex(), SeatNumber: "12a", CustomerEmail: "Jane@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "12A", seat.SeatNumber)

	_, err = svc.Create(ctx, models.CreateSeatRequest{FlightID: flight.ID.Hex(), SeatNumber: "12A"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, models.CreateSeatRequest{FlightID: primitive.NewObjectID().Hex(), SeatNumber: "1A"})
	assert.ErrorIs(t, err, ErrNotFound)

	empty := ""
	updated, err := svc.Update(ctx, seat.ID, models.UpdateSeatRequest{CustomerEmail: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.CustomerEmail)

	e.submit("BA123", "12A", "Scarf")
	assert.ErrorIs(t, svc.Delete(ctx, seat.ID), ErrSeatHasItems)

	other, err := svc.Create(ctx, models.CreateSeatRequest{FlightID: flight.ID.Hex(), SeatNumber: "20F"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, other.ID))
	_, err = svc.Get(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	seats, err := svc.List(ctx, &flight.ID)
	require.NoError(t, err)
	assert.Len(t, seats, 1)
}
