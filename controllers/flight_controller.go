package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/lostfound_backend/models"
)

type FlightService interface {
	List(ctx context.Context, flightNumber string) ([]models.Flight, error)
	Create(ctx context.Context, req models.CreateFlightRequest) (*models.Flight, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.FlightDetail, error)
	Items(ctx context.Context, id primitive.ObjectID) ([]models.LostItemView, error)
	Update(ctx context.Context, id primitive.ObjectID, req models.UpdateFlightRequest) (*models.Flight, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SeatService interface {
	List(ctx context.Context, flightID *primitive.ObjectID) ([]models.Seat, error)
	Create(ctx context.Context, req models.CreateSeatRequest) (*models.Seat, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Seat, error)
	Update(ctx context.Context, id primitive.ObjectID, req models.UpdateSeatRequest) (*models.Seat, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// FlightController manages flights and their seats
type FlightController struct {
	flights FlightService
	seats   SeatService
}

func NewFlightController(flights FlightService, seats SeatService) *FlightController {
	return &FlightController{flights: flights, seats: seats}
}

func (fc *FlightController) ListFlights(c echo.Context) error {
	flights, err := fc.flights.List(c.Request().Context(), c.QueryParam("flightNumber"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, flights)
}

func (fc *FlightController) CreateFlight(c echo.Context) error {
	var req models.CreateFlightRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	flight, err := fc.flights.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, flight)
}

// GetFlight returns the flight with its seats and lost items
func (fc *FlightController) GetFlight(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := fc.flights.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (fc *FlightController) GetFlightItems(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	items, err := fc.flights.Items(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (fc *FlightController) UpdateFlight(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateFlightRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	flight, err := fc.flights.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, flight)
}

func (fc *FlightController) DeleteFlight(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := fc.flights.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Flight and associated seats deleted successfully"})
}

// ListSeats supports ?flight=<id>
func (fc *FlightController) ListSeats(c echo.Context) error {
	flightID, err := optionalID(c, "flight")
	if err != nil {
		return err
	}
	seats, err := fc.seats.List(c.Request().Context(), flightID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seats)
}

func (fc *FlightController) CreateSeat(c echo.Context) error {
	var req models.CreateSeatRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	seat, err := fc.seats.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, seat)
}

func (fc *FlightController) GetSeat(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	seat, err := fc.seats.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seat)
}

func (fc *FlightController) UpdateSeat(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateSeatRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	seat, err := fc.seats.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seat)
}

func (fc *FlightController) DeleteSeat(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := fc.seats.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Seat deleted successfully"})
}
