package services

import (
	"context"
	"fmt"
	"time"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/security"
)

// SeedResult summarises a seeding run
type SeedResult struct {
	Flights   int        `json:"flights"`
	Seats     int        `json:"seats"`
	LostItems int        `json:"lostItems"`
	QRCodes   []SeedItem `json:"qrCodes"`
}

// SeedItem lists the claim details of a seeded unclaimed item
type SeedItem struct {
	ItemName       string `json:"itemName"`
	ClaimToken     string `json:"claimToken"`
	CollectionCode string `json:"collectionCode"`
	QRCode         string `json:"qrCode"`
}

type seedFlight struct {
	number, origin, destination string
	departIn, arriveIn          time.Duration
}

type seedLostItem struct {
	name, description, code string
	flight, seat            int
	status                  models.ItemStatus
}

var (
	seedFlights = []seedFlight{
		{"BA999", "LHR", "JFK", 2 * time.Hour, 8 * time.Hour},
		{"BA123", "LHR", "CDG", 2 * time.Hour, 4 * time.Hour},
		{"BA456", "CDG", "LHR", 6 * time.Hour, 8 * time.Hour},
	}
	seedRowSeats = []string{"12A", "12B", "14C"}
	seedItems    = []seedLostItem{
		{"Dell XPS Laptop", "Silver Dell XPS 13 laptop with stickers on the lid", "123456", 1, 0, models.StatusUnclaimed},
		{"Nike Backpack", "Black Nike backpack with a water bottle in the side pocket", "789012", 1, 1, models.StatusUnclaimed},
		{"Folding Umbrella", "Compact navy blue folding umbrella", "345678", 2, 0, models.StatusClaimed},
	}
)

// SeedService loads demo flights, seats and items
type SeedService struct {
	Deps
}

func NewSeedService(d Deps) *SeedService {
	return &SeedService{Deps: d}
}

// Seed wipes flights, seats and lost items and loads the demo data set.
// It refuses to run unless seeding is enabled.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	if !s.Config.AllowSeed {
		return nil, newError(ErrForbidden, "Seeding is disabled")
	}

	if err := s.Items.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear lost items: %w", err)
	}
	if err := s.Seats.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear seats: %w", err)
	}
	if err := s.Flights.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear flights: %w", err)
	}

	now := time.Now().UTC()
	result := &SeedResult{QRCodes: []SeedItem{}}
	flights := make([]*models.Flight, 0, len(seedFlights))
	for _, f := range seedFlights {
		flight := &models.Flight{
			FlightNumber:    f.number,
			OriginCode:      f.origin,
			DestinationCode: f.destination,
			DepartureTime:   now.Add(f.departIn),
			ArrivalTime:     now.Add(f.arriveIn),
		}
		if err := s.Flights.Create(ctx, flight); err != nil {
			return nil, fmt.Errorf("failed to create flight %s: %w", f.number, err)
		}
		flights = append(flights, flight)
		result.Flights++
	}

	// Row seats with a passenger email on BA123 and BA456, indexed per flight
	rowSeats := make(map[int][]*models.Seat)
	for fi := 1; fi < len(flights); fi++ {
		for _, number := range seedRowSeats {
			seat := &models.Seat{FlightID: flights[fi].ID, SeatNumber: number, CustomerEmail: s.Config.SeedCustomerEmail}
			if err := s.Seats.Create(ctx, seat); err != nil {
				return nil, fmt.Errorf("failed to create seat %s: %w", number, err)
			}
			rowSeats[fi] = append(rowSeats[fi], seat)
			result.Seats++
		}
	}
	for i := 1; i <= 10; i++ {
		seat := &models.Seat{FlightID: flights[0].ID, SeatNumber: fmt.Sprintf("%dA", i)}
		if err := s.Seats.Create(ctx, seat); err != nil {
			return nil, fmt.Errorf("failed to create seat %s: %w", seat.SeatNumber, err)
		}
		result.Seats++
	}

	for _, si := range seedItems {
		item := &models.LostItem{
			FlightID:        flights[si.flight].ID,
			SeatID:          rowSeats[si.flight][si.seat].ID,
			ItemName:        si.name,
			ItemDescription: si.description,
			Status:          si.status,
			ClaimToken:      security.GenerateClaimToken(),
			CollectionCode:  si.code,
		}
		if si.status == models.StatusClaimed {
			claimedAt := now
			item.ClaimedAt = &claimedAt
		}
		_, dataURL, err := s.QR.ClaimQR(item.ClaimToken)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}
		item.QRCodeURL = dataURL

		if err := s.Items.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to create item %s: %w", si.name, err)
		}
		result.LostItems++
		if item.Status == models.StatusUnclaimed {
			result.QRCodes = append(result.QRCodes, SeedItem{
				ItemName:       item.ItemName,
				ClaimToken:     item.ClaimToken,
				CollectionCode: item.CollectionCode,
				QRCode:         item.QRCodeURL,
			})
		}
	}

	s.Log.Warn("Database seeded", "flights", result.Flights, "seats", result.Seats, "lostItems", result.LostItems)
	return result, nil
}
