package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"github.com/HSouheill/lostfound_backend/security"
	"github.com/HSouheill/lostfound_backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Placeholders for flights first seen through an item submission
const (
	unknownAirport      = "TBD"
	defaultFlightSpan   = 2 * time.Hour
	normalizedImageMIME = "image/jpeg"
)

// ItemService records found items and serves the staff item views
type ItemService struct {
	Deps
	populator
}

func NewItemService(d Deps) *ItemService {
	return &ItemService{Deps: d, populator: d.newPopulator()}
}

// Create records a found item. The flight and seat are created on first
// use, the photo is stored and analysed, and passengers in the same row are
// emailed the claim link.
func (s *ItemService) Create(ctx context.Context, req models.CreateLostItemRequest) (*models.LostItemView, error) {
	name := utils.SanitizeInput(req.ItemName)
	if name == "" {
		return nil, newError(ErrInvalidInput, "Item name is required")
	}
	description := utils.SanitizeInput(req.ItemDescription)
	flightNumber := strings.ToUpper(strings.TrimSpace(req.FlightNumber))
	seatNumber := strings.ToUpper(strings.TrimSpace(req.SeatNumber))

	flight, err := s.findOrCreateFlight(ctx, flightNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve flight: %w", err)
	}
	seat, err := s.findOrCreateSeat(ctx, flight.ID, seatNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seat: %w", err)
	}

	item := &models.LostItem{
		FlightID:        flight.ID,
		SeatID:          seat.ID,
		ItemName:        name,
		ItemDescription: description,
		Status:          models.StatusUnclaimed,
	}

	if len(req.Image) > 0 {
		url, analysis, err := s.storeImage(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		item.ItemImageURL = url
		if analysis != nil {
			item.ItemDescription = appendAnalysis(description, analysis)
		}
	}

	code, err := security.GenerateCollectionCode()
	if err != nil {
		s.discardImage(item.ItemImageURL)
		return nil, fmt.Errorf("failed to generate collection code: %w", err)
	}
	item.CollectionCode = code
	item.ClaimToken = security.GenerateClaimToken()

	_, dataURL, err := s.QR.ClaimQR(item.ClaimToken)
	if err != nil {
		s.discardImage(item.ItemImageURL)
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	item.QRCodeURL = dataURL

	if err := s.Items.Create(ctx, item); err != nil {
		s.discardImage(item.ItemImageURL)
		return nil, fmt.Errorf("failed to create lost item: %w", err)
	}
	s.Metrics.ItemsCreated.Inc()
	s.Log.Info("Lost item recorded", "itemId", item.ID.Hex(), "flight", flight.FlightNumber, "seat", seat.SeatNumber)

	nctx, cancel := s.external(ctx)
	sent := s.Notifier.NotifyRow(nctx, item, flight, seat)
	cancel()
	s.Log.Debug("Row notifications sent", "itemId", item.ID.Hex(), "count", sent)

	view := &models.LostItemView{LostItem: *item, Flight: flight, Seat: seat}
	s.Events.Publish(EventItemCreated, "New lost item recorded on flight "+flight.FlightNumber, view.Public())
	return view, nil
}

func (s *ItemService) findOrCreateFlight(ctx context.Context, flightNumber string) (*models.Flight, error) {
	flight, err := s.Flights.FindByNumber(ctx, flightNumber)
	if err == nil {
		return flight, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	flight = &models.Flight{
		FlightNumber:    flightNumber,
		OriginCode:      unknownAirport,
		DestinationCode: unknownAirport,
		DepartureTime:   now,
		ArrivalTime:     now.Add(defaultFlightSpan),
	}
	if err := s.Flights.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.Log.Info("Created flight from item submission", "flight", flightNumber)
	return flight, nil
}

func (s *ItemService) findOrCreateSeat(ctx context.Context, flightID primitive.ObjectID, seatNumber string) (*models.Seat, error) {
	seat, err := s.Seats.FindByFlightAndNumber(ctx, flightID, seatNumber)
	if err == nil {
		return seat, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	seat = &models.Seat{FlightID: flightID, SeatNumber: seatNumber}
	err = s.Seats.Create(ctx, seat)
	if errors.Is(err, repositories.ErrDuplicate) {
		// Another submission created it first
		return s.Seats.FindByFlightAndNumber(ctx, flightID, seatNumber)
	}
	if err != nil {
		return nil, err
	}
	return seat, nil
}

// storeImage normalizes and uploads a photo, then asks the analyzer to
// describe it. Analysis failures are logged and leave analysis nil.
func (s *ItemService) storeImage(ctx context.Context, raw []byte) (string, *models.ImageAnalysis, error) {
	if _, err := utils.DetectImageType(raw); err != nil {
		return "", nil, newError(ErrInvalidInput, "Only jpg, jpeg, png and gif images are allowed")
	}
	normalized, err := utils.NormalizeImage(raw)
	if err != nil {
		return "", nil, newError(ErrInvalidInput, "Invalid image file")
	}

	uctx, cancel := s.external(ctx)
	url, err := s.Store.Upload(uctx, normalized, normalizedImageMIME)
	cancel()
	if err != nil {
		s.Log.Error("Failed to upload image", "error", err)
		return "", nil, newError(ErrUpstream, "Failed to upload image")
	}

	if s.Analyzer == nil {
		return url, nil, nil
	}
	actx, cancel := s.external(ctx)
	defer cancel()
	analysis, err := s.Analyzer.AnalyzeImage(actx, normalized, normalizedImageMIME)
	if err != nil {
		s.failed("image_analysis", err, "url", url)
		return url, nil, nil
	}
	return url, analysis, nil
}

// discardImage removes an uploaded photo whose item was never stored
func (s *ItemService) discardImage(url string) {
	if url == "" {
		return
	}
	ctx, cancel := s.external(context.Background())
	defer cancel()
	if err := s.Store.Delete(ctx, url); err != nil {
		s.failed("image_cleanup", err, "url", url)
	}
}

func appendAnalysis(description string, analysis *models.ImageAnalysis) string {
	text := DescribeAnalysis(analysis)
	if description == "" {
		return text
	}
	return description + "\n\n" + text
}

// List returns items newest first. An unknown flight number yields no items.
func (s *ItemService) List(ctx context.Context, filter models.LostItemFilter) ([]models.LostItemView, error) {
	repoFilter := repositories.LostItemFilter{Status: filter.Status}

	if number := strings.TrimSpace(filter.FlightNumber); number != "" {
		flight, err := s.Flights.FindByNumber(ctx, strings.ToUpper(number))
		if errors.Is(err, repositories.ErrNotFound) {
			return []models.LostItemView{}, nil
		}
		if err != nil {
			return nil, err
		}
		repoFilter.FlightID = &flight.ID
	}

	items, err := s.Items.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, items)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if search == "" {
		return views, nil
	}
	matched := views[:0]
	for _, v := range views {
		if matchesSearch(v, search) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

func matchesSearch(v models.LostItemView, search string) bool {
	fields := []string{v.ItemName, v.ItemDescription}
	if v.Flight != nil {
		fields = append(fields, v.Flight.FlightNumber)
	}
	if v.Seat != nil {
		fields = append(fields, v.Seat.SeatNumber)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// Get looks an item up by id or, failing that, by claim token
func (s *ItemService) Get(ctx context.Context, idOrToken string) (*models.LostItemView, error) {
	var (
		item *models.LostItem
		err  error
	)
	if id, parseErr := primitive.ObjectIDFromHex(idOrToken); parseErr == nil {
		item, err = s.Items.FindByID(ctx, id)
	} else {
		item, err = s.Items.FindByToken(ctx, idOrToken)
	}
	if err != nil {
		return nil, notFound(err, "Lost item not found")
	}
	return s.view(ctx, item)
}

// Update edits item details. A status change is only allowed from unclaimed
// to claimed; shipping goes through the shipping flow.
func (s *ItemService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateLostItemRequest) (*models.LostItemView, error) {
	current, err := s.Items.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Lost item not found")
	}

	if req.Status != nil && *req.Status != current.Status {
		if *req.Status != models.StatusClaimed || !current.Status.CanTransitionTo(*req.Status) {
			return nil, newError(ErrInvalidTransition, fmt.Sprintf("Cannot change status from %s to %s", current.Status, *req.Status)).
				with("status", current.Status)
		}
	}

	changes := repositories.LostItemChanges{ItemImageURL: req.ItemImageURL}
	if req.ItemName != nil {
		name := utils.SanitizeInput(*req.ItemName)
		if name == "" {
			return nil, newError(ErrInvalidInput, "Item name cannot be empty")
		}
		changes.ItemName = &name
	}
	if req.ItemDescription != nil {
		description := utils.SanitizeInput(*req.ItemDescription)
		changes.ItemDescription = &description
	}

	var normalized []byte
	if req.Image != nil {
		raw, err := utils.DecodeBase64(*req.Image)
		if err != nil {
			return nil, newError(ErrInvalidInput, "Invalid image data")
		}
		if _, err := utils.DetectImageType(raw); err != nil {
			return nil, newError(ErrInvalidInput, "Only jpg, jpeg, png and gif images are allowed")
		}
		normalized, err = utils.NormalizeImage(raw)
		if err != nil {
			return nil, newError(ErrInvalidInput, "Invalid image file")
		}
	}

	var uploaded, replacedImage string
	if normalized != nil {
		uctx, cancel := s.external(ctx)
		url, err := s.Store.Upload(uctx, normalized, normalizedImageMIME)
		cancel()
		if err != nil {
			s.Log.Error("Failed to upload image", "itemId", id.Hex(), "error", err)
			return nil, newError(ErrUpstream, "Failed to upload image")
		}
		uploaded = url
		changes.ItemImageURL = &uploaded
		replacedImage = current.ItemImageURL
	}

	// The status moves first so a lost race leaves the details untouched.
	event := EventItemUpdated
	if req.Status != nil && *req.Status == models.StatusClaimed && current.Status == models.StatusUnclaimed {
		_, err := s.Items.TransitionFromUnclaimed(ctx, id, models.StatusUpdate{Status: models.StatusClaimed, At: time.Now().UTC()})
		if err != nil {
			if uploaded != "" {
				s.discardImage(uploaded)
			}
			if errors.Is(err, repositories.ErrConflict) {
				return nil, newError(ErrAlreadyClaimed, "Item has already been claimed")
			}
			return nil, notFound(err, "Lost item not found")
		}
		event = EventItemClaimed
		s.Log.Info("Item marked claimed by staff", "itemId", id.Hex())
	}

	item, err := s.Items.UpdateDetails(ctx, id, changes)
	if err != nil {
		if uploaded != "" {
			s.discardImage(uploaded)
		}
		return nil, notFound(err, "Lost item not found")
	}
	if replacedImage != "" && replacedImage != item.ItemImageURL {
		s.discardImage(replacedImage)
	}

	view, err := s.view(ctx, item)
	if err != nil {
		return nil, err
	}
	s.Events.Publish(event, "Lost item "+item.ItemName+" updated", view.Public())
	return view, nil
}

// Delete removes an item and its stored photo
func (s *ItemService) Delete(ctx context.Context, id primitive.ObjectID) error {
	item, err := s.Items.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "Lost item not found")
	}
	if err := s.Items.Delete(ctx, id); err != nil {
		return notFound(err, "Lost item not found")
	}
	s.discardImage(item.ItemImageURL)
	s.Log.Info("Lost item deleted", "itemId", id.Hex())
	s.Events.Publish(EventItemDeleted, "Lost item "+item.ItemName+" deleted", map[string]string{"id": id.Hex()})
	return nil
}
