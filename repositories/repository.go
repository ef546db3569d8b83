package repositories

import (
	"context"
	"errors"

	"github.com/HSouheill/lostfound_backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no document matches
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional update matched nothing
	ErrConflict = errors.New("conflict")
	// ErrDuplicate is returned on a unique index violation
	ErrDuplicate = errors.New("duplicate key")
)

// FlightRepository persists flights
type FlightRepository interface {
	Create(ctx context.Context, flight *models.Flight) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Flight, error)
	FindByNumber(ctx context.Context, flightNumber string) (*models.Flight, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Flight, error)
	List(ctx context.Context, flightNumber string) ([]models.Flight, error)
	Update(ctx context.Context, flight *models.Flight) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) error
}

// SeatRepository persists seats
type SeatRepository interface {
	Create(ctx context.Context, seat *models.Seat) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Seat, error)
	FindByFlightAndNumber(ctx context.Context, flightID primitive.ObjectID, seatNumber string) (*models.Seat, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Seat, error)
	ListByFlight(ctx context.Context, flightID *primitive.ObjectID) ([]models.Seat, error)
	Update(ctx context.Context, seat *models.Seat) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByFlight(ctx context.Context, flightID primitive.ObjectID) error
	DeleteAll(ctx context.Context) error
}

// LostItemFilter selects items for listing
type LostItemFilter struct {
	Status   models.ItemStatus
	FlightID *primitive.ObjectID
}

// LostItemChanges are the staff-editable fields; nil fields are left alone
type LostItemChanges struct {
	ItemName        *string
	ItemDescription *string
	ItemImageURL    *string
}

// LostItemRepository persists lost items
type LostItemRepository interface {
	Create(ctx context.Context, item *models.LostItem) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LostItem, error)
	FindByToken(ctx context.Context, token string) (*models.LostItem, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.LostItem, error)
	List(ctx context.Context, filter LostItemFilter) ([]models.LostItem, error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, changes LostItemChanges) (*models.LostItem, error)
	// TransitionFromUnclaimed applies update only while the item is still
	// unclaimed. It returns ErrConflict when the item exists in another state.
	TransitionFromUnclaimed(ctx context.Context, id primitive.ObjectID, update models.StatusUpdate) (*models.LostItem, error)
	// Reset puts an item back to unclaimed and clears claim and shipping data.
	Reset(ctx context.Context, id primitive.ObjectID) (*models.LostItem, error)
	ExistsByFlight(ctx context.Context, flightID primitive.ObjectID) (bool, error)
	ExistsBySeat(ctx context.Context, seatID primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) error
}

// ClaimFilter selects claims for listing
type ClaimFilter struct {
	CustomerEmail string
	ItemID        *primitive.ObjectID
}

// ClaimRepository persists claims
type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error)
	List(ctx context.Context, filter ClaimFilter) ([]models.Claim, error)
	Update(ctx context.Context, claim *models.Claim) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// NotificationFilter selects notifications for listing
type NotificationFilter struct {
	CustomerEmail string
	ItemID        *primitive.ObjectID
}

// NotificationRepository persists sent-email records
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, filter NotificationFilter) ([]models.Notification, error)
}

// AuditLogFilter selects audit entries for listing
type AuditLogFilter struct {
	ItemID *primitive.ObjectID
	Action models.AuditAction
}

// AuditLogRepository persists audit entries
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error)
}

// ReportFilter selects reports for listing
type ReportFilter struct {
	CustomerEmail string
	Status        models.ReportStatus
}

// ReportRepository persists passenger lost-item reports
type ReportRepository interface {
	Create(ctx context.Context, report *models.LostItemReport) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LostItemReport, error)
	List(ctx context.Context, filter ReportFilter) ([]models.LostItemReport, error)
	Update(ctx context.Context, report *models.LostItemReport) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// translate maps driver errors onto the package sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

// checkDeleted turns a zero-count delete into ErrNotFound
func checkDeleted(res *mongo.DeleteResult, err error) error {
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// checkMatched turns a zero-match update into ErrNotFound
func checkMatched(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
