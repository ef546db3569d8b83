package services

import (
	"context"
	"errors"
	"time"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
)

// RecordService exposes the notification and audit trails to staff
type RecordService struct {
	Deps
}

func NewRecordService(d Deps) *RecordService {
	return &RecordService{Deps: d}
}

func (s *RecordService) Notifications(ctx context.Context, filter repositories.NotificationFilter) ([]models.Notification, error) {
	return s.Deps.Notifications.List(ctx, filter)
}

func (s *RecordService) AuditLogs(ctx context.Context, filter repositories.AuditLogFilter) ([]models.AuditLog, error) {
	if filter.Action != "" && !filter.Action.Valid() {
		return nil, newError(ErrInvalidInput, "Unknown audit action")
	}
	return s.Deps.AuditLogs.List(ctx, filter)
}

// SendTestEmail sends a sample item-found email to check the SMTP setup
func (s *RecordService) SendTestEmail(ctx context.Context, to string) error {
	now := time.Now().UTC()
	flight := &models.Flight{
		FlightNumber:    "TEST123",
		OriginCode:      "LHR",
		DestinationCode: "JFK",
		DepartureTime:   now,
		ArrivalTime:     now.Add(7 * time.Hour),
	}
	item := &models.LostItem{
		ItemName:        "Test Item",
		ItemDescription: "Test Description",
		Status:          models.StatusUnclaimed,
		ClaimToken:      "test-token",
		CollectionCode:  "ABC123",
	}

	ectx, cancel := s.external(ctx)
	defer cancel()
	if err := s.Emails.SendItemFound(ectx, to, item, flight); err != nil {
		if errors.Is(err, ErrUnavailable) {
			return newError(ErrUnavailable, "Email delivery is not configured")
		}
		s.Log.Error("Test email failed", "to", to, "error", err)
		return newError(ErrUpstream, "Failed to send test email")
	}
	s.Log.Info("Test email sent", "to", to)
	return nil
}
