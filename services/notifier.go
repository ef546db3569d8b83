package services

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/HSouheill/lostfound_backend/logger"
	"github.com/HSouheill/lostfound_backend/metrics"
	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
)

// RowNotifier emails the passengers seated in the row where an item was found
type RowNotifier struct {
	seats         repositories.SeatRepository
	notifications repositories.NotificationRepository
	emails        *EmailSender
	metrics       *metrics.Metrics
	log           logger.Logger
}

func NewRowNotifier(seats repositories.SeatRepository, notifications repositories.NotificationRepository, emails *EmailSender, m *metrics.Metrics, log logger.Logger) *RowNotifier {
	return &RowNotifier{
		seats:         seats,
		notifications: notifications,
		emails:        emails,
		metrics:       m,
		log:           log,
	}
}

// RowOf returns the leading digits of a seat number ("12A" -> "12")
func RowOf(seatNumber string) string {
	seatNumber = strings.TrimSpace(seatNumber)
	end := strings.IndexFunc(seatNumber, func(r rune) bool { return !unicode.IsDigit(r) })
	if end < 0 {
		return seatNumber
	}
	return seatNumber[:end]
}

// rowKey groups seats without a leading row number by their full number
func rowKey(seatNumber string) string {
	if row := RowOf(seatNumber); row != "" {
		return row
	}
	return strings.ToUpper(strings.TrimSpace(seatNumber))
}

// NotifyRow emails every distinct customer email in the item's row and
// records a notification for each delivered email. Failures are logged and
// counted; the number of emails sent is returned.
func (n *RowNotifier) NotifyRow(ctx context.Context, item *models.LostItem, flight *models.Flight, seat *models.Seat) int {
	recipients, err := n.recipients(ctx, flight, seat)
	if err != nil {
		n.log.Error("Failed to load row seats", "flight", flight.FlightNumber, "seat", seat.SeatNumber, "error", err)
		n.metrics.SideEffectFailures.WithLabelValues("row_lookup").Inc()
		return 0
	}

	sent := 0
	for _, email := range recipients {
		if err := n.emails.SendItemFound(ctx, email, item, flight); err != nil {
			n.log.Warn("Failed to send item-found email", "to", email, "claimToken", item.ClaimToken, "error", err)
			n.metrics.NotificationsSent.WithLabelValues("failed").Inc()
			continue
		}
		n.metrics.NotificationsSent.WithLabelValues("sent").Inc()
		sent++

		record := &models.Notification{CustomerEmail: email, ItemID: item.ID, SentAt: time.Now().UTC()}
		if err := n.notifications.Create(ctx, record); err != nil {
			n.log.Error("Failed to record notification", "to", email, "error", err)
			n.metrics.SideEffectFailures.WithLabelValues("notification_record").Inc()
		}
	}
	return sent
}

func (n *RowNotifier) recipients(ctx context.Context, flight *models.Flight, seat *models.Seat) ([]string, error) {
	row := rowKey(seat.SeatNumber)

	seats, err := n.seats.ListByFlight(ctx, &flight.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var emails []string
	for _, s := range seats {
		if s.CustomerEmail == "" || rowKey(s.SeatNumber) != row {
			continue
		}
		key := strings.ToLower(s.CustomerEmail)
		if seen[key] {
			continue
		}
		seen[key] = true
		emails = append(emails, s.CustomerEmail)
	}
	return emails, nil
}
