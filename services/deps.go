package services

import (
	"context"
	"time"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/logger"
	"github.com/HSouheill/lostfound_backend/metrics"
	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"github.com/HSouheill/lostfound_backend/storage"
)

// Deps bundles the collaborators shared by the services. Analyzer may be nil
// when no Groq key is configured.
type Deps struct {
	Config *config.Config
	Log    logger.Logger

	Flights       repositories.FlightRepository
	Seats         repositories.SeatRepository
	Items         repositories.LostItemRepository
	Claims        repositories.ClaimRepository
	Notifications repositories.NotificationRepository
	AuditLogs     repositories.AuditLogRepository
	Reports       repositories.ReportRepository

	Store    storage.ImageStore
	Analyzer Analyzer
	QR       *QRGenerator
	Emails   *EmailSender
	Notifier *RowNotifier
	Payments PaymentProcessor
	Attempts AttemptLimiter
	Events   EventPublisher
	Metrics  *metrics.Metrics
}

func (d Deps) newPopulator() populator {
	return populator{flights: d.Flights, seats: d.Seats}
}

// external bounds a call to a third-party service
func (d Deps) external(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := 30 * time.Second
	if d.Config != nil && d.Config.ExternalTimeout > 0 {
		timeout = d.Config.ExternalTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// audit records a claim-flow event. A failed write never fails the request.
func (d Deps) audit(ctx context.Context, entry *models.AuditLog) {
	entry.Timestamp = time.Now().UTC()
	if err := d.AuditLogs.Create(ctx, entry); err != nil {
		d.Log.Error("Failed to write audit log", "action", entry.Action, "token", entry.Token, "error", err)
		d.Metrics.SideEffectFailures.WithLabelValues("audit_log").Inc()
	}
}

// failed logs and counts a secondary step that did not fail the request
func (d Deps) failed(operation string, err error, keyvals ...interface{}) {
	d.Log.Warn("Side effect failed", append([]interface{}{"operation", operation, "error", err}, keyvals...)...)
	d.Metrics.SideEffectFailures.WithLabelValues(operation).Inc()
}
