package services

import (
	"context"
	"errors"
	"time"

	"github.com/HSouheill/lostfound_backend/metrics"
	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"github.com/HSouheill/lostfound_backend/security"
)

const (
	msgInvalidToken   = "Invalid or expired QR code"
	msgAlreadyClaimed = "Item has already been claimed"
	msgNotShippable   = "Item not found or already claimed"
)

// CollectionService drives the passenger side of a claim: looking up the
// item behind a QR code, proving ownership with the collection code, or
// paying to have the item shipped.
type CollectionService struct {
	Deps
	populator
}

func NewCollectionService(d Deps) *CollectionService {
	return &CollectionService{Deps: d, populator: d.newPopulator()}
}

// Lookup returns the public view of an unclaimed item and its claim URL
func (s *CollectionService) Lookup(ctx context.Context, token string) (*models.LostItemView, string, error) {
	item, err := s.Items.FindByToken(ctx, token)
	if err != nil {
		return nil, "", notFound(err, msgInvalidToken)
	}

	s.audit(ctx, &models.AuditLog{Action: models.AuditItemViewed, ItemID: item.ID, Token: token})

	if item.Status != models.StatusUnclaimed {
		return nil, "", newError(ErrAlreadyClaimed, msgAlreadyClaimed).with("status", item.Status)
	}

	view, err := s.view(ctx, item)
	if err != nil {
		return nil, "", err
	}
	public := view.Public()
	return &public, s.QR.ClaimURL(token), nil
}

// QRImage renders the claim QR code for a token as PNG
func (s *CollectionService) QRImage(ctx context.Context, token string) ([]byte, error) {
	item, err := s.Items.FindByToken(ctx, token)
	if err != nil {
		return nil, notFound(err, msgInvalidToken)
	}
	return s.QR.PNG(s.QR.ClaimURL(item.ClaimToken))
}

// Verify checks a collection code and marks the item claimed on success.
// Failed attempts are audited and counted per token.
func (s *CollectionService) Verify(ctx context.Context, token, code string) (*models.LostItemView, error) {
	item, err := s.Items.FindByToken(ctx, token)
	if err != nil {
		return nil, notFound(err, msgInvalidToken)
	}
	if item.Status != models.StatusUnclaimed {
		return nil, newError(ErrAlreadyClaimed, msgAlreadyClaimed).with("status", item.Status)
	}

	blocked, err := s.Attempts.Exceeded(ctx, token)
	if err != nil {
		// Fail open: the code is still required
		s.failed("attempt_check", err, "token", token)
	}
	if blocked {
		s.Metrics.Verifications.WithLabelValues(metrics.VerifyBlocked).Inc()
		return nil, newError(ErrTooManyAttempts, "Too many verification attempts, please try again later")
	}

	if !security.CodesEqual(code, item.CollectionCode) {
		s.Metrics.Verifications.WithLabelValues(metrics.VerifyInvalidCode).Inc()
		s.audit(ctx, &models.AuditLog{
			Action:           models.AuditVerificationFailed,
			ItemID:           item.ID,
			Token:            token,
			VerificationCode: code,
		})
		if err := s.Attempts.RecordFailure(ctx, token); err != nil {
			s.failed("attempt_record", err, "token", token)
		}
		s.Log.Warn("Invalid collection code", "itemId", item.ID.Hex())
		return nil, newError(ErrInvalidCode, "Invalid verification code")
	}

	claimed, err := s.Items.TransitionFromUnclaimed(ctx, item.ID, models.StatusUpdate{
		Status: models.StatusClaimed,
		At:     time.Now().UTC(),
	})
	if errors.Is(err, repositories.ErrConflict) {
		return nil, newError(ErrAlreadyClaimed, msgAlreadyClaimed).with("status", models.StatusClaimed)
	}
	if err != nil {
		return nil, notFound(err, msgInvalidToken)
	}

	s.Metrics.Verifications.WithLabelValues(metrics.VerifySuccess).Inc()
	if err := s.Attempts.Reset(ctx, token); err != nil {
		s.failed("attempt_reset", err, "token", token)
	}
	s.audit(ctx, &models.AuditLog{Action: models.AuditItemClaimed, ItemID: item.ID, Token: token})
	s.Log.Info("Item claimed in person", "itemId", item.ID.Hex())

	view, err := s.view(ctx, claimed)
	if err != nil {
		return nil, err
	}
	public := view.Public()
	s.Events.Publish(EventItemClaimed, "Lost item "+claimed.ItemName+" was claimed", public)
	return &public, nil
}

// Ship takes the shipping fee, records the delivery address and moves the
// item to shipped. The payment is refunded if the item was claimed in the
// meantime.
func (s *CollectionService) Ship(ctx context.Context, token string, req models.ShippingRequest) (*models.LostItemView, error) {
	item, err := s.Items.FindByToken(ctx, token)
	if err != nil {
		return nil, notFound(err, msgNotShippable)
	}
	if item.Status != models.StatusUnclaimed {
		return nil, newError(ErrNotFound, msgNotShippable)
	}

	details := req.Details()
	s.audit(ctx, &models.AuditLog{
		Action:          models.AuditShippingRequested,
		ItemID:          item.ID,
		Token:           token,
		ShippingDetails: &details,
	})

	pctx, cancel := s.external(ctx)
	intent, err := s.charge(pctx)
	cancel()
	if err != nil {
		s.Log.Error("Shipping payment failed", "itemId", item.ID.Hex(), "error", err)
		return nil, newError(ErrUpstream, "Payment failed")
	}

	tracking, err := security.GenerateTrackingNumber()
	if err != nil {
		s.refund(intent.ID)
		return nil, err
	}
	details.TrackingNumber = tracking
	details.PaymentIntentID = intent.ID

	shipped, err := s.Items.TransitionFromUnclaimed(ctx, item.ID, models.StatusUpdate{
		Status:          models.StatusShipped,
		At:              time.Now().UTC(),
		ShippingDetails: &details,
	})
	if err != nil {
		s.refund(intent.ID)
		if errors.Is(err, repositories.ErrConflict) || errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(ErrNotFound, msgNotShippable)
		}
		return nil, err
	}

	s.Metrics.Shipments.Inc()
	s.audit(ctx, &models.AuditLog{
		Action:          models.AuditItemShipped,
		ItemID:          item.ID,
		Token:           token,
		ShippingDetails: &details,
	})
	s.Log.Info("Item shipped", "itemId", item.ID.Hex(), "trackingNumber", tracking)

	ectx, cancel := s.external(ctx)
	err = s.Emails.SendShippingConfirmation(ectx, details.Email, details.Name, shipped, FormatAddress(&details), tracking)
	cancel()
	if err != nil {
		s.failed("shipping_email", err, "itemId", item.ID.Hex())
	}

	view, err := s.view(ctx, shipped)
	if err != nil {
		return nil, err
	}
	public := view.Public()
	s.Events.Publish(EventItemShipped, "Lost item "+shipped.ItemName+" is being shipped", public)
	return &public, nil
}

func (s *CollectionService) charge(ctx context.Context) (*PaymentIntent, error) {
	intent, err := s.Payments.CreateIntent(ctx, s.Config.ShippingFeeCents)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.Payments.Confirm(ctx, intent.ID)
	if err != nil {
		return nil, err
	}
	if confirmed.Status != PaymentSucceeded {
		return nil, errors.New("payment not completed: " + confirmed.Status)
	}
	return confirmed, nil
}

func (s *CollectionService) refund(intentID string) {
	ctx, cancel := s.external(context.Background())
	defer cancel()
	if err := s.Payments.Refund(ctx, intentID); err != nil {
		s.failed("payment_refund", err, "paymentIntentId", intentID)
	}
}
