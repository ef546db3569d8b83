package services

import (
	"context"
	"errors"
	"time"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"github.com/HSouheill/lostfound_backend/security"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimService manages staff-recorded claims. The item's status stays the
// source of truth; a claim only moves an item forward when the claim is
// fulfilled (in person, or shipped with the payment completed).
type ClaimService struct {
	Deps
	populator
}

func NewClaimService(d Deps) *ClaimService {
	return &ClaimService{Deps: d, populator: d.newPopulator()}
}

// fulfilledStatus is the item status a claim in this state implies, or ""
// while the item should stay unclaimed.
func fulfilledStatus(method models.ClaimMethod, payment models.PaymentStatus) models.ItemStatus {
	switch {
	case method == models.ClaimInPerson:
		return models.StatusClaimed
	case method == models.ClaimShipped && payment == models.PaymentCompleted:
		return models.StatusShipped
	}
	return ""
}

// Create records a claim against an unclaimed item
func (s *ClaimService) Create(ctx context.Context, req models.CreateClaimRequest) (*models.ClaimView, error) {
	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		return nil, newError(ErrInvalidInput, "Invalid item id")
	}
	item, err := s.Items.FindByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "Lost item not found")
	}
	if item.Status != models.StatusUnclaimed {
		return nil, newError(ErrAlreadyClaimed, msgAlreadyClaimed).with("status", item.Status)
	}

	payment := req.PaymentStatus
	if payment == "" {
		payment = models.PaymentPending
	}
	claim := &models.Claim{
		ItemID:          itemID,
		CustomerEmail:   req.CustomerEmail,
		ClaimMethod:     req.ClaimMethod,
		ShippingAddress: req.ShippingAddress,
		PaymentStatus:   payment,
	}
	if err := s.Claims.Create(ctx, claim); err != nil {
		return nil, err
	}

	if target := fulfilledStatus(claim.ClaimMethod, claim.PaymentStatus); target != "" {
		updated, err := s.fulfil(ctx, claim, target)
		if err != nil {
			if delErr := s.Claims.Delete(ctx, claim.ID); delErr != nil {
				s.failed("claim_rollback", delErr, "claimId", claim.ID.Hex())
			}
			return nil, err
		}
		item = updated
	}

	ectx, cancel := s.external(ctx)
	err = s.Emails.SendClaimApproved(ectx, claim, item)
	cancel()
	if err != nil {
		s.failed("claim_email", err, "claimId", claim.ID.Hex())
	}

	s.Log.Info("Claim recorded", "claimId", claim.ID.Hex(), "itemId", itemID.Hex(), "method", claim.ClaimMethod)
	return s.claimView(ctx, claim, item)
}

// fulfil moves the claimed item forward and fires the matching side effects
func (s *ClaimService) fulfil(ctx context.Context, claim *models.Claim, target models.ItemStatus) (*models.LostItem, error) {
	update := models.StatusUpdate{Status: target, At: time.Now().UTC()}
	if target == models.StatusShipped {
		tracking, err := security.GenerateTrackingNumber()
		if err != nil {
			return nil, err
		}
		update.ShippingDetails = &models.ShippingDetails{
			Email:          claim.CustomerEmail,
			Address:        claim.ShippingAddress,
			TrackingNumber: tracking,
		}
	}

	item, err := s.Items.TransitionFromUnclaimed(ctx, claim.ItemID, update)
	if errors.Is(err, repositories.ErrConflict) {
		return nil, newError(ErrAlreadyClaimed, msgAlreadyClaimed)
	}
	if err != nil {
		return nil, notFound(err, "Lost item not found")
	}

	event, message := EventItemClaimed, "Lost item "+item.ItemName+" was claimed"
	if target == models.StatusShipped {
		s.Metrics.Shipments.Inc()
		event, message = EventItemShipped, "Lost item "+item.ItemName+" is being shipped"

		ectx, cancel := s.external(ctx)
		err := s.Emails.SendShippingConfirmation(ectx, claim.CustomerEmail, claim.CustomerEmail, item, claim.ShippingAddress, update.ShippingDetails.TrackingNumber)
		cancel()
		if err != nil {
			s.failed("shipping_email", err, "claimId", claim.ID.Hex())
		}
	}
	if view, err := s.view(ctx, item); err == nil {
		s.Events.Publish(event, message, view.Public())
	}
	return item, nil
}

// List returns claims newest first, optionally for one customer
func (s *ClaimService) List(ctx context.Context, customerEmail string) ([]models.ClaimView, error) {
	claims, err := s.Claims.List(ctx, repositories.ClaimFilter{CustomerEmail: customerEmail})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(claims))
	for _, c := range claims {
		ids = append(ids, c.ItemID)
	}
	items, err := s.Items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, items)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.LostItemView, len(views))
	for i := range views {
		byID[views[i].ID] = &views[i]
	}

	out := make([]models.ClaimView, 0, len(claims))
	for _, c := range claims {
		out = append(out, models.ClaimView{Claim: c, Item: byID[c.ItemID]})
	}
	return out, nil
}

// Get returns a claim with its item
func (s *ClaimService) Get(ctx context.Context, id primitive.ObjectID) (*models.ClaimView, error) {
	claim, err := s.Claims.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Claim not found")
	}
	item, err := s.Items.FindByID(ctx, claim.ItemID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.ClaimView{Claim: *claim}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.claimView(ctx, claim, item)
}

// Update edits a claim. Completing the payment of a shipped claim ships
// the item; a completed payment cannot go back to pending.
func (s *ClaimService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateClaimRequest) (*models.ClaimView, error) {
	claim, err := s.Claims.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Claim not found")
	}

	if req.CustomerEmail != nil {
		claim.CustomerEmail = *req.CustomerEmail
	}
	if req.ShippingAddress != nil {
		claim.ShippingAddress = *req.ShippingAddress
	}

	completing, previous := false, claim.PaymentStatus
	if req.PaymentStatus != nil && *req.PaymentStatus != claim.PaymentStatus {
		if claim.PaymentStatus == models.PaymentCompleted {
			return nil, newError(ErrInvalidTransition, "Payment status cannot move back to pending")
		}
		completing = *req.PaymentStatus == models.PaymentCompleted
		claim.PaymentStatus = *req.PaymentStatus
	}

	if completing && claim.ClaimMethod == models.ClaimShipped {
		if claim.ShippingAddress == "" {
			return nil, newError(ErrInvalidInput, "Shipping address is required for shipped claims")
		}
		item, err := s.Items.FindByID(ctx, claim.ItemID)
		if err != nil {
			return nil, notFound(err, "Lost item not found")
		}
		if item.Status != models.StatusUnclaimed {
			return nil, newError(ErrAlreadyClaimed, msgAlreadyClaimed).with("status", item.Status)
		}
	}

	// The completed payment is stored before the item ships; a failed
	// shipment puts the payment back.
	if err := s.Claims.Update(ctx, claim); err != nil {
		return nil, notFound(err, "Claim not found")
	}
	if completing && claim.ClaimMethod == models.ClaimShipped {
		if _, err := s.fulfil(ctx, claim, models.StatusShipped); err != nil {
			claim.PaymentStatus = previous
			if rbErr := s.Claims.Update(ctx, claim); rbErr != nil {
				s.failed("claim_rollback", rbErr, "claimId", claim.ID.Hex())
			}
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a claim and puts its item back to unclaimed
func (s *ClaimService) Delete(ctx context.Context, id primitive.ObjectID) error {
	claim, err := s.Claims.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "Claim not found")
	}

	if _, err := s.Items.Reset(ctx, claim.ItemID); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		s.Log.Warn("Claim references a deleted item", "claimId", id.Hex(), "itemId", claim.ItemID.Hex())
	}
	if err := s.Claims.Delete(ctx, id); err != nil {
		return notFound(err, "Claim not found")
	}

	s.Log.Info("Claim deleted", "claimId", id.Hex(), "itemId", claim.ItemID.Hex())
	s.Events.Publish(EventClaimDeleted, "Claim removed, item is unclaimed again", map[string]string{
		"id":     id.Hex(),
		"itemId": claim.ItemID.Hex(),
	})
	return nil
}

func (s *ClaimService) claimView(ctx context.Context, claim *models.Claim, item *models.LostItem) (*models.ClaimView, error) {
	view, err := s.view(ctx, item)
	if err != nil {
		return nil, err
	}
	return &models.ClaimView{Claim: *claim, Item: view}, nil
}
