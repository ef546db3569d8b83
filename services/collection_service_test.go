package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shippingRequest() models.ShippingRequest {
	return models.ShippingRequest{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Address:    "1 High Street",
		City:       "London",
		State:      "Greater London",
		PostalCode: "SW1A 1AA",
		Country:    "United Kingdom",
	}
}

func TestCollection_SubmitLookupVerifyScenario(t *testing.T) {
	e := newEnv(nil)
	svc := NewCollectionService(e.deps)
	ctx := context.Background()

	created := e.submit("BA123", "12A", "Black Backpack")
	require.Regexp(t, codePattern, created.CollectionCode)

	view, claimURL, err := svc.Lookup(ctx, created.ClaimToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, models.StatusUnclaimed, view.Status)
	assert.Empty(t, view.CollectionCode)
	assert.Equal(t, "https://lostfound.example.com/qr/"+created.ClaimToken, claimURL)

	claimed, err := svc.Verify(ctx, created.ClaimToken, strings.ToLower(created.CollectionCode)+" ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, claimed.Status)
	assert.NotNil(t, claimed.ClaimedAt)
	assert.Empty(t, claimed.CollectionCode)

	_, err = svc.Verify(ctx, created.ClaimToken, created.CollectionCode)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	_, _, err = svc.Lookup(ctx, created.ClaimToken)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	assert.Equal(t, models.StatusClaimed, svcErr.Fields["status"])

	assert.Equal(t, []models.AuditAction{
		models.AuditItemViewed,
		models.AuditItemClaimed,
		models.AuditItemViewed,
	}, e.auditLogs.actions())
	assert.Contains(t, e.events.types(), EventItemClaimed)
}

func TestCollection_LookupUnknownToken(t *testing.T) {
	e := newEnv(nil)

	_, _, err := NewCollectionService(e.deps).Lookup(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Invalid or expired QR code")
}

func TestCollection_VerifyWrongCode(t *testing.T) {
	e := newEnv(nil)
	svc := NewCollectionService(e.deps)
	created := e.submit("BA123", "12A", "Scarf")

	_, err := svc.Verify(context.Background(), created.ClaimToken, "WRONG1")
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.EqualError(t, err, "Invalid verification code")

	item, err := e.items.FindByToken(context.Background(), created.ClaimToken)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnclaimed, item.Status)

	require.Len(t, e.auditLogs.data, 1)
	entry := e.auditLogs.data[0]
	assert.Equal(t, models.AuditVerificationFailed, entry.Action)
	assert.Equal(t, "WRONG1", entry.VerificationCode)
	assert.Equal(t, created.ID, entry.ItemID)
	assert.Equal(t, 1, e.attempts.counts[created.ClaimToken])
}

func TestCollection_VerifyLocksAfterTooManyFailures(t *testing.T) {
	e := newEnv(nil)
	svc := NewCollectionService(e.deps)
	ctx := context.Background()
	created := e.submit("BA123", "12A", "Scarf")

	for i := 0; i < 3; i++ {
		_, err := svc.Verify(ctx, created.ClaimToken, "WRONG1")
		require.ErrorIs(t, err, ErrInvalidCode)
	}

	_, err := svc.Verify(ctx, created.ClaimToken, created.CollectionCode)
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	item, err := e.items.FindByToken(ctx, created.ClaimToken)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnclaimed, item.Status)
}

func TestCollection_VerifySuccessResetsAttempts(t *testing.T) {
	e := newEnv(nil)
	svc := NewCollectionService(e.deps)
	ctx := context.Background()
	created := e.submit("BA123", "12A", "Scarf")

	_, err := svc.Verify(ctx, created.ClaimToken, "WRONG1")
	require.ErrorIs(t, err, ErrInvalidCode)
	_, err = svc.Verify(ctx, created.ClaimToken, created.CollectionCode)
	require.NoError(t, err)

	assert.Zero(t, e.attempts.counts[created.ClaimToken])
}

func TestCollection_AuditFailureDoesNotFailVerify(t *testing.T) {
	e := newEnv(nil)
	created := e.submit("BA123", "12A", "Scarf")
	e.auditLogs.err = errors.New("write concern timeout")

	view, err := NewCollectionService(e.deps).Verify(context.Background(), created.ClaimToken, created.CollectionCode)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, view.Status)
}

func TestCollection_Ship(t *testing.T) {
	e := newEnv(nil)
	svc := NewCollectionService(e.deps)
	ctx := context.Background()
	created := e.submit("BA123", "12A", "Laptop")

	view, err := svc.Ship(ctx, created.ClaimToken, shippingRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusShipped, view.Status)
	assert.NotNil(t, view.ShippedAt)
	require.NotNil(t, view.ShippingDetails)
	assert.Equal(t, "Jane Doe", view.ShippingDetails.Name)
	assert.True(t, strings.HasPrefix(view.ShippingDetails.TrackingNumber, "LF"))
	assert.Equal(t, "pi_test", view.ShippingDetails.PaymentIntentID)

	assert.Equal(t, []string{"pi_test"}, e.payments.confirmed)
	assert.Empty(t, e.payments.refunded)
	assert.Equal(t, []models.AuditAction{models.AuditShippingRequested, models.AuditItemShipped}, e.auditLogs.actions())
	assert.Contains(t, e.mailer.subjects(), "Your Lost Item is On Its Way")
	assert.Contains(t, e.events.types(), EventItemShipped)

	_, err = svc.Ship(ctx, created.ClaimToken, shippingRequest())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Item not found or already claimed")
}

func TestCollection_ShipClaimedItem(t *testing.T) {
	e := newEnv(nil)
	svc := NewCollectionService(e.deps)
	ctx := context.Background()
	created := e.submit("BA123", "12A", "Laptop")

	_, err := svc.Verify(ctx, created.ClaimToken, created.CollectionCode)
	require.NoError(t, err)

	_, err = svc.Ship(ctx, created.ClaimToken, shippingRequest())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, e.payments.confirmed)
}

func TestCollection_ShipPaymentFailure(t *testing.T) {
	e := newEnv(nil)
	e.payments.failWith = errors.New("card declined")
	svc := NewCollectionService(e.deps)
	created := e.submit("BA123", "12A", "Laptop")

	_, err := svc.Ship(context.Background(), created.ClaimToken, shippingRequest())
	assert.ErrorIs(t, err, ErrUpstream)

	item, err := e.items.FindByToken(context.Background(), created.ClaimToken)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnclaimed, item.Status)
}

func TestCollection_ShipEmailFailureIsSwallowed(t *testing.T) {
	e := newEnv(nil)
	e.mailer.fail["jane@example.com"] = true
	created := e.submit("BA123", "12A", "Laptop")

	view, err := NewCollectionService(e.deps).Ship(context.Background(), created.ClaimToken, shippingRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, view.Status)
}

func TestCollection_QRImage(t *testing.T) {
	e := newEnv(nil)
	svc := NewCollectionService(e.deps)
	created := e.submit("BA123", "12A", "Laptop")

	data, err := svc.QRImage(context.Background(), created.ClaimToken)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))

	_, err = svc.QRImage(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
