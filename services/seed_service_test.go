package services

import (
	"context"
	"testing"
	"time"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedService_Seed(t *testing.T) {
	e := newEnv(nil)
	e.submit("ZZ100", "1A", "Leftover")
	svc := NewSeedService(e.deps)
	ctx := context.Background()

	result, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Flights)
	assert.Equal(t, 16, result.Seats)
	assert.Equal(t, 3, result.LostItems)
	require.Len(t, result.QRCodes, 2)
	assert.Equal(t, "123456", result.QRCodes[0].CollectionCode)
	assert.Equal(t, "789012", result.QRCodes[1].CollectionCode)

	_, err = e.flights.FindByNumber(ctx, "ZZ100")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	ba456, err := e.flights.FindByNumber(ctx, "BA456")
	require.NoError(t, err)
	items, err := e.items.List(ctx, repositories.LostItemFilter{FlightID: &ba456.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Folding Umbrella", items[0].ItemName)
	assert.Equal(t, models.StatusClaimed, items[0].Status)
	assert.NotNil(t, items[0].ClaimedAt)

	// Seeded codes verify like any other item
	view, err := NewCollectionService(e.deps).Verify(ctx, result.QRCodes[0].ClaimToken, "123456")
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, view.Status)
}

func TestSeedService_Disabled(t *testing.T) {
	e := newEnv(nil)
	e.cfg.AllowSeed = false

	_, err := NewSeedService(e.deps).Seed(context.Background())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRecordService(t *testing.T) {
	e := newEnv(nil)
	svc := NewRecordService(e.deps)
	ctx := context.Background()
	item := e.submit("BA123", "12A", "Scarf")
	_, _ = NewCollectionService(e.deps).Verify(ctx, item.ClaimToken, "WRONG1")

	logs, err := svc.AuditLogs(ctx, repositories.AuditLogFilter{Action: models.AuditVerificationFailed})
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	_, err = svc.AuditLogs(ctx, repositories.AuditLogFilter{Action: "deleted_everything"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.SendTestEmail(ctx, "ops@example.com"))
	assert.Equal(t, []string{"ops@example.com"}, e.mailer.recipients())
	assert.Equal(t, []string{"Lost Item Found - Flight TEST123"}, e.mailer.subjects())

	e.deps.Emails = NewEmailSender(DisabledMailer{}, e.deps.QR, e.cfg)
	err = NewRecordService(e.deps).SendTestEmail(ctx, "ops@example.com")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAuthService(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		StaffUsername:     "staff",
		StaffPasswordHash: string(hash),
		TokenTTL:          time.Hour,
	}
	svc := NewAuthService(cfg)
	require.True(t, svc.Enabled())

	resp, err := svc.Login(models.LoginRequest{Username: "staff", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Username)

	_, err = svc.Login(models.LoginRequest{Username: "staff", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Login(models.LoginRequest{Username: "admin", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	other := NewAuthService(&config.Config{JWTSecret: "another-secret", TokenTTL: time.Hour})
	_, err = other.ParseToken(resp.Token)
	assert.Error(t, err)

	expired := NewAuthService(cfg)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Login(models.LoginRequest{Username: "staff", Password: "s3cret"})
	require.NoError(t, err)
	_, err = svc.ParseToken(old.Token)
	assert.Error(t, err)
}

func TestAuthService_Disabled(t *testing.T) {
	svc := NewAuthService(&config.Config{})
	assert.False(t, svc.Enabled())

	_, err := svc.Login(models.LoginRequest{Username: "staff", Password: "x"})
	assert.ErrorIs(t, err, ErrUnavailable)
}
