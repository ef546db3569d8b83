package services

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Payment intent states
const (
	PaymentSucceeded = "succeeded"
	PaymentRefunded  = "refunded"
)

// PaymentIntent mirrors the card processor's intent object
type PaymentIntent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

// PaymentProcessor charges passengers for shipping
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amountCents int64) (*PaymentIntent, error)
	Confirm(ctx context.Context, intentID string) (*PaymentIntent, error)
	Refund(ctx context.Context, intentID string) error
}

// MockPaymentProcessor always succeeds after an optional simulated delay
type MockPaymentProcessor struct {
	delay  time.Duration
	amount int64
}

func NewMockPaymentProcessor(delay time.Duration, amountCents int64) *MockPaymentProcessor {
	return &MockPaymentProcessor{delay: delay, amount: amountCents}
}

func (p *MockPaymentProcessor) CreateIntent(ctx context.Context, amountCents int64) (*PaymentIntent, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return &PaymentIntent{ID: "pi_" + uuid.NewString(), Status: PaymentSucceeded, Amount: amountCents}, nil
}

func (p *MockPaymentProcessor) Confirm(ctx context.Context, intentID string) (*PaymentIntent, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return &PaymentIntent{ID: intentID, Status: PaymentSucceeded, Amount: p.amount}, nil
}

func (p *MockPaymentProcessor) Refund(ctx context.Context, intentID string) error {
	return p.wait(ctx)
}

func (p *MockPaymentProcessor) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
