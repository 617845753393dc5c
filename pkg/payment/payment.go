package payment

import (
	"context"
	"time"
)

type CheckoutRequest struct {
	OrderID     uint
	UserID      uint
	AmountCents int64
	Currency    string
	Description string
	Reference   string // pre-generated idempotent reference
	CallbackURL string
	ExpiresIn   time.Duration
}

type CheckoutResponse struct {
	Reference   string
	Status      string
	CheckoutURL string
	ExpiresAt   time.Time
}

// Provider abstracts the payment gateway. Confirmation always arrives over
// the webhook; VerifyPayment exists for manual reconciliation.
type Provider interface {
	InitiatePayment(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error)
	VerifyPayment(ctx context.Context, reference string) (bool, error)
}
