package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StubProvider is used in development and tests: it accepts every checkout
// and never verifies. Payments are then confirmed via the webhook endpoint.
type StubProvider struct{}

func NewStubProvider() *StubProvider { return &StubProvider{} }

func (s *StubProvider) InitiatePayment(_ context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	ref := req.Reference
	if ref == "" {
		ref = uuid.NewString()
	}
	expiresIn := req.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 30 * time.Minute
	}
	return &CheckoutResponse{
		Reference:   ref,
		Status:      "PENDING",
		CheckoutURL: "https://checkout.invalid/" + ref,
		ExpiresAt:   time.Now().Add(expiresIn),
	}, nil
}

func (s *StubProvider) VerifyPayment(context.Context, string) (bool, error) {
	return false, nil
}
