package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// GatewayProvider talks to a hosted-checkout payment API over HTTPS. The
// gateway calls back on our webhook once the customer pays.
type GatewayProvider struct {
	BaseURL     string
	APIKey      string
	CallbackURL string
	client      *http.Client
}

func NewGatewayProvider(baseURL, apiKey, callbackURL string) *GatewayProvider {
	return &GatewayProvider{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		CallbackURL: callbackURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type gatewayCheckoutReq struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url"`
	ExpiresIn   int64  `json:"expires_in_seconds"`
}

type gatewayCheckoutResp struct {
	Reference   string `json:"reference"`
	Status      string `json:"status"`
	CheckoutURL string `json:"checkout_url"`
	ExpiresAt   string `json:"expires_at"`
}

func (p *GatewayProvider) InitiatePayment(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	ref := req.Reference
	if ref == "" {
		ref = uuid.NewString()
	}
	expiresIn := req.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 30 * time.Minute
	}
	callbackURL := req.CallbackURL
	if callbackURL == "" {
		callbackURL = p.CallbackURL
	}
	payload := gatewayCheckoutReq{
		Amount:      req.AmountCents,
		Currency:    req.Currency,
		Description: req.Description,
		Reference:   ref,
		CallbackURL: callbackURL,
		ExpiresIn:   int64(expiresIn / time.Second),
	}
	body, _ := json.Marshal(payload)
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/checkouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("checkout create: %d", resp.StatusCode)
	}
	var out gatewayCheckoutResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	expiresAt, _ := time.Parse(time.RFC3339, out.ExpiresAt)
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(expiresIn)
	}
	return &CheckoutResponse{
		Reference:   ref,
		Status:      out.Status,
		CheckoutURL: out.CheckoutURL,
		ExpiresAt:   expiresAt,
	}, nil
}

type gatewayStatusResp struct {
	Status string `json:"status"`
}

func (p *GatewayProvider) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/v1/checkouts/"+reference, nil)
	if err != nil {
		return false, err
	}
	apiReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("checkout status: %d", resp.StatusCode)
	}
	var out gatewayStatusResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.Status == "PAID" || out.Status == "COMPLETED", nil
}
