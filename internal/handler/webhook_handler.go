package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"rankboost/internal/domain"
	"rankboost/internal/logger"
	"rankboost/internal/models"
	"rankboost/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentStore interface {
	Update(p *models.Payment) error
	GetByProviderRef(ref string) (*models.Payment, error)
}

// WebhookHandler receives settlement callbacks from the payment provider.
// Requests are authenticated with an HMAC-SHA256 signature over the raw body.
type WebhookHandler struct {
	secret   string
	payments PaymentStore
	orders   *service.OrderService
	audit    auditStore
}

func NewWebhookHandler(secret string, payments PaymentStore, orders *service.OrderService, audit auditStore) *WebhookHandler {
	return &WebhookHandler{secret: secret, payments: payments, orders: orders, audit: audit}
}

type webhookEvent struct {
	Reference string `json:"reference"`
	Status    string `json:"status"` // PAID, EXPIRED, FAILED
}

func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	if !h.verifySignature(body, c.GetHeader("X-Webhook-Signature")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}
	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil || event.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
		return
	}

	p, err := h.payments.GetByProviderRef(event.Reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown references are acknowledged so the provider stops retrying.
			c.JSON(http.StatusOK, gin.H{"message": "ignored"})
			return
		}
		fail(c, err)
		return
	}
	if p.Status != domain.PaymentStatusPending {
		c.JSON(http.StatusOK, gin.H{"message": "already processed"})
		return
	}

	switch event.Status {
	case domain.PaymentStatusPaid:
		now := time.Now()
		p.Status = domain.PaymentStatusPaid
		p.PaidAt = &now
		if err := h.payments.Update(p); err != nil {
			fail(c, err)
			return
		}
		if err := h.orders.ConfirmPayment(p.OrderID); err != nil {
			logger.Log.Error("payment confirmed but order update failed",
				zap.Uint("order_id", p.OrderID), zap.Error(err))
			fail(c, err)
			return
		}
	case domain.PaymentStatusExpired, domain.PaymentStatusFailed:
		p.Status = event.Status
		if err := h.payments.Update(p); err != nil {
			fail(c, err)
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	recordAudit(c, h.audit, nil, "webhook.payment."+event.Status, "payment", event.Reference)
	c.JSON(http.StatusOK, gin.H{"message": "processed"})
}

// verifySignature checks the HMAC when a secret is configured. Without one
// events are accepted unsigned.
func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if h.secret == "" {
		return true
	}
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
