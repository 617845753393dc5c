package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rankboost/internal/domain"
	"rankboost/internal/logger"
	"rankboost/internal/models"
	"rankboost/pkg/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderStore interface {
	CreateIfNoActive(o *models.Order) error
	GetByID(id uint) (*models.Order, error)
	Update(o *models.Order) error
	Assign(orderID, boosterID uint, at time.Time) (int64, error)
	ListByClient(clientID uint, limit, offset int) ([]models.Order, error)
	ListByBooster(boosterID uint, limit, offset int) ([]models.Order, error)
	ListAvailable(limit, offset int) ([]models.Order, error)
}

type PaymentCreator interface {
	Create(p *models.Payment) error
}

type BoosterGetter interface {
	GetByUserID(userID uint) (*models.BoosterProfile, error)
}

// Notifier persists a notification and best-effort pushes it; failures must
// never fail the calling operation.
type Notifier interface {
	Notify(userID uint, notifType, title, body string, data map[string]interface{}) error
}

// allowed one-directional transitions; cancel and dispute are handled by
// their own operations with extra checks.
var orderTransitions = map[string][]string{
	domain.OrderStatusPending:    {domain.OrderStatusPaid, domain.OrderStatusCancelled},
	domain.OrderStatusPaid:       {domain.OrderStatusInProgress, domain.OrderStatusCancelled},
	domain.OrderStatusInProgress: {domain.OrderStatusCompleted, domain.OrderStatusDisputed},
	domain.OrderStatusDisputed:   {domain.OrderStatusCompleted, domain.OrderStatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, t := range orderTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	orders      OrderStore
	payments    PaymentCreator
	boosters    BoosterGetter
	pricing     *PricingService
	commissions *CommissionService
	notif       Notifier
	provider    payment.Provider
	payExpiry   time.Duration
}

func NewOrderService(
	orders OrderStore,
	payments PaymentCreator,
	boosters BoosterGetter,
	pricing *PricingService,
	commissions *CommissionService,
	notif Notifier,
	provider payment.Provider,
	payExpiry time.Duration,
) *OrderService {
	return &OrderService{
		orders:      orders,
		payments:    payments,
		boosters:    boosters,
		pricing:     pricing,
		commissions: commissions,
		notif:       notif,
		provider:    provider,
		payExpiry:   payExpiry,
	}
}

// Create prices the requested boost, inserts a PENDING order unless the
// client already has an active one for the game mode, and opens a checkout
// with the payment provider.
func (s *OrderService) Create(ctx context.Context, clientID uint, game, gameMode string, current, target int) (*models.Order, *models.Payment, string, error) {
	total, err := s.pricing.Quote(game, gameMode, current, target)
	if err != nil {
		return nil, nil, "", err
	}
	o := &models.Order{
		ClientID:      clientID,
		Game:          game,
		GameMode:      gameMode,
		Status:        domain.OrderStatusPending,
		TotalCents:    total,
		CurrentRating: current,
		TargetRating:  target,
	}
	if err := s.orders.CreateIfNoActive(o); err != nil {
		return nil, nil, "", err
	}
	checkout, err := s.provider.InitiatePayment(ctx, payment.CheckoutRequest{
		OrderID:     o.ID,
		UserID:      clientID,
		AmountCents: total,
		Currency:    "USD",
		Description: fmt.Sprintf("%s %s boost %d -> %d", game, gameMode, current, target),
		Reference:   uuid.NewString(),
		ExpiresIn:   s.payExpiry,
	})
	if err != nil {
		return nil, nil, "", err
	}
	p := &models.Payment{
		OrderID:     o.ID,
		UserID:      clientID,
		AmountCents: total,
		Currency:    "USD",
		Provider:    "gateway",
		ProviderRef: checkout.Reference,
		Status:      domain.PaymentStatusPending,
		ExpiresAt:   &checkout.ExpiresAt,
	}
	if err := s.payments.Create(p); err != nil {
		return nil, nil, "", err
	}
	return o, p, checkout.CheckoutURL, nil
}

// Accept assigns a verified booster to an unassigned PENDING/PAID order.
// The assignment is a single conditional update, so a second booster racing
// for the same order loses cleanly with ORDER_ALREADY_ACCEPTED.
func (s *OrderService) Accept(orderID, boosterUserID uint) (*models.Order, error) {
	profile, err := s.boosters.GetByUserID(boosterUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBoosterNotVerified
		}
		return nil, err
	}
	if profile.VerificationStatus != domain.BoosterStatusVerified {
		return nil, domain.ErrBoosterNotVerified
	}
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if o.BoosterID != nil {
		return nil, domain.ErrOrderAlreadyAccepted
	}
	if o.Status != domain.OrderStatusPending && o.Status != domain.OrderStatusPaid {
		return nil, domain.ErrTransition(o.Status, domain.OrderStatusInProgress)
	}
	now := time.Now()
	rows, err := s.orders.Assign(orderID, boosterUserID, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrOrderAlreadyAccepted
	}
	o.BoosterID = &boosterUserID
	o.Status = domain.OrderStatusInProgress
	o.AcceptedAt = &now
	s.notifyQuiet(o.ClientID, "ORDER_ACCEPTED", "Booster assigned",
		"A booster accepted your order and is starting work.", orderData(o.ID))
	return o, nil
}

// Complete marks the order done and creates the commission split. Only the
// assigned booster may complete.
func (s *OrderService) Complete(orderID, boosterUserID uint) (*models.Order, error) {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if o.BoosterID == nil || *o.BoosterID != boosterUserID {
		return nil, domain.ErrForbidden
	}
	if o.Status != domain.OrderStatusInProgress {
		return nil, domain.ErrTransition(o.Status, domain.OrderStatusCompleted)
	}
	if err := s.Finalize(o); err != nil {
		return nil, err
	}
	return o, nil
}

// Finalize moves an order to COMPLETED, writes the commission split and
// notifies the client. Also used by dispute resolution in the booster's
// favor, hence exported through the OrderFinalizer interface.
func (s *OrderService) Finalize(o *models.Order) error {
	now := time.Now()
	o.Status = domain.OrderStatusCompleted
	o.CompletedAt = &now
	if err := s.orders.Update(o); err != nil {
		return err
	}
	if err := s.commissions.Split(o); err != nil {
		return err
	}
	s.notifyQuiet(o.ClientID, "ORDER_COMPLETED", "Order completed",
		"Your boost is finished. You can now leave a review.", orderData(o.ID))
	return nil
}

// Cancel is client-only and valid from PENDING alone; the error names the
// current status so the client knows why.
func (s *OrderService) Cancel(orderID, clientID uint) (*models.Order, error) {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if o.ClientID != clientID {
		return nil, domain.ErrForbidden
	}
	if o.Status != domain.OrderStatusPending {
		return nil, domain.ErrTransition(o.Status, domain.OrderStatusCancelled)
	}
	now := time.Now()
	o.Status = domain.OrderStatusCancelled
	o.CancelledAt = &now
	if err := s.orders.Update(o); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus is the admin's generic transition, validated against the same
// table the specific operations use.
func (s *OrderService) UpdateStatus(orderID uint, newStatus string) (*models.Order, error) {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if !transitionAllowed(o.Status, newStatus) {
		return nil, domain.ErrTransition(o.Status, newStatus)
	}
	now := time.Now()
	switch newStatus {
	case domain.OrderStatusCompleted:
		if err := s.Finalize(o); err != nil {
			return nil, err
		}
		return o, nil
	case domain.OrderStatusCancelled:
		o.CancelledAt = &now
	}
	o.Status = newStatus
	if err := s.orders.Update(o); err != nil {
		return nil, err
	}
	return o, nil
}

// ConfirmPayment is called from the payment webhook once the provider
// reports the charge as settled.
func (s *OrderService) ConfirmPayment(orderID uint) error {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	if o.Status != domain.OrderStatusPending {
		return nil // already progressed; webhook retries are no-ops
	}
	o.Status = domain.OrderStatusPaid
	if err := s.orders.Update(o); err != nil {
		return err
	}
	s.notifyQuiet(o.ClientID, "ORDER_PAID", "Payment confirmed",
		"Your payment was confirmed. A booster will pick up the order soon.", orderData(o.ID))
	return nil
}

// SetProof stores the completion screenshot URL. Assigned booster only,
// while the order is still in progress.
func (s *OrderService) SetProof(orderID, boosterUserID uint, url string) (*models.Order, error) {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if o.BoosterID == nil || *o.BoosterID != boosterUserID {
		return nil, domain.ErrForbidden
	}
	if o.Status != domain.OrderStatusInProgress {
		return nil, domain.NewCodedError(domain.CodeInvalidStatusTransition,
			fmt.Sprintf("proof can only be attached while in progress, order is %s", o.Status))
	}
	o.ProofURL = url
	if err := s.orders.Update(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *OrderService) ListForClient(clientID uint, limit, offset int) ([]models.Order, error) {
	return s.orders.ListByClient(clientID, limit, offset)
}

func (s *OrderService) ListForBooster(boosterID uint, limit, offset int) ([]models.Order, error) {
	return s.orders.ListByBooster(boosterID, limit, offset)
}

func (s *OrderService) ListAvailable(limit, offset int) ([]models.Order, error) {
	return s.orders.ListAvailable(limit, offset)
}

func (s *OrderService) notifyQuiet(userID uint, typ, title, body string, data map[string]interface{}) {
	if s.notif == nil {
		return
	}
	if err := s.notif.Notify(userID, typ, title, body, data); err != nil {
		logger.Log.Warn("notification failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

func orderData(orderID uint) map[string]interface{} {
	return map[string]interface{}{"order_id": orderID}
}
