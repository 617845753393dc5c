package service

import (
	"errors"
	"time"

	"rankboost/internal/domain"
	"rankboost/internal/logger"
	"rankboost/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DisputeStore interface {
	Create(d *models.Dispute) error
	GetByID(id uint) (*models.Dispute, error)
	Update(d *models.Dispute) error
	CreateMessage(m *models.DisputeMessage) error
	ListInvolving(userID uint, limit, offset int) ([]models.Dispute, error)
	ListAll(status string, limit, offset int) ([]models.Dispute, error)
}

// OrderFinalizer completes an order and runs the commission split. Satisfied
// by OrderService; disputes resolved in the booster's favor go through it.
type OrderFinalizer interface {
	Finalize(o *models.Order) error
}

type DisputeService struct {
	disputes  DisputeStore
	orders    OrderStore
	finalizer OrderFinalizer
	notif     Notifier
}

func NewDisputeService(disputes DisputeStore, orders OrderStore, finalizer OrderFinalizer, notif Notifier) *DisputeService {
	return &DisputeService{disputes: disputes, orders: orders, finalizer: finalizer, notif: notif}
}

// Open raises a dispute on an order. The client, the assigned booster or an
// admin may open one, and a non-terminal order is parked in DISPUTED while it
// runs.
func (s *DisputeService) Open(orderID, userID uint, isAdmin bool, reason string) (*models.Dispute, error) {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if !isAdmin && !s.isParticipant(o, userID) {
		return nil, domain.ErrForbidden
	}
	d := &models.Dispute{
		OrderID:   orderID,
		CreatorID: userID,
		Reason:    reason,
		Status:    domain.DisputeStatusOpen,
	}
	if err := s.disputes.Create(d); err != nil {
		return nil, err
	}
	if !domain.IsTerminalOrderStatus(o.Status) && o.Status != domain.OrderStatusDisputed {
		o.Status = domain.OrderStatusDisputed
		if err := s.orders.Update(o); err != nil {
			return nil, err
		}
	}
	s.notifyOthers(o, userID, "DISPUTE_OPENED", "Dispute opened",
		"A dispute was opened on your order.", orderData(o.ID))
	return d, nil
}

// PostMessage appends to an OPEN dispute's thread. Participants and admins
// only.
func (s *DisputeService) PostMessage(disputeID, senderID uint, isAdmin bool, body string) (*models.DisputeMessage, error) {
	d, err := s.disputes.GetByID(disputeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}
	o, err := s.orders.GetByID(d.OrderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !s.isParticipant(o, senderID) && d.CreatorID != senderID {
		return nil, domain.ErrForbidden
	}
	if d.Status != domain.DisputeStatusOpen {
		return nil, domain.ErrDisputeClosed
	}
	m := &models.DisputeMessage{
		DisputeID: disputeID,
		SenderID:  senderID,
		Body:      body,
	}
	if err := s.disputes.CreateMessage(m); err != nil {
		return nil, err
	}
	s.notifyOthers(o, senderID, "DISPUTE_MESSAGE", "New dispute message",
		"A new message was posted on your dispute.", orderData(o.ID))
	return m, nil
}

// Resolve closes an OPEN dispute with one of the terminal outcomes. Booster
// favor completes the order and triggers the commission split; client favor
// cancels it. NO_FAULT leaves the order for the admin to move manually.
func (s *DisputeService) Resolve(disputeID, adminID uint, outcome, resolution string) (*models.Dispute, error) {
	valid := false
	for _, st := range domain.ResolvedDisputeStatuses {
		if st == outcome {
			valid = true
			break
		}
	}
	if !valid {
		return nil, domain.NewCodedError(domain.CodeInvalidStatusTransition, "unknown dispute outcome "+outcome)
	}
	d, err := s.disputes.GetByID(disputeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}
	if d.Status != domain.DisputeStatusOpen {
		return nil, domain.ErrDisputeClosed
	}
	o, err := s.orders.GetByID(d.OrderID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	d.Status = outcome
	d.Resolution = resolution
	d.ResolvedBy = &adminID
	d.ResolvedAt = &now
	if err := s.disputes.Update(d); err != nil {
		return nil, err
	}
	switch outcome {
	case domain.DisputeStatusResolvedBoosterFavor:
		if o.Status == domain.OrderStatusDisputed {
			if err := s.finalizer.Finalize(o); err != nil {
				return nil, err
			}
		}
	case domain.DisputeStatusResolvedClientFavor:
		if o.Status == domain.OrderStatusDisputed {
			o.Status = domain.OrderStatusCancelled
			o.CancelledAt = &now
			if err := s.orders.Update(o); err != nil {
				return nil, err
			}
		}
	}
	s.notifyOthers(o, adminID, "DISPUTE_RESOLVED", "Dispute resolved",
		"Your dispute has been resolved: "+outcome, orderData(o.ID))
	return d, nil
}

// Get enforces the same visibility as the thread itself.
func (s *DisputeService) Get(disputeID, userID uint, isAdmin bool) (*models.Dispute, error) {
	d, err := s.disputes.GetByID(disputeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}
	if isAdmin || d.CreatorID == userID {
		return d, nil
	}
	o, err := s.orders.GetByID(d.OrderID)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(o, userID) {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

func (s *DisputeService) ListMine(userID uint, limit, offset int) ([]models.Dispute, error) {
	return s.disputes.ListInvolving(userID, limit, offset)
}

func (s *DisputeService) ListAll(status string, limit, offset int) ([]models.Dispute, error) {
	return s.disputes.ListAll(status, limit, offset)
}

func (s *DisputeService) isParticipant(o *models.Order, userID uint) bool {
	if o.ClientID == userID {
		return true
	}
	return o.BoosterID != nil && *o.BoosterID == userID
}

// notifyOthers fans out to the order participants except the actor.
func (s *DisputeService) notifyOthers(o *models.Order, actorID uint, typ, title, body string, data map[string]interface{}) {
	if s.notif == nil {
		return
	}
	targets := []uint{o.ClientID}
	if o.BoosterID != nil {
		targets = append(targets, *o.BoosterID)
	}
	for _, id := range targets {
		if id == actorID {
			continue
		}
		if err := s.notif.Notify(id, typ, title, body, data); err != nil {
			logger.Log.Warn("notification failed", zap.Uint("user_id", id), zap.Error(err))
		}
	}
}
