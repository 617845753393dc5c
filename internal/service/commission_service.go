package service

import (
	"errors"
	"math"
	"time"

	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

// SplitTolerance is how far booster+admin percentages may drift from 1.0.
const SplitTolerance = 0.01

type CommissionStore interface {
	GetEnabledConfig() (*models.CommissionConfig, error)
	RotateConfig(cfg *models.CommissionConfig) error
	ListConfigHistory(limit int) ([]models.CommissionConfig, error)
	CreateSplit(comm *models.BoosterCommission, revenues []*models.AdminRevenue) error
	GetByOrderID(orderID uint) (*models.BoosterCommission, error)
	ListByBooster(boosterID uint, limit, offset int) ([]models.BoosterCommission, error)
	ListRevenueByOrder(orderID uint) ([]models.AdminRevenue, error)
	MarkPaid(orderID uint, at time.Time) error
}

type AdminLister interface {
	ListActiveAdmins() ([]models.User, error)
}

type PaidChecker interface {
	HasPaid(orderID uint) (bool, error)
}

type OrderGetter interface {
	GetByID(id uint) (*models.Order, error)
}

type CommissionService struct {
	store    CommissionStore
	admins   AdminLister
	orders   OrderGetter
	payments PaidChecker
}

func NewCommissionService(store CommissionStore, admins AdminLister, orders OrderGetter, payments PaidChecker) *CommissionService {
	return &CommissionService{store: store, admins: admins, orders: orders, payments: payments}
}

// SplitAmounts divides an order total between booster and platform. The two
// amounts always sum to the total exactly: the booster share is rounded and
// the platform keeps the rest.
func SplitAmounts(totalCents int64, boosterPct float64) (boosterCents, platformCents int64) {
	boosterCents = int64(math.Round(float64(totalCents) * boosterPct))
	platformCents = totalCents - boosterCents
	return boosterCents, platformCents
}

// Split writes the PENDING commission and admin revenue rows for a completed
// order using the currently-enabled config. The platform share is divided
// equally across active admins, remainder cents going to the first.
func (s *CommissionService) Split(o *models.Order) error {
	if o.BoosterID == nil {
		return domain.ErrForbidden
	}
	cfg, err := s.store.GetEnabledConfig()
	if err != nil {
		return err
	}
	boosterCents, platformCents := SplitAmounts(o.TotalCents, cfg.BoosterPercentage)

	admins, err := s.admins.ListActiveAdmins()
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return errors.New("no active admins to receive platform revenue")
	}
	share := platformCents / int64(len(admins))
	remainder := platformCents % int64(len(admins))
	revenues := make([]*models.AdminRevenue, 0, len(admins))
	for i, admin := range admins {
		amount := share
		if i == 0 {
			amount += remainder
		}
		revenues = append(revenues, &models.AdminRevenue{
			OrderID:     o.ID,
			AdminID:     admin.ID,
			AmountCents: amount,
			Percentage:  cfg.AdminPercentage,
			Status:      domain.CommissionStatusPending,
		})
	}
	comm := &models.BoosterCommission{
		OrderID:     o.ID,
		BoosterID:   *o.BoosterID,
		AmountCents: boosterCents,
		Percentage:  cfg.BoosterPercentage,
		Status:      domain.CommissionStatusPending,
	}
	return s.store.CreateSplit(comm, revenues)
}

// ConfirmPayout flips the order's commission and revenue rows to PAID. Only
// valid once the order is COMPLETED and has a confirmed payment.
func (s *CommissionService) ConfirmPayout(orderID uint) error {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	if o.Status != domain.OrderStatusCompleted {
		return domain.ErrTransition(o.Status, domain.OrderStatusCompleted)
	}
	paid, err := s.payments.HasPaid(orderID)
	if err != nil {
		return err
	}
	if !paid {
		return domain.ErrPaymentRequired
	}
	if _, err := s.store.GetByOrderID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	return s.store.MarkPaid(orderID, time.Now())
}

// UpdateConfig rotates in a new commission split. Percentages must sum to
// 1.0 within tolerance; history is kept by disabling rather than deleting.
func (s *CommissionService) UpdateConfig(boosterPct, adminPct float64) (*models.CommissionConfig, error) {
	if boosterPct < 0 || adminPct < 0 || math.Abs(boosterPct+adminPct-1.0) > SplitTolerance {
		return nil, domain.ErrInvalidSplit
	}
	cfg := &models.CommissionConfig{
		BoosterPercentage: boosterPct,
		AdminPercentage:   adminPct,
	}
	if err := s.store.RotateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *CommissionService) CurrentConfig() (*models.CommissionConfig, error) {
	return s.store.GetEnabledConfig()
}

func (s *CommissionService) ConfigHistory(limit int) ([]models.CommissionConfig, error) {
	return s.store.ListConfigHistory(limit)
}

func (s *CommissionService) ListForBooster(boosterID uint, limit, offset int) ([]models.BoosterCommission, error) {
	return s.store.ListByBooster(boosterID, limit, offset)
}
