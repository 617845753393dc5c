package repository

import (
	"time"

	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateIfNoActive inserts a PENDING order unless the client already has a
// non-terminal order for the same game mode. Check and insert run in one
// transaction so two concurrent creates cannot both pass the check.
func (r *OrderRepository) CreateIfNoActive(o *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Order{}).
			Where("client_id = ? AND game_mode = ? AND status IN ?", o.ClientID, o.GameMode, domain.ActiveOrderStatuses).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateOrder
		}
		return tx.Create(o).Error
	})
}

func (r *OrderRepository) GetByID(id uint) (*models.Order, error) {
	var o models.Order
	err := r.db.First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Update(o *models.Order) error {
	return r.db.Save(o).Error
}

// Assign sets the booster and moves the order to IN_PROGRESS with a single
// conditional update; returns the number of rows changed so the caller can
// tell a lost race from a success.
func (r *OrderRepository) Assign(orderID, boosterID uint, at time.Time) (int64, error) {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND booster_id IS NULL AND status IN ?", orderID,
			[]string{domain.OrderStatusPending, domain.OrderStatusPaid}).
		Updates(map[string]interface{}{
			"booster_id":  boosterID,
			"status":      domain.OrderStatusInProgress,
			"accepted_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) ListByClient(clientID uint, limit, offset int) ([]models.Order, error) {
	var list []models.Order
	err := r.db.Where("client_id = ?", clientID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *OrderRepository) ListByBooster(boosterID uint, limit, offset int) ([]models.Order, error) {
	var list []models.Order
	err := r.db.Where("booster_id = ?", boosterID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// ListAvailable returns paid, unassigned orders boosters can pick up.
func (r *OrderRepository) ListAvailable(limit, offset int) ([]models.Order, error) {
	var list []models.Order
	err := r.db.Where("booster_id IS NULL AND status IN ?",
		[]string{domain.OrderStatusPending, domain.OrderStatusPaid}).
		Order("created_at").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *OrderRepository) CountActiveByClient(clientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("client_id = ? AND status IN ?", clientID, domain.ActiveOrderStatuses).
		Count(&count).Error
	return count, err
}

func (r *OrderRepository) CountActiveByBooster(boosterID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("booster_id = ? AND status IN ?", boosterID, domain.ActiveOrderStatuses).
		Count(&count).Error
	return count, err
}
