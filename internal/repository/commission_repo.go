package repository

import (
	"time"

	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

// CreateSplit writes the booster commission and all admin revenue rows
// atomically so a partial split is never observable.
func (r *CommissionRepository) CreateSplit(comm *models.BoosterCommission, revenues []*models.AdminRevenue) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comm).Error; err != nil {
			return err
		}
		for _, rev := range revenues {
			if err := tx.Create(rev).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CommissionRepository) GetByOrderID(orderID uint) (*models.BoosterCommission, error) {
	var c models.BoosterCommission
	err := r.db.Where("order_id = ?", orderID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommissionRepository) ListByBooster(boosterID uint, limit, offset int) ([]models.BoosterCommission, error) {
	var list []models.BoosterCommission
	err := r.db.Where("booster_id = ?", boosterID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *CommissionRepository) ListRevenueByOrder(orderID uint) ([]models.AdminRevenue, error) {
	var list []models.AdminRevenue
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&list).Error
	return list, err
}

// MarkPaid flips the commission and every revenue row for the order to PAID
// in one transaction.
func (r *CommissionRepository) MarkPaid(orderID uint, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.BoosterCommission{}).
			Where("order_id = ? AND status = ?", orderID, domain.CommissionStatusPending).
			Updates(map[string]interface{}{"status": domain.CommissionStatusPaid, "paid_at": at}).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.AdminRevenue{}).
			Where("order_id = ? AND status = ?", orderID, domain.CommissionStatusPending).
			Updates(map[string]interface{}{"status": domain.CommissionStatusPaid, "paid_at": at}).Error
	})
}

func (r *CommissionRepository) GetEnabledConfig() (*models.CommissionConfig, error) {
	var cfg models.CommissionConfig
	err := r.db.Where("enabled = ?", true).Order("created_at DESC").First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RotateConfig disables the current config and inserts the new one in one
// transaction, keeping the history append-only.
func (r *CommissionRepository) RotateConfig(cfg *models.CommissionConfig) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.CommissionConfig{}).
			Where("enabled = ?", true).Update("enabled", false).Error
		if err != nil {
			return err
		}
		cfg.Enabled = true
		return tx.Create(cfg).Error
	})
}

func (r *CommissionRepository) ListConfigHistory(limit int) ([]models.CommissionConfig, error) {
	var list []models.CommissionConfig
	err := r.db.Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}
