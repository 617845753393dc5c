package repository

import (
	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) Update(p *models.Payment) error {
	return r.db.Save(p).Error
}

func (r *PaymentRepository) GetByProviderRef(ref string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.Where("provider_ref = ?", ref).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByOrderID(orderID uint) ([]models.Payment, error) {
	var list []models.Payment
	err := r.db.Where("order_id = ?", orderID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// HasPaid reports whether the order has at least one confirmed payment.
func (r *PaymentRepository) HasPaid(orderID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, domain.PaymentStatusPaid).
		Count(&count).Error
	return count > 0, err
}
