package repository

import (
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type DisputeRepository struct {
	db *gorm.DB
}

func NewDisputeRepository(db *gorm.DB) *DisputeRepository {
	return &DisputeRepository{db: db}
}

func (r *DisputeRepository) Create(d *models.Dispute) error {
	return r.db.Create(d).Error
}

func (r *DisputeRepository) GetByID(id uint) (*models.Dispute, error) {
	var d models.Dispute
	err := r.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at")
	}).First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DisputeRepository) Update(d *models.Dispute) error {
	return r.db.Save(d).Error
}

func (r *DisputeRepository) CreateMessage(m *models.DisputeMessage) error {
	return r.db.Create(m).Error
}

// ListInvolving returns disputes the user created or that reference one of
// their orders (as client or booster).
func (r *DisputeRepository) ListInvolving(userID uint, limit, offset int) ([]models.Dispute, error) {
	var list []models.Dispute
	err := r.db.
		Joins("JOIN orders ON orders.id = disputes.order_id").
		Where("disputes.creator_id = ? OR orders.client_id = ? OR orders.booster_id = ?", userID, userID, userID).
		Order("disputes.created_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *DisputeRepository) ListAll(status string, limit, offset int) ([]models.Dispute, error) {
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Dispute
	err := q.Find(&list).Error
	return list, err
}
