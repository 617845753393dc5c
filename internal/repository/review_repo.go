package repository

import (
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(rev *models.Review) error {
	return r.db.Create(rev).Error
}

func (r *ReviewRepository) GetByOrderID(orderID uint) (*models.Review, error) {
	var rev models.Review
	err := r.db.Where("order_id = ?", orderID).First(&rev).Error
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) ListByBooster(boosterID uint, limit, offset int) ([]models.Review, error) {
	var list []models.Review
	err := r.db.Where("booster_id = ?", boosterID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
