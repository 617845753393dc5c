package repository

import (
	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type BoosterRepository struct {
	db *gorm.DB
}

func NewBoosterRepository(db *gorm.DB) *BoosterRepository {
	return &BoosterRepository{db: db}
}

func (r *BoosterRepository) Create(p *models.BoosterProfile) error {
	return r.db.Create(p).Error
}

func (r *BoosterRepository) GetByUserID(userID uint) (*models.BoosterProfile, error) {
	var p models.BoosterProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BoosterRepository) GetByID(id uint) (*models.BoosterProfile, error) {
	var p models.BoosterProfile
	err := r.db.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BoosterRepository) Update(p *models.BoosterProfile) error {
	return r.db.Save(p).Error
}

func (r *BoosterRepository) ListPending(limit, offset int) ([]models.BoosterProfile, error) {
	var list []models.BoosterProfile
	err := r.db.Where("verification_status = ?", domain.BoosterStatusPending).
		Order("created_at").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// Approve promotes the profile and the backing user role in one transaction.
func (r *BoosterRepository) Approve(p *models.BoosterProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", p.UserID).
			Update("role", domain.RoleBooster).Error
	})
}
