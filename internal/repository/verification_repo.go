package repository

import (
	"time"

	"rankboost/internal/models"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Issue expires any live code for the user+purpose and inserts the new one,
// so at most one live code exists at a time.
func (r *VerificationRepository) Issue(code *models.VerificationCode) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Model(&models.VerificationCode{}).
			Where("user_id = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?",
				code.UserID, code.Purpose, now).
			Update("expires_at", now).Error
		if err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

// FindLive fetches a matching unused, unexpired code.
func (r *VerificationRepository) FindLive(userID uint, code, purpose string) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := r.db.Where("user_id = ? AND code = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?",
		userID, code, purpose, time.Now()).First(&vc).Error
	if err != nil {
		return nil, err
	}
	return &vc, nil
}

func (r *VerificationRepository) MarkUsed(id uint) error {
	return r.db.Model(&models.VerificationCode{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", time.Now()).Error
}
