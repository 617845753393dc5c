package repository

import (
	"fmt"

	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// ListActiveAdmins returns the admins the platform share is split across.
func (r *UserRepository) ListActiveAdmins() ([]models.User, error) {
	var list []models.User
	err := r.db.Where("role = ? AND active = ?", domain.RoleAdmin, true).Order("id").Find(&list).Error
	return list, err
}

// Anonymize scrubs PII in place instead of hard-deleting, so completed order
// history keeps a valid owner row.
func (r *UserRepository) Anonymize(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":       "Deleted user",
		"email":      fmt.Sprintf("deleted-%d@rankboost.invalid", id),
		"payout_key": "",
		"active":     false,
	}).Error
}

func (r *UserRepository) List(search, role string, limit, offset int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{})
	if search != "" {
		q = q.Where("email LIKE ? OR name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.User
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}
