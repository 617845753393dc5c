package repository

import (
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(s *models.Service) error {
	return r.db.Create(s).Error
}

func (r *ServiceRepository) GetByID(id uint) (*models.Service, error) {
	var s models.Service
	err := r.db.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) Update(s *models.Service) error {
	return r.db.Save(s).Error
}

func (r *ServiceRepository) Delete(id uint) error {
	return r.db.Delete(&models.Service{}, id).Error
}

func (r *ServiceRepository) ListActive(game string) ([]models.Service, error) {
	q := r.db.Where("active = ?", true).Order("game, name")
	if game != "" {
		q = q.Where("game = ?", game)
	}
	var list []models.Service
	err := q.Find(&list).Error
	return list, err
}

func (r *ServiceRepository) ListAll() ([]models.Service, error) {
	var list []models.Service
	err := r.db.Order("game, name").Find(&list).Error
	return list, err
}
