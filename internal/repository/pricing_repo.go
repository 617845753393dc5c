package repository

import (
	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) ListEnabled(game, gameMode string) ([]models.PricingConfig, error) {
	var list []models.PricingConfig
	err := r.db.Where("game = ? AND game_mode = ? AND enabled = ?", game, gameMode, true).
		Order("range_start").Find(&list).Error
	return list, err
}

func (r *PricingRepository) List(game string) ([]models.PricingConfig, error) {
	q := r.db.Order("game, game_mode, range_start")
	if game != "" {
		q = q.Where("game = ?", game)
	}
	var list []models.PricingConfig
	err := q.Find(&list).Error
	return list, err
}

// CreateExclusive inserts a bracket unless an enabled bracket for the same
// (game, game_mode) intersects [RangeStart, RangeEnd). Overlap check and
// insert share one transaction.
func (r *PricingRepository) CreateExclusive(p *models.PricingConfig) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.PricingConfig{}).
			Where("game = ? AND game_mode = ? AND enabled = ? AND range_start < ? AND range_end > ?",
				p.Game, p.GameMode, true, p.RangeEnd, p.RangeStart).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrRangeOverlap
		}
		return tx.Create(p).Error
	})
}

func (r *PricingRepository) Disable(id uint) error {
	return r.db.Model(&models.PricingConfig{}).Where("id = ?", id).Update("enabled", false).Error
}
