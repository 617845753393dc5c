package service

import (
	"math"

	"rankboost/internal/domain"
	"rankboost/internal/models"
)

// PricingStore is the slice of the pricing repository the resolver needs.
type PricingStore interface {
	ListEnabled(game, gameMode string) ([]models.PricingConfig, error)
	List(game string) ([]models.PricingConfig, error)
	CreateExclusive(p *models.PricingConfig) error
	Disable(id uint) error
}

type PricingService struct {
	store PricingStore
}

func NewPricingService(store PricingStore) *PricingService {
	return &PricingService{store: store}
}

// Quote prices a boost over [current, target). The interval must be fully
// covered by enabled, non-overlapping brackets; each bracket contributes
// (overlap / unit) * price, rounded to whole cents.
func (s *PricingService) Quote(game, gameMode string, current, target int) (int64, error) {
	if current >= target {
		return 0, domain.ErrInvalidRange
	}
	brackets, err := s.store.ListEnabled(game, gameMode)
	if err != nil {
		return 0, err
	}
	var total int64
	cursor := current
	for cursor < target {
		var covering *models.PricingConfig
		for i := range brackets {
			if brackets[i].RangeStart <= cursor && cursor < brackets[i].RangeEnd {
				covering = &brackets[i]
				break
			}
		}
		if covering == nil {
			return 0, domain.ErrRangeGap(cursor)
		}
		end := covering.RangeEnd
		if target < end {
			end = target
		}
		overlap := end - cursor
		total += int64(math.Round(float64(overlap) / float64(covering.Unit) * float64(covering.PriceCents)))
		cursor = end
	}
	return total, nil
}

// CreateBracket validates and inserts a new enabled bracket. The overlap
// check against existing enabled brackets runs inside the store transaction.
func (s *PricingService) CreateBracket(game, gameMode string, rangeStart, rangeEnd int, priceCents int64, unit int) (*models.PricingConfig, error) {
	if rangeStart >= rangeEnd {
		return nil, domain.ErrInvalidRange
	}
	if unit <= 0 || priceCents <= 0 {
		return nil, domain.NewCodedError(domain.CodeInvalidRange, "unit and price must be positive")
	}
	p := &models.PricingConfig{
		Game:       game,
		GameMode:   gameMode,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		PriceCents: priceCents,
		Unit:       unit,
		Enabled:    true,
	}
	if err := s.store.CreateExclusive(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PricingService) ListBrackets(game string) ([]models.PricingConfig, error) {
	return s.store.List(game)
}

func (s *PricingService) DisableBracket(id uint) error {
	return s.store.Disable(id)
}
