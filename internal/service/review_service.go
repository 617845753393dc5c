package service

import (
	"errors"

	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type ReviewStore interface {
	Create(rev *models.Review) error
	GetByOrderID(orderID uint) (*models.Review, error)
	ListByBooster(boosterID uint, limit, offset int) ([]models.Review, error)
}

type ProfileStore interface {
	GetByUserID(userID uint) (*models.BoosterProfile, error)
	Update(p *models.BoosterProfile) error
}

type ReviewService struct {
	reviews  ReviewStore
	orders   OrderGetter
	profiles ProfileStore
}

func NewReviewService(reviews ReviewStore, orders OrderGetter, profiles ProfileStore) *ReviewService {
	return &ReviewService{reviews: reviews, orders: orders, profiles: profiles}
}

// Add leaves a one-time review on a completed order and folds the rating
// into the booster's running average.
func (s *ReviewService) Add(orderID, clientID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.NewCodedError(domain.CodeInvalidRange, "rating must be between 1 and 5")
	}
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if o.ClientID != clientID {
		return nil, domain.ErrForbidden
	}
	if o.Status != domain.OrderStatusCompleted || o.BoosterID == nil {
		return nil, domain.ErrTransition(o.Status, domain.OrderStatusCompleted)
	}
	if _, err := s.reviews.GetByOrderID(orderID); err == nil {
		return nil, domain.ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	rev := &models.Review{
		OrderID:   orderID,
		ClientID:  clientID,
		BoosterID: *o.BoosterID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(rev); err != nil {
		return nil, err
	}
	if p, err := s.profiles.GetByUserID(*o.BoosterID); err == nil {
		p.Rating = (p.Rating*float64(p.TotalReviews) + float64(rating)) / float64(p.TotalReviews+1)
		p.TotalReviews++
		if err := s.profiles.Update(p); err != nil {
			return nil, err
		}
	}
	return rev, nil
}

func (s *ReviewService) ListForBooster(boosterID uint, limit, offset int) ([]models.Review, error) {
	return s.reviews.ListByBooster(boosterID, limit, offset)
}
