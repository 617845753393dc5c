package service

import (
	"errors"
	"time"

	"rankboost/internal/domain"
	"rankboost/internal/logger"
	"rankboost/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrApplicationExists = errors.New("booster application already submitted")

type BoosterProfileStore interface {
	Create(p *models.BoosterProfile) error
	GetByUserID(userID uint) (*models.BoosterProfile, error)
	GetByID(id uint) (*models.BoosterProfile, error)
	Update(p *models.BoosterProfile) error
	ListPending(limit, offset int) ([]models.BoosterProfile, error)
	Approve(p *models.BoosterProfile) error
}

type BoosterService struct {
	profiles BoosterProfileStore
	notif    Notifier
}

func NewBoosterService(profiles BoosterProfileStore, notif Notifier) *BoosterService {
	return &BoosterService{profiles: profiles, notif: notif}
}

// Apply submits a PENDING booster application for review. One per user; a
// rejected applicant may re-apply by updating the existing profile.
func (s *BoosterService) Apply(userID uint, bio, languages string) (*models.BoosterProfile, error) {
	existing, err := s.profiles.GetByUserID(userID)
	if err == nil {
		if existing.VerificationStatus == domain.BoosterStatusRejected {
			existing.Bio = bio
			existing.Languages = languages
			existing.VerificationStatus = domain.BoosterStatusPending
			existing.ReviewedBy = nil
			existing.ReviewedAt = nil
			if err := s.profiles.Update(existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
		return nil, ErrApplicationExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	p := &models.BoosterProfile{
		UserID:             userID,
		Bio:                bio,
		Languages:          languages,
		VerificationStatus: domain.BoosterStatusPending,
	}
	if err := s.profiles.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Approve verifies the application and promotes the user to the BOOSTER role.
func (s *BoosterService) Approve(profileID, adminID uint) (*models.BoosterProfile, error) {
	p, err := s.profiles.GetByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBoosterNotVerified
		}
		return nil, err
	}
	now := time.Now()
	p.VerificationStatus = domain.BoosterStatusVerified
	p.ReviewedBy = &adminID
	p.ReviewedAt = &now
	if err := s.profiles.Approve(p); err != nil {
		return nil, err
	}
	s.notifyQuiet(p.UserID, "BOOSTER_APPROVED", "Application approved",
		"Your booster application was approved. You can now accept orders.")
	return p, nil
}

func (s *BoosterService) Reject(profileID, adminID uint, reason string) (*models.BoosterProfile, error) {
	p, err := s.profiles.GetByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBoosterNotVerified
		}
		return nil, err
	}
	now := time.Now()
	p.VerificationStatus = domain.BoosterStatusRejected
	p.ReviewedBy = &adminID
	p.ReviewedAt = &now
	if err := s.profiles.Update(p); err != nil {
		return nil, err
	}
	body := "Your booster application was not approved."
	if reason != "" {
		body += " Reason: " + reason
	}
	s.notifyQuiet(p.UserID, "BOOSTER_REJECTED", "Application rejected", body)
	return p, nil
}

func (s *BoosterService) Profile(userID uint) (*models.BoosterProfile, error) {
	p, err := s.profiles.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBoosterNotVerified
		}
		return nil, err
	}
	return p, nil
}

func (s *BoosterService) ListPending(limit, offset int) ([]models.BoosterProfile, error) {
	return s.profiles.ListPending(limit, offset)
}

func (s *BoosterService) notifyQuiet(userID uint, typ, title, body string) {
	if s.notif == nil {
		return
	}
	if err := s.notif.Notify(userID, typ, title, body, nil); err != nil {
		logger.Log.Warn("notification failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}
