package models

import (
	"time"

	"gorm.io/gorm"
)

// BoosterProfile extends a User who applied to work as a booster. Rating and
// TotalReviews are running aggregates updated on each new review.
type BoosterProfile struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio                string     `gorm:"type:text" json:"bio"`
	Languages          string     `gorm:"size:255" json:"languages"` // comma separated
	VerificationStatus string     `gorm:"size:20;not null;index" json:"verification_status"`
	Rating             float64    `gorm:"default:0" json:"rating"`
	TotalReviews       int        `gorm:"default:0" json:"total_reviews"`
	ReviewedBy         *uint      `json:"-"` // admin who approved/rejected
	ReviewedAt         *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BoosterProfile) TableName() string { return "booster_profiles" }
