package models

import (
	"time"
)

// VerificationCode is a 6-digit one-time code. At most one live (unused,
// unexpired) code exists per (user, purpose); issuing a new one expires any
// prior live code first.
type VerificationCode struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Code      string     `gorm:"size:6;not null" json:"-"`
	Purpose   string     `gorm:"size:32;not null;index" json:"purpose"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (VerificationCode) TableName() string { return "verification_codes" }
