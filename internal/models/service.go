package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a purchasable catalog entry managed by admins. Orders reference
// game/mode directly, so catalog rows can change without breaking history.
type Service struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Game        string         `gorm:"size:64;not null;index" json:"game"`
	Type        string         `gorm:"size:64;not null" json:"type"`
	Name        string         `gorm:"size:128;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	PriceCents  int64          `gorm:"not null" json:"price_cents"`
	DurationDays int           `json:"duration_days"`
	Active      bool           `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Service) TableName() string { return "services" }
