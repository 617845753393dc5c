package models

import (
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderID     uint       `gorm:"not null;index" json:"order_id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	AmountCents int64      `gorm:"not null" json:"amount_cents"`
	Currency    string     `gorm:"size:3;default:'USD'" json:"currency"`
	Provider    string     `gorm:"size:50;not null" json:"provider"`
	ProviderRef string     `gorm:"size:255;uniqueIndex" json:"provider_ref"`
	Status      string     `gorm:"size:20;not null;index" json:"status"` // PENDING, PAID, EXPIRED, FAILED
	ExpiresAt   *time.Time `json:"expires_at"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (Payment) TableName() string { return "payments" }
