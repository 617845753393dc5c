package models

import (
	"time"
)

// Review is left by a client on a completed order, once.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	ClientID  uint      `gorm:"not null;index" json:"client_id"`
	BoosterID uint      `gorm:"not null;index" json:"booster_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
