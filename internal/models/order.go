package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ClientID      uint       `gorm:"not null;index" json:"client_id"`
	BoosterID     *uint      `gorm:"index" json:"booster_id"` // nil until accepted
	Game          string     `gorm:"size:64;not null" json:"game"`
	GameMode      string     `gorm:"size:64;not null;index" json:"game_mode"`
	Status        string     `gorm:"size:20;not null;index" json:"status"`
	TotalCents    int64      `gorm:"not null" json:"total_cents"`
	CurrentRating int        `gorm:"not null" json:"current_rating"`
	TargetRating  int        `gorm:"not null" json:"target_rating"`
	ProofURL      string     `gorm:"size:512" json:"proof_url"`
	AcceptedAt    *time.Time `json:"accepted_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	CancelledAt   *time.Time `json:"cancelled_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Client  User  `gorm:"foreignKey:ClientID" json:"-"`
	Booster *User `gorm:"foreignKey:BoosterID" json:"-"`
}

func (Order) TableName() string { return "orders" }
