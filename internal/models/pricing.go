package models

import (
	"time"
)

// PricingConfig is one admin-configured price bracket. A boost through
// [RangeStart, RangeEnd) costs PriceCents per Unit rating points. Enabled
// brackets for the same (game, game_mode) must not overlap.
type PricingConfig struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Game       string    `gorm:"size:64;not null;index:idx_pricing_game_mode" json:"game"`
	GameMode   string    `gorm:"size:64;not null;index:idx_pricing_game_mode" json:"game_mode"`
	RangeStart int       `gorm:"not null" json:"range_start"`
	RangeEnd   int       `gorm:"not null" json:"range_end"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	Unit       int       `gorm:"not null;default:100" json:"unit"`
	Enabled    bool      `gorm:"not null;index" json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PricingConfig) TableName() string { return "pricing_configs" }
