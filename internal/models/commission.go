package models

import (
	"time"
)

// BoosterCommission is the booster's share of a completed order. One row per
// order, created PENDING when the order completes and flipped to PAID by an
// admin payout confirmation.
type BoosterCommission struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderID     uint       `gorm:"uniqueIndex;not null" json:"order_id"`
	BoosterID   uint       `gorm:"not null;index" json:"booster_id"`
	AmountCents int64      `gorm:"not null" json:"amount_cents"`
	Percentage  float64    `gorm:"not null" json:"percentage"` // snapshot at completion time
	Status      string     `gorm:"size:20;not null;index" json:"status"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (BoosterCommission) TableName() string { return "booster_commissions" }

// AdminRevenue is the platform's retained share, split across active admins.
type AdminRevenue struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderID     uint       `gorm:"not null;index" json:"order_id"`
	AdminID     uint       `gorm:"not null;index" json:"admin_id"`
	AmountCents int64      `gorm:"not null" json:"amount_cents"`
	Percentage  float64    `gorm:"not null" json:"percentage"`
	Status      string     `gorm:"size:20;not null;index" json:"status"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (AdminRevenue) TableName() string { return "admin_revenues" }

// CommissionConfig is append-only: updating inserts a new enabled row and
// disables the previous one, keeping the full history.
type CommissionConfig struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	BoosterPercentage float64   `gorm:"not null" json:"booster_percentage"`
	AdminPercentage   float64   `gorm:"not null" json:"admin_percentage"`
	Enabled           bool      `gorm:"not null;index" json:"enabled"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (CommissionConfig) TableName() string { return "commission_configs" }
