package models

import (
	"time"

	"rankboost/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:128" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	Role         string     `gorm:"size:20;not null;index" json:"role"` // CLIENT | BOOSTER | ADMIN
	Active       bool       `gorm:"default:false;index" json:"active"`
	// PayoutKey is AES-GCM encrypted at rest; never serialized.
	PayoutKey  string         `gorm:"size:512" json:"-"`
	VerifiedAt *time.Time     `json:"verified_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	BoosterProfile *BoosterProfile `gorm:"foreignKey:UserID" json:"booster_profile,omitempty"`
}

func (u *User) IsAdmin() bool   { return u.Role == domain.RoleAdmin }
func (u *User) IsBooster() bool { return u.Role == domain.RoleBooster }
func (u *User) IsClient() bool  { return u.Role == domain.RoleClient }
