package models

import (
	"time"
)

type Dispute struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	OrderID    uint       `gorm:"not null;index" json:"order_id"`
	CreatorID  uint       `gorm:"not null;index" json:"creator_id"`
	Reason     string     `gorm:"type:text;not null" json:"reason"`
	Status     string     `gorm:"size:32;not null;index" json:"status"`
	Resolution string     `gorm:"type:text" json:"resolution"`
	ResolvedBy *uint      `json:"resolved_by"`
	ResolvedAt *time.Time `json:"resolved_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Order    Order            `gorm:"foreignKey:OrderID" json:"-"`
	Messages []DisputeMessage `gorm:"foreignKey:DisputeID" json:"messages,omitempty"`
}

func (Dispute) TableName() string { return "disputes" }

type DisputeMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DisputeID uint      `gorm:"not null;index" json:"dispute_id"`
	SenderID  uint      `gorm:"not null" json:"sender_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (DisputeMessage) TableName() string { return "dispute_messages" }
