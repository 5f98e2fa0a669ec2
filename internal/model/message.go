package model

import (
	"time"
)

// Message is one entry in a gift group's chat. Messages are append-only and
// ordered by creation time.
type Message struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	GiftGroupID uint   `gorm:"not null;index" json:"gift_group_id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	Content     string `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
