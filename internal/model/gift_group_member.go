package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type GiftGroupMember struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	GiftGroupID uint `gorm:"not null;uniqueIndex:idx_gift_group_user" json:"gift_group_id"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_gift_group_user" json:"user_id"`

	ContributionAmount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"contribution_amount,omitempty"`
	HasPaid            bool             `gorm:"not null;default:false" json:"has_paid"`
	// LastReadAt drives the unread-message count for the group chat.
	LastReadAt *time.Time `json:"last_read_at,omitempty"`
	JoinedAt   time.Time  `gorm:"autoCreateTime" json:"joined_at"`

	GiftGroup GiftGroup `gorm:"foreignKey:GiftGroupID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
