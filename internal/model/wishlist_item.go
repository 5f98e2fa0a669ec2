package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Priority of a wishlist item.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// PriorityWeight orders priorities for sorting (higher sorts first).
func PriorityWeight(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type WishlistItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;index" json:"user_id"`
	FamilyID uint `gorm:"not null;index" json:"family_id"`

	Title       string           `gorm:"type:varchar(200);not null" json:"title"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	URL         string           `gorm:"type:varchar(500)" json:"url,omitempty"`
	ImageURL    string           `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	Price       *decimal.Decimal `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	Priority    Priority         `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`
	Category    string           `gorm:"type:varchar(100)" json:"category,omitempty"`

	// Claim state. ClaimedBy must never equal UserID, and Purchased may only
	// be true while ClaimedBy is set.
	ClaimedBy *uint      `gorm:"index" json:"claimed_by,omitempty"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
	Purchased bool       `gorm:"not null;default:false" json:"purchased"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner   User  `gorm:"foreignKey:UserID" json:"-"`
	Claimer *User `gorm:"foreignKey:ClaimedBy" json:"-"`
}

func (i *WishlistItem) IsClaimed() bool {
	return i.ClaimedBy != nil
}
