package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GiftGroup pools contributions from family members toward one gift.
// CurrentAmount must always equal the sum of the members' contributions.
type GiftGroup struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	FamilyID uint `gorm:"not null;index" json:"family_id"`

	Name         string           `gorm:"type:varchar(100);not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description,omitempty"`
	Occasion     string           `gorm:"type:varchar(100)" json:"occasion,omitempty"`
	OccasionDate *time.Time       `json:"occasion_date,omitempty"`
	TargetUserID *uint            `json:"target_user_id,omitempty"`
	TargetAmount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"target_amount,omitempty"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"current_amount"`
	IsActive     bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedBy    uint             `gorm:"not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Creator User              `gorm:"foreignKey:CreatedBy" json:"-"`
	Members []GiftGroupMember `gorm:"foreignKey:GiftGroupID" json:"members,omitempty"`
}

// ProgressPercent reports progress toward the target amount, 0 when no
// target is set.
func (g *GiftGroup) ProgressPercent() int {
	if g.TargetAmount == nil || g.TargetAmount.IsZero() {
		return 0
	}
	return int(g.CurrentAmount.Div(*g.TargetAmount).Mul(decimal.NewFromInt(100)).IntPart())
}
