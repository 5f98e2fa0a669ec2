package model

import (
	"time"
)

type Family struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	InviteCode string `gorm:"type:varchar(9);not null;uniqueIndex:idx_family_invite_code" json:"invite_code"`
	CreatedBy  uint   `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Creator User           `gorm:"foreignKey:CreatedBy" json:"-"`
	Members []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
}
