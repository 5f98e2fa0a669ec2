package model

import (
	"time"
)

// Role of a user within a family.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

type FamilyMember struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	FamilyID uint `gorm:"not null;uniqueIndex:idx_family_user" json:"family_id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_family_user" json:"user_id"`
	Role     Role `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	Family Family `gorm:"foreignKey:FamilyID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *FamilyMember) IsAdmin() bool {
	return m.Role == RoleAdmin
}
