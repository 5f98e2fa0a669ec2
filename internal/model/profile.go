package model

import (
	"time"
)

// Profile stores one member's gift preferences within one family.
type Profile struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_profile_user_family" json:"user_id"`
	FamilyID uint `gorm:"not null;uniqueIndex:idx_profile_user_family" json:"family_id"`

	// Clothing sizes.
	ShoeSize  string `gorm:"type:varchar(50)" json:"shoe_size,omitempty"`
	PantSize  string `gorm:"type:varchar(50)" json:"pant_size,omitempty"`
	ShirtSize string `gorm:"type:varchar(50)" json:"shirt_size,omitempty"`
	DressSize string `gorm:"type:varchar(50)" json:"dress_size,omitempty"`
	RingSize  string `gorm:"type:varchar(50)" json:"ring_size,omitempty"`

	FavoriteColors []string `gorm:"serializer:json" json:"favorite_colors,omitempty"`

	VehicleMake  string `gorm:"type:varchar(100)" json:"vehicle_make,omitempty"`
	VehicleModel string `gorm:"type:varchar(100)" json:"vehicle_model,omitempty"`
	VehicleYear  *int   `json:"vehicle_year,omitempty"`

	Hobbies   []string `gorm:"serializer:json" json:"hobbies,omitempty"`
	Interests []string `gorm:"serializer:json" json:"interests,omitempty"`

	Allergies           string `gorm:"type:varchar(500)" json:"allergies,omitempty"`
	DietaryRestrictions string `gorm:"type:varchar(500)" json:"dietary_restrictions,omitempty"`
	Notes               string `gorm:"type:text" json:"notes,omitempty"`

	Birthday    *time.Time `json:"birthday,omitempty"`
	Anniversary *time.Time `json:"anniversary,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Family Family `gorm:"foreignKey:FamilyID" json:"-"`
}
