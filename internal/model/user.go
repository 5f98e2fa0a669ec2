package model

import (
	"time"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name      string `gorm:"type:varchar(255)" json:"name"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Image     string `gorm:"type:varchar(500)" json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
