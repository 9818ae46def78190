package models

import "time"

type User struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	PasswordHash string `gorm:"size:128;not null" json:"-"`
	PasswordSalt string `gorm:"size:32;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'GUEST'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
