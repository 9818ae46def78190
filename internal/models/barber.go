package models

import "time"

type Barber struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255;not null" json:"description"`
	Picture     *string `gorm:"size:255" json:"picture"`

	// Soft delete marker. Deleted barbers are still readable by id.
	DeletedAt *time.Time `gorm:"index" json:"deleted_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
