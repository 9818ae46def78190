package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"not null;index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber"`

	BarberServiceID uint          `gorm:"not null;index" json:"barber_service_id"`
	BarberService   BarberService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber_service"`

	Datetime          time.Time `gorm:"not null;index" json:"datetime"`
	ClientName        string    `gorm:"size:100;not null" json:"client_name"`
	ClientPhoneNumber string    `gorm:"size:30;not null" json:"client_phone_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
